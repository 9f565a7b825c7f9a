package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContinuousUniqueSkipsMissing(t *testing.T) {
	c := NewContinuousColumn("x", []float64{3, 1, math.NaN(), 3, 2, 1})
	u := c.Unique().(*ContinuousColumn)
	var values []float64
	for i := 0; i < u.Len(); i++ {
		v, ok := u.Value(i)
		assert.True(t, ok)
		values = append(values, v)
	}
	assert.Equal(t, []float64{3, 1, 2}, values)
	assert.Equal(t, "x", u.Name())
}

func TestCategoricalValueCounts(t *testing.T) {
	c := CategoricalOf("y", 1, 1, 3, 2, -1, 1, 2, -1)
	assert.Equal(t, map[Code]int{1: 3, 2: 2, 3: 1}, c.ValueCounts())
	assert.Equal(t, 8, c.Len())
	assert.True(t, c.Missing(4))
	assert.False(t, c.Missing(0))
}

func TestCategoricalUnique(t *testing.T) {
	c := CategoricalOf("y", 2, -1, 0, 2, 0)
	u := c.Unique().(*CategoricalColumn)
	assert.Equal(t, 2, u.Len())
	code, ok := u.Code(0)
	assert.True(t, ok)
	assert.Equal(t, Code(2), code)
	code, ok = u.Code(1)
	assert.True(t, ok)
	assert.Equal(t, Code(0), code)
}

func TestNewCategoricalColumnNilMask(t *testing.T) {
	c := NewCategoricalColumn("y", []Code{4, 5}, nil)
	assert.False(t, c.Missing(0))
	assert.False(t, c.Missing(1))
	assert.Equal(t, Categorical, c.Kind())
	assert.Equal(t, "categorical", c.Kind().String())
}

func TestSelectReorders(t *testing.T) {
	c := NewContinuousColumn("x", []float64{10, 20, 30})
	s := c.Select([]int{2, 0}).(*ContinuousColumn)
	v, _ := s.Value(0)
	assert.Equal(t, 30.0, v)
	v, _ = s.Value(1)
	assert.Equal(t, 10.0, v)
}
