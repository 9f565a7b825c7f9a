package feature

import (
	"math"
	"testing"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoricalEncodeDecode(t *testing.T) {
	f := NewCategoricalFeature("species", []string{"setosa", "versicolor", "virginica"})
	c, err := f.Encode("versicolor")
	require.NoError(t, err)
	assert.Equal(t, dataset.Code(1), c)

	v, err := f.Decode(2)
	require.NoError(t, err)
	assert.Equal(t, "virginica", v)

	_, err = f.Encode("rose")
	assert.Error(t, err)
	_, err = f.Decode(3)
	assert.Error(t, err)
}

func TestContinuousParse(t *testing.T) {
	f := NewContinuousFeature("width")
	v, err := f.Parse("2.25")
	require.NoError(t, err)
	assert.Equal(t, 2.25, v)
	_, err = f.Parse("wide")
	assert.Error(t, err)
	for _, raw := range []string{"Inf", "-Inf", "+inf", "NaN", "1e400"} {
		_, err = f.Parse(raw)
		assert.Error(t, err, raw)
	}
}

func TestTableBuilderRejectsNonFiniteValues(t *testing.T) {
	tb := NewTableBuilder([]Feature{NewContinuousFeature("x")})
	assert.Error(t, tb.AddRow(map[string]interface{}{"x": math.Inf(1)}))
	assert.Error(t, tb.AddRow(map[string]interface{}{"x": float32(math.Inf(-1))}))
	assert.Error(t, tb.AddRow(map[string]interface{}{"x": "-Inf"}))
	require.NoError(t, tb.AddRow(map[string]interface{}{"x": math.MaxFloat64}))
	assert.Equal(t, 1, tb.Count())
}

func TestFindAndNames(t *testing.T) {
	features := []Feature{NewContinuousFeature("a"), NewCategoricalFeature("b", []string{"x"})}
	assert.Equal(t, []string{"a", "b"}, Names(features))
	assert.Equal(t, features[1], Find(features, "b"))
	assert.Nil(t, Find(features, "c"))
}

func TestSplitRuleRoute(t *testing.T) {
	r := SplitRule{Dimension: "x", Cutoff: 2.5}
	assert.Equal(t, Higher, r.Route(2.5))
	assert.Equal(t, Higher, r.Route(7))
	assert.Equal(t, Lower, r.Route(2.4999))
	assert.True(t, r.SatisfiedBy(Lower, 1))
	assert.False(t, r.SatisfiedBy(Higher, 1))
	assert.Equal(t, "x >= 2.5", r.String())
}

func TestTableBuilder(t *testing.T) {
	features := []Feature{
		NewContinuousFeature("x"),
		NewCategoricalFeature("y", []string{"no", "yes"}),
	}
	tb := NewTableBuilder(features)
	require.NoError(t, tb.AddRow(map[string]interface{}{"x": "1.5", "y": "yes"}))
	require.NoError(t, tb.AddRow(map[string]interface{}{"x": 3, "y": []byte("no")}))
	require.NoError(t, tb.AddRow(map[string]interface{}{"x": UndefinedValue, "y": nil}))
	require.NoError(t, tb.AddRow(map[string]interface{}{}))
	assert.Error(t, tb.AddRow(map[string]interface{}{"y": "maybe"}))
	assert.Equal(t, 4, tb.Count())

	tbl, err := tb.Table()
	require.NoError(t, err)
	assert.Equal(t, 4, tbl.Count())

	c, err := tbl.Column("x")
	require.NoError(t, err)
	x := c.(*dataset.ContinuousColumn)
	v, ok := x.Value(0)
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)
	v, ok = x.Value(1)
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)
	v, ok = x.Value(2)
	assert.False(t, ok)
	assert.True(t, math.IsNaN(v))

	c, err = tbl.Column("y")
	require.NoError(t, err)
	y := c.(*dataset.CategoricalColumn)
	code, ok := y.Code(0)
	assert.True(t, ok)
	assert.Equal(t, dataset.Code(1), code)
	code, ok = y.Code(1)
	assert.True(t, ok)
	assert.Equal(t, dataset.Code(0), code)
	assert.True(t, y.Missing(2))
	assert.True(t, y.Missing(3))
}

func TestEmptyTableBuilder(t *testing.T) {
	tb := NewTableBuilder([]Feature{NewContinuousFeature("x"), NewCategoricalFeature("y", nil)})
	tbl, err := tb.Table()
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Count())
	assert.Equal(t, []string{"x", "y"}, tbl.Columns())
}
