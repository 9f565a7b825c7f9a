package decision

import (
	"errors"
	"testing"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGini(t *testing.T) {
	assert.Equal(t, 0.0, Gini([]int{5}))
	assert.Equal(t, 0.0, Gini([]int{0, 7, 0}))
	assert.InDelta(t, 0.5, Gini([]int{3, 3}), 1e-12)
	assert.InDelta(t, 1-1.0/3, Gini([]int{2, 2, 2}), 1e-12)
	assert.InDelta(t, 1-(0.25*0.25+0.75*0.75), Gini([]int{1, 3}), 1e-12)
	assert.Equal(t, 0.0, Gini(nil))
}

func TestGiniBounds(t *testing.T) {
	distributions := [][]int{{1}, {1, 1}, {10, 1, 3}, {1, 2, 3, 4, 5, 6, 7}, {1000, 1}}
	for _, d := range distributions {
		g := Gini(d)
		assert.GreaterOrEqual(t, g, 0.0)
		assert.Less(t, g, 1.0)
		assert.LessOrEqual(t, g, 1-1/float64(len(d))+1e-12)
	}
}

func TestTableGiniAgreesWithGini(t *testing.T) {
	tbl, err := dataset.New(dataset.CategoricalOf("y", 1, -1, 1, 3, 2, -1, 1, 2, 3, 2, -1, 2))
	require.NoError(t, err)
	g, err := TableGini(tbl, "y")
	require.NoError(t, err)
	assert.InDelta(t, Gini([]int{3, 4, 2}), g, 1e-12)
}

func TestTableGiniWithoutLabels(t *testing.T) {
	tbl, err := dataset.New(dataset.CategoricalOf("y", -1, -1))
	require.NoError(t, err)
	g, err := TableGini(tbl, "y")
	require.NoError(t, err)
	assert.Equal(t, 0.0, g)
}

func TestTableGiniInputErrors(t *testing.T) {
	tbl, err := dataset.New(dataset.NewContinuousColumn("x", []float64{1, 2}))
	require.NoError(t, err)

	_, err = TableGini(tbl, "y")
	var ie *InputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "y", ie.Column)
	assert.True(t, errors.Is(err, dataset.ErrColumnNotFound))

	_, err = TableGini(tbl, "x")
	require.True(t, errors.As(err, &ie))
	assert.True(t, errors.Is(err, ErrColumnKind))
}
