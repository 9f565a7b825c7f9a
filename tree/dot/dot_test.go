package dot

import (
	"strings"
	"testing"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	higher := tree.NewLeaf(&tree.Prediction{Class: 1, Confidence: 0.75, Weight: 4})
	lower := tree.NewLeaf(&tree.Prediction{Class: 0, Confidence: 1, Weight: 3})
	root := tree.NewInternal(feature.SplitRule{Dimension: "x", Cutoff: 2.5}, higher, lower, 7)
	names := map[dataset.Code]string{0: "setosa", 1: "virginica"}

	src, err := Render(tree.FromNode(root), func(c dataset.Code) string { return names[c] })
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(src, "digraph G"))
	assert.Contains(t, src, "x >= 2.5")
	assert.Contains(t, src, "virginica")
	assert.Contains(t, src, "setosa")
	assert.Contains(t, src, "n0->n1")
	assert.Contains(t, src, "n0->n2")
	assert.Contains(t, src, `"yes"`)
	assert.Contains(t, src, `"no"`)
}

func TestRenderEmptyTree(t *testing.T) {
	src, err := Render(tree.New(), nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(src, "digraph G"))
	assert.NotContains(t, src, "->")
}

func TestRenderDefaultNamer(t *testing.T) {
	src, err := Render(tree.FromNode(tree.NewLeaf(&tree.Prediction{Class: 7, Confidence: 1, Weight: 2})), nil)
	require.NoError(t, err)
	assert.Contains(t, src, `7\nconfidence = 1.000`)
}
