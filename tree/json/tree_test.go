package json

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleTree() *tree.Tree {
	higher := tree.NewLeaf(&tree.Prediction{Class: 1, Confidence: 0.75, Weight: 4})
	lower := tree.NewLeaf(&tree.Prediction{Class: 0, Confidence: 1, Weight: 3})
	root := tree.NewInternal(feature.SplitRule{Dimension: "petal_length", Cutoff: 2.45}, higher, lower, 7)
	t := tree.FromNode(root)
	t.Label = "species"
	t.Missing = tree.FailOnMissing
	return t
}

func TestTreeRoundTrip(t *testing.T) {
	ctx := context.Background()
	ned := NewNodeEncodeDecoder()
	original := exampleTree()
	buf := &bytes.Buffer{}
	require.NoError(t, WriteJSONTree(ctx, original, ned, buf))

	decoded, err := ReadJSONTree(ctx, ned, buf)
	require.NoError(t, err)
	assert.Equal(t, "species", decoded.Label)
	assert.Equal(t, tree.FailOnMissing, decoded.Missing)
	assert.Equal(t, original.Root(), decoded.Root())
	assert.NoError(t, decoded.Validate())
}

func TestEmptyTreeRoundTrip(t *testing.T) {
	ctx := context.Background()
	ned := NewNodeEncodeDecoder()
	original := tree.New()
	original.Label = "y"
	buf := &bytes.Buffer{}
	require.NoError(t, WriteJSONTree(ctx, original, ned, buf))
	assert.Contains(t, buf.String(), `"root":null`)

	decoded, err := ReadJSONTree(ctx, ned, buf)
	require.NoError(t, err)
	assert.True(t, decoded.Empty())
	assert.Equal(t, "y", decoded.Label)
	assert.Equal(t, tree.RouteToHeavier, decoded.Missing)
}

func TestDecodeRejectsMalformedNodes(t *testing.T) {
	ned := NewNodeEncodeDecoder()
	malformed := []string{
		`{"w":1}`,
		`{"pred":{"class":1,"conf":1,"w":1},"w":1,"hi":{"pred":{"class":1,"conf":1,"w":1},"w":1}}`,
		`{"rule":{"d":"x","c":1},"w":2,"hi":{"pred":{"class":1,"conf":1,"w":1},"w":1}}`,
		`{"rule":`,
	}
	for _, m := range malformed {
		_, err := ned.Decode([]byte(m))
		assert.Error(t, err, m)
	}
}

func TestReadJSONTreeErrors(t *testing.T) {
	ctx := context.Background()
	ned := NewNodeEncodeDecoder()
	_, err := ReadJSONTree(ctx, ned, strings.NewReader(`{"label":"y","missing":"sometimes","root":null}`))
	assert.Error(t, err)
	_, err = ReadJSONTree(ctx, ned, strings.NewReader(`[]`))
	assert.Error(t, err)
}
