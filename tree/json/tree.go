package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree"
)

type jsonTree struct {
	Label   string           `json:"label"`
	Missing string           `json:"missing"`
	Root    *json.RawMessage `json:"root"`
}

/*
WriteJSONTree takes a context.Context, a pointer to a tree.Tree
a NodeEncodeDecoder and an io.Writer and serializes the given tree
as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
* "label": a string with the name of the column the tree predicts
* "missing": the name of the policy for samples missing split values
* "root": the root node of the tree serialized by the given
  NodeEncodeDecoder, or null for empty trees.
An error is returned if the tree cannot be serialized or written
onto the io.Writer.
*/
func WriteJSONTree(ctx context.Context, t *tree.Tree, ned NodeEncodeDecoder, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	jt := &jsonTree{Label: t.Label, Missing: t.Missing.String()}
	if !t.Empty() {
		data, err := ned.Encode(t.Root())
		if err != nil {
			return fmt.Errorf("encoding root node: %w", err)
		}
		raw := json.RawMessage(data)
		jt.Root = &raw
	}
	return json.NewEncoder(w).Encode(jt)
}

/*
ReadJSONTree takes a context.Context, a NodeEncodeDecoder and an
io.Reader and returns the tree unmarshalled from the contents of the
io.Reader in the format written by WriteJSONTree.
An error is returned if the JSON cannot be read from the io.Reader or
unmarshalled into a tree.
*/
func ReadJSONTree(ctx context.Context, ned NodeEncodeDecoder, r io.Reader) (*tree.Tree, error) {
	jt := &jsonTree{}
	err := json.NewDecoder(r).Decode(jt)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	missing, err := tree.ParseMissingValuePolicy(jt.Missing)
	if err != nil {
		return nil, err
	}
	t := tree.New()
	if jt.Root != nil && string(*jt.Root) != "null" {
		n, err := ned.Decode(*jt.Root)
		if err != nil {
			return nil, err
		}
		t = tree.FromNode(n)
	}
	t.Label = jt.Label
	t.Missing = missing
	return t, nil
}
