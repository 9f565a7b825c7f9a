package tree

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
)

// MissingValuePolicy tells a tree how to route a sample that has no
// value for the dimension of a split rule.
type MissingValuePolicy int

const (
	// RouteToHeavier sends the sample down the child that saw more
	// training rows, the higher one on ties.
	RouteToHeavier MissingValuePolicy = iota
	// FailOnMissing makes the prediction fail with ErrMissingValue.
	FailOnMissing
)

/*
ParseMissingValuePolicy takes the name of a policy ("heavier" or "fail")
and returns the corresponding MissingValuePolicy or an error.
*/
func ParseMissingValuePolicy(name string) (MissingValuePolicy, error) {
	switch strings.ToLower(name) {
	case "", "heavier":
		return RouteToHeavier, nil
	case "fail":
		return FailOnMissing, nil
	}
	return RouteToHeavier, fmt.Errorf("unknown missing value policy %q", name)
}

func (p MissingValuePolicy) String() string {
	if p == FailOnMissing {
		return "fail"
	}
	return "heavier"
}

// Tree represents a binary decision tree. It owns at most one
// root node, the whole node graph hanging from it and the name
// of the label it is able to predict. A tree without root is empty:
// no model could be trained.
type Tree struct {
	root    *Node
	Label   string
	Missing MissingValuePolicy
}

// New returns an empty tree
func New() *Tree {
	return &Tree{}
}

// FromNode takes a node and returns a tree with it as root
func FromNode(n *Node) *Tree {
	return &Tree{root: n}
}

// Root returns the root node of the tree, nil for empty trees
func (t *Tree) Root() *Node {
	if t == nil {
		return nil
	}
	return t.root
}

// Empty returns whether the tree has no root
func (t *Tree) Empty() bool {
	return t.Root() == nil
}

// Predict takes a sample and returns a prediction according to the tree and an
// error if the prediction could not be made. Empty trees return a nil prediction
// and no error.
func (t *Tree) Predict(s dataset.Sample) (*Prediction, error) {
	n := t.Root()
	if n == nil {
		return nil, nil
	}
	for !n.IsLeaf() {
		v, ok := s.ValueFor(n.Rule.Dimension)
		var b feature.Branch
		if ok {
			b = n.Rule.Route(v)
		} else if t.Missing == FailOnMissing {
			return nil, fmt.Errorf("%w %q", ErrMissingValue, n.Rule.Dimension)
		} else {
			b = n.heavier()
		}
		next := n.Child(b)
		if next == nil {
			return nil, fmt.Errorf("%w: node on %v has no %v subtree", ErrMalformedTree, n.Rule, b)
		}
		n = next
	}
	if n.Prediction == nil {
		return nil, fmt.Errorf("%w: leaf without prediction", ErrMalformedTree)
	}
	return n.Prediction, nil
}

/*
Test takes a context.Context, a table and the name of its label column and
returns three values:
 * the prediction success rate of the tree over the rows of the table with
   a label
 * the number of rows for which the tree could not make a prediction
   because of missing values or because the tree is empty
 * an error if the label column cannot be used or a prediction failed for
   other reasons. If this is not nil, the other values will be 0.0 and 0
   respectively
*/
func (t *Tree) Test(ctx context.Context, tbl dataset.Table, label string) (float64, int, error) {
	col, err := tbl.Column(label)
	if err != nil {
		return 0.0, 0, err
	}
	labels, ok := col.(Labels)
	if !ok {
		return 0.0, 0, fmt.Errorf("label column %q is not categorical", label)
	}
	var hits, labeled, errCount int
	for i := 0; i < tbl.Count(); i++ {
		if err := ctx.Err(); err != nil {
			return 0.0, 0, err
		}
		expected, ok := labels.Code(i)
		if !ok {
			continue
		}
		labeled++
		p, err := t.Predict(tbl.Sample(i))
		if err != nil {
			if !errors.Is(err, ErrMissingValue) {
				return 0.0, 0, err
			}
			errCount++
			continue
		}
		if p == nil {
			errCount++
			continue
		}
		if p.Class == expected {
			hits++
		}
	}
	if labeled == 0 {
		return 0.0, errCount, nil
	}
	return float64(hits) / float64(labeled), errCount, nil
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true. Higher
// subtrees are traversed before lower ones.
// If the given context times out or is cancelled, the context
// error is returned. If the call to the function returns an
// error, the traversing is aborted and the error is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	n := t.Root()
	if n == nil {
		return nil
	}
	return traverse(ctx, n, bottomup, f)
}

func traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		if err = f(ctx, n); err != nil {
			return err
		}
	}
	for _, sn := range []*Node{n.Higher, n.Lower} {
		if sn == nil {
			continue
		}
		if err = traverse(ctx, sn, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(ctx, n)
	}
	return nil
}

// Depth returns the number of edges on the longest path from the root
// to a leaf, 0 for single-leaf and empty trees.
func (t *Tree) Depth() int {
	return depth(t.Root())
}

func depth(n *Node) int {
	if n == nil || n.IsLeaf() {
		return 0
	}
	h, l := depth(n.Higher), depth(n.Lower)
	if l > h {
		h = l
	}
	return h + 1
}

// NodeCount returns the number of nodes in the tree
func (t *Tree) NodeCount() int {
	var count int
	t.Traverse(context.Background(), false, func(_ context.Context, _ *Node) error {
		count++
		return nil
	})
	return count
}

// LeafCount returns the number of leaves in the tree
func (t *Tree) LeafCount() int {
	var count int
	t.Traverse(context.Background(), false, func(_ context.Context, n *Node) error {
		if n.IsLeaf() {
			count++
		}
		return nil
	})
	return count
}

/*
Validate checks the structure of the tree and returns an error wrapping
ErrMalformedTree if any leaf lacks a prediction or has children, any
internal node lacks a child, any confidence is out of [0, 1] or a node
is reachable through more than one path.
*/
func (t *Tree) Validate() error {
	seen := make(map[*Node]bool)
	var check func(n *Node, path string) error
	check = func(n *Node, path string) error {
		if seen[n] {
			return fmt.Errorf("%w: node at %s reachable more than once", ErrMalformedTree, path)
		}
		seen[n] = true
		if n.IsLeaf() {
			if n.Prediction == nil {
				return fmt.Errorf("%w: leaf at %s has no prediction", ErrMalformedTree, path)
			}
			if n.Higher != nil || n.Lower != nil {
				return fmt.Errorf("%w: leaf at %s has children", ErrMalformedTree, path)
			}
			if c := n.Prediction.Confidence; c < 0 || c > 1 {
				return fmt.Errorf("%w: leaf at %s has confidence %v", ErrMalformedTree, path, c)
			}
			return nil
		}
		if n.Higher == nil || n.Lower == nil {
			return fmt.Errorf("%w: internal node at %s lacks a child", ErrMalformedTree, path)
		}
		if err := check(n.Higher, path+"/higher"); err != nil {
			return err
		}
		return check(n.Lower, path+"/lower")
	}
	if t.Empty() {
		return nil
	}
	return check(t.root, "root")
}

func (t *Tree) String() string {
	if t.Empty() {
		return "[empty tree]\n"
	}
	return subtreeString(t.root, "root")
}

func subtreeString(n *Node, name string) string {
	result := fmt.Sprintf("[%s]\n", name)
	if n.Rule != nil {
		result = fmt.Sprintf("%s{ %v }\n", result, n.Rule)
	}
	if n.Prediction != nil {
		result = fmt.Sprintf("%s{ %v }\n", result, n.Prediction)
	}
	if n.IsLeaf() {
		return fmt.Sprintf("%s \n", result)
	}
	result = fmt.Sprintf("%s|\n", result)
	subtrees := []struct {
		name string
		n    *Node
	}{{"higher", n.Higher}, {"lower", n.Lower}}
	for i, st := range subtrees {
		if st.n == nil {
			continue
		}
		for j, line := range strings.Split(subtreeString(st.n, st.name), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else if i == len(subtrees)-1 {
					result = fmt.Sprintf("%s   %s\n", result, line)
				} else {
					result = fmt.Sprintf("%s|  %s\n", result, line)
				}
			}
		}
	}
	return result
}
