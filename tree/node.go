package tree

import (
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
)

/*
Node is a node of the tree. It is either a leaf, holding a Prediction
and no children, or an internal node, holding a split rule and exactly
two children. Nodes own their children: a node must not be reachable
from more than one parent.
*/
type Node struct {
	// The constraint internal nodes impose on samples to choose
	// between their children. Nil for leaves.
	Rule *feature.SplitRule
	// The prediction for samples reaching a leaf. Nil for internal nodes.
	Prediction *Prediction
	// The subtree for samples whose value for Rule.Dimension is
	// greater than or equal to Rule.Cutoff
	Higher *Node
	// The subtree for samples whose value for Rule.Dimension is
	// lower than Rule.Cutoff
	Lower *Node
	// The number of training rows that reached the node
	Weight int
}

/*
NewLeaf takes a prediction and returns a leaf node for it weighing
as much as the prediction.
*/
func NewLeaf(p *Prediction) *Node {
	return &Node{Prediction: p, Weight: p.Weight}
}

/*
NewInternal takes a split rule, the subtrees for both partitions and the
number of training rows reaching the node and returns an internal node
owning both subtrees.
*/
func NewInternal(rule feature.SplitRule, higher, lower *Node, weight int) *Node {
	return &Node{Rule: &rule, Higher: higher, Lower: lower, Weight: weight}
}

// IsLeaf returns whether the node has no split rule
func (n *Node) IsLeaf() bool {
	return n.Rule == nil
}

// Child returns the subtree for the given partition
func (n *Node) Child(b feature.Branch) *Node {
	if b == feature.Higher {
		return n.Higher
	}
	return n.Lower
}

// heavier returns the partition whose subtree saw more training rows,
// preferring the higher one on ties.
func (n *Node) heavier() feature.Branch {
	if n.Lower != nil && (n.Higher == nil || n.Lower.Weight > n.Higher.Weight) {
		return feature.Lower
	}
	return feature.Higher
}
