package decision

import (
	"context"
)

// NodeState describes a node about to be developed
type NodeState struct {
	// Depth of the node, 0 for the root
	Depth int
	// Rows of the training table reaching the node
	Rows int
	// Gini impurity of the labels of those rows
	Impurity float64
}

/*
Stopper is an interface wrapping the Stop method, that can be used
to decide whether a node must become a leaf instead of being split.

The Stop method takes a context and the state of a node and returns
true to make the node a leaf.
*/
type Stopper interface {
	Stop(ctx context.Context, ns NodeState) bool
}

/*
StopperFunc wraps a function with the Stop method signature to implement
the Stopper interface
*/
type StopperFunc func(ctx context.Context, ns NodeState) bool

// Stop invokes the StopperFunc with the given parameters
func (sf StopperFunc) Stop(ctx context.Context, ns NodeState) bool {
	return sf(ctx, ns)
}

/*
MaxDepthStopper returns a Stopper that stops nodes deeper than the
given maximum depth. A negative maximum never stops.
*/
func MaxDepthStopper(maxDepth int) Stopper {
	return StopperFunc(func(ctx context.Context, ns NodeState) bool {
		return maxDepth >= 0 && ns.Depth > maxDepth
	})
}

/*
MinNodeSizeStopper returns a Stopper that stops nodes reached by
fewer rows than the given minimum.
*/
func MinNodeSizeStopper(minNodeSize int) Stopper {
	return StopperFunc(func(ctx context.Context, ns NodeState) bool {
		return ns.Rows < minNodeSize
	})
}

/*
PureNodeStopper returns a Stopper that stops nodes whose labels
all belong to the same class.
*/
func PureNodeStopper() Stopper {
	return StopperFunc(func(ctx context.Context, ns NodeState) bool {
		return ns.Impurity == 0
	})
}

/*
AnyStopper takes a list of stoppers and returns a Stopper that stops
a node when any of them does, evaluating them in the given order.
Nil stoppers are ignored.
*/
func AnyStopper(stoppers ...Stopper) Stopper {
	return StopperFunc(func(ctx context.Context, ns NodeState) bool {
		for _, s := range stoppers {
			if s != nil && s.Stop(ctx, ns) {
				return true
			}
		}
		return false
	})
}

/*
NoStopper returns a Stopper whose Stop method always returns false
*/
func NoStopper() Stopper {
	return StopperFunc(func(ctx context.Context, ns NodeState) bool {
		return false
	})
}
