/*
Package decision induces binary decision tree classifiers from labeled
tables: it searches the split of a continuous feature that minimizes
the weighted Gini impurity of the resulting partitions and recursively
partitions the table until a stopping rule fires.
*/
package decision

import (
	"context"
	"io/ioutil"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Builder holds the configuration to grow trees
type Builder struct {
	// MaxDepth is the depth past which nodes become leaves,
	// the root being at depth 0. A negative value means
	// unlimited depth.
	MaxDepth int
	// MinNodeSize is the minimum number of rows a node needs
	// to be split.
	MinNodeSize int
	// Workers is the maximum number of goroutines developing
	// subtrees at the same time. Values below 2 grow trees
	// sequentially.
	Workers int
	// Stopper is applied after the depth, size and purity
	// rules to decide whether a node must become a leaf.
	// It may be nil.
	Stopper Stopper
	// Logger receives a debug entry for every developed node.
	// Nothing is logged if it is nil.
	Logger logrus.FieldLogger
}

type growth struct {
	features []string
	target   string
	stopper  Stopper
	sem      *semaphore.Weighted
	log      logrus.FieldLogger
}

/*
Build takes a context, a table, the names of the candidate feature columns
and the name of the target column and returns a tree grown from the table
to predict the target. Categorical feature columns are accepted but never
used to split.

An InputError is returned if the target column is absent or not categorical,
or if any feature column is absent. A table without rows or without present
labels produces an empty tree and no error. If the context is cancelled
the build is aborted and the context error is returned.
*/
func (b *Builder) Build(ctx context.Context, t dataset.Table, features []string, target string) (*tree.Tree, error) {
	if _, err := labelColumn(t, target); err != nil {
		return nil, err
	}
	for _, f := range features {
		if _, err := lookupColumn(t, f, "feature"); err != nil {
			return nil, err
		}
	}
	g := &growth{
		features: sortedNames(features),
		target:   target,
		stopper: AnyStopper(
			MaxDepthStopper(b.MaxDepth),
			MinNodeSizeStopper(b.MinNodeSize),
			PureNodeStopper(),
			b.Stopper,
		),
		log: b.Logger,
	}
	if g.log == nil {
		l := logrus.New()
		l.Out = ioutil.Discard
		g.log = l
	}
	if b.Workers > 1 {
		g.sem = semaphore.NewWeighted(int64(b.Workers - 1))
	}
	root, err := g.buildNode(ctx, t, 0)
	if err != nil {
		return nil, err
	}
	result := tree.New()
	if root != nil {
		result = tree.FromNode(root)
	}
	result.Label = target
	g.log.WithFields(logrus.Fields{
		"nodes": result.NodeCount(),
		"depth": result.Depth(),
	}).Info("tree grown")
	return result, nil
}

/*
Build takes a context, a table, the names of the candidate feature columns,
the name of the target column, a maximum depth and a minimum node size and
returns a tree grown sequentially by a Builder with that configuration.
*/
func Build(ctx context.Context, t dataset.Table, features []string, target string, maxDepth, minNodeSize int) (*tree.Tree, error) {
	b := &Builder{MaxDepth: maxDepth, MinNodeSize: minNodeSize}
	return b.Build(ctx, t, features, target)
}

// buildNode returns nil when the table has no present labels
func (g *growth) buildNode(ctx context.Context, t dataset.Table, depth int) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lc, err := labelColumn(t, g.target)
	if err != nil {
		return nil, err
	}
	prediction := tree.PredictMajority(lc)
	if prediction == nil {
		return nil, nil
	}
	leaf := func() *tree.Node {
		n := tree.NewLeaf(prediction)
		n.Weight = t.Count()
		return n
	}
	ns := NodeState{Depth: depth, Rows: t.Count(), Impurity: columnGini(lc)}
	log := g.log.WithFields(logrus.Fields{
		"depth": depth,
		"rows":  ns.Rows,
	})
	if len(g.features) == 0 || g.stopper.Stop(ctx, ns) {
		log.WithField("impurity", ns.Impurity).Debug("leaf")
		return leaf(), nil
	}
	best, ok, err := BestSplit(t, g.features, g.target)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Debug("leaf: no split candidates")
		return leaf(), nil
	}
	log.WithFields(logrus.Fields{
		"feature": best.Feature,
		"cutoff":  best.Split,
		"metric":  best.Metric,
	}).Debug("split")
	higherTable, lowerTable, err := partition(t, best)
	if err != nil {
		return nil, err
	}
	if higherTable.Count() == 0 || lowerTable.Count() == 0 {
		log.Debug("leaf: one-sided split")
		return leaf(), nil
	}
	var higher, lower *tree.Node
	if g.sem != nil && g.sem.TryAcquire(1) {
		eg, ectx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			defer g.sem.Release(1)
			var err error
			higher, err = g.buildNode(ectx, higherTable, depth+1)
			return err
		})
		var lowerErr error
		lower, lowerErr = g.buildNode(ectx, lowerTable, depth+1)
		if err = eg.Wait(); err != nil {
			return nil, err
		}
		if lowerErr != nil {
			return nil, lowerErr
		}
	} else {
		if higher, err = g.buildNode(ctx, higherTable, depth+1); err != nil {
			return nil, err
		}
		if lower, err = g.buildNode(ctx, lowerTable, depth+1); err != nil {
			return nil, err
		}
	}
	if higher == nil || lower == nil {
		log.Debug("leaf: empty subtree")
		return leaf(), nil
	}
	return tree.NewInternal(best.Rule(), higher, lower, t.Count()), nil
}

// partition returns the tables with the rows routed to each side of the
// candidate's rule. Rows missing the feature value are in neither.
func partition(t dataset.Table, sc SplitCandidate) (dataset.Table, dataset.Table, error) {
	fc, err := continuousColumn(t, sc.Feature)
	if err != nil {
		return nil, nil, err
	}
	rule := sc.Rule()
	higher := t.Filter(func(row int) bool {
		v, ok := fc.Value(row)
		return ok && rule.SatisfiedBy(feature.Higher, v)
	})
	lower := t.Filter(func(row int) bool {
		v, ok := fc.Value(row)
		return ok && rule.SatisfiedBy(feature.Lower, v)
	})
	return higher, lower, nil
}
