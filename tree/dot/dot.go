/*
Package dot renders trees as Graphviz digraphs in the DOT language.
*/
package dot

import (
	"context"
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree"
)

// ClassNamer returns the name to display for a class code
type ClassNamer func(dataset.Code) string

const graphName = "G"

/*
Render takes a tree and an optional ClassNamer and returns the DOT
source of a digraph with a box for every leaf and an ellipse for every
internal node, edges labelled with the partition they lead to.
Empty trees render as an empty digraph.
*/
func Render(t *tree.Tree, namer ClassNamer) (string, error) {
	if namer == nil {
		namer = func(c dataset.Code) string { return strconv.FormatUint(uint64(c), 10) }
	}
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}
	ids := make(map[*tree.Node]string)
	err := t.Traverse(context.Background(), false, func(_ context.Context, n *tree.Node) error {
		id := fmt.Sprintf("n%d", len(ids))
		ids[n] = id
		var attrs map[string]string
		if n.IsLeaf() {
			attrs = map[string]string{
				"shape": "box",
				"label": strconv.Quote(fmt.Sprintf("%s\nconfidence = %.3f\nsamples = %d", namer(n.Prediction.Class), n.Prediction.Confidence, n.Weight)),
			}
		} else {
			attrs = map[string]string{
				"label": strconv.Quote(fmt.Sprintf("%v\nsamples = %d", n.Rule, n.Weight)),
			}
		}
		return g.AddNode(graphName, id, attrs)
	})
	if err != nil {
		return "", err
	}
	err = t.Traverse(context.Background(), false, func(_ context.Context, n *tree.Node) error {
		if n.IsLeaf() {
			return nil
		}
		if err := g.AddEdge(ids[n], ids[n.Higher], true, map[string]string{"label": `"yes"`}); err != nil {
			return err
		}
		return g.AddEdge(ids[n], ids[n.Lower], true, map[string]string{"label": `"no"`})
	})
	if err != nil {
		return "", err
	}
	return g.String(), nil
}
