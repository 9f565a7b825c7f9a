package decision

import (
	"math"
	"sort"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"gonum.org/v1/gonum/floats"
)

/*
Gini takes the number of occurrences of each class in a set and returns
the Gini impurity of the set: 1 - Σ (count_i / Σcounts)². The result
is 0 for pure sets and 1 - 1/k for k equally sized classes.

Callers are expected not to pass empty distributions; Gini returns 0
for them.
*/
func Gini(counts []int) float64 {
	proportions := make([]float64, len(counts))
	for i, c := range counts {
		proportions[i] = float64(c)
	}
	total := floats.Sum(proportions)
	if total <= 0 {
		return 0
	}
	floats.Scale(1/total, proportions)
	return clampImpurity(1 - floats.Dot(proportions, proportions))
}

/*
TableGini takes a table and the name of its target column and returns
the Gini impurity of the present labels in the column, computed from
the column value counts. It returns 0 when no label is present and an
InputError if the target column is absent or not categorical.
*/
func TableGini(t dataset.Table, target string) (float64, error) {
	lc, err := labelColumn(t, target)
	if err != nil {
		return 0, err
	}
	return columnGini(lc), nil
}

func columnGini(lc *dataset.CategoricalColumn) float64 {
	vc := lc.ValueCounts()
	var total int
	for _, c := range vc {
		total += c
	}
	if total == 0 {
		return 0
	}
	squares := make([]float64, 0, len(vc))
	for _, c := range vc {
		p := float64(c) / float64(total)
		squares = append(squares, p*p)
	}
	sort.Float64s(squares)
	return clampImpurity(1 - floats.Sum(squares))
}

func clampImpurity(g float64) float64 {
	return math.Min(1, math.Max(0, g))
}
