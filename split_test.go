package decision

import (
	"errors"
	"math"
	"testing"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(t *testing.T, columns ...dataset.Column) dataset.Table {
	t.Helper()
	tbl, err := dataset.New(columns...)
	require.NoError(t, err)
	return tbl
}

func thresholds(candidates []SplitCandidate) []float64 {
	result := make([]float64, len(candidates))
	for i, sc := range candidates {
		result[i] = sc.Split
	}
	return result
}

func TestFindSplitCandidatesThresholds(t *testing.T) {
	tbl := table(t,
		dataset.NewContinuousColumn("x", []float64{4, 1, 2, 1, 4}),
		dataset.CategoricalOf("y", 0, 1, 0, 1, 0),
	)
	candidates, err := FindSplitCandidates(tbl, "x", "y")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 3.0}, thresholds(candidates))
	for _, sc := range candidates {
		assert.Equal(t, "x", sc.Feature)
	}
	// x >= 1.5 separates both classes
	assert.Equal(t, 0.0, candidates[0].Metric)
	// two class-1 rows and a class-0 row below, two class-0 rows above
	assert.InDelta(t, 3.0/5.0*(4.0/9.0), candidates[1].Metric, 1e-12)
}

func TestFindSplitCandidatesSingleValue(t *testing.T) {
	tbl := table(t,
		dataset.NewContinuousColumn("x", []float64{2, 2, math.NaN()}),
		dataset.CategoricalOf("y", 0, 1, 0),
	)
	candidates, err := FindSplitCandidates(tbl, "x", "y")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestFindSplitCandidatesMetricDefinition(t *testing.T) {
	x := []float64{0.5, 1.5, math.NaN(), 2.5, 3.5, 4.5, 5.5, 6.5}
	y := []int{0, 0, 1, -1, 1, 0, 1, 1}
	tbl := table(t, dataset.NewContinuousColumn("x", x), dataset.CategoricalOf("y", y...))
	candidates, err := FindSplitCandidates(tbl, "x", "y")
	require.NoError(t, err)
	require.Len(t, candidates, 6)

	for _, sc := range candidates {
		higher := tbl.Filter(func(row int) bool { return !math.IsNaN(x[row]) && x[row] >= sc.Split })
		lower := tbl.Filter(func(row int) bool { return !math.IsNaN(x[row]) && x[row] < sc.Split })
		hg, err := TableGini(higher, "y")
		require.NoError(t, err)
		lg, err := TableGini(lower, "y")
		require.NoError(t, err)
		expected := (float64(higher.Count())*hg + float64(lower.Count())*lg) / float64(tbl.Count())
		assert.InDelta(t, expected, sc.Metric, 1e-12, "threshold %v", sc.Split)
		assert.GreaterOrEqual(t, sc.Metric, 0.0)
		assert.LessOrEqual(t, sc.Metric, 1.0)
	}
}

func TestFindSplitCandidatesSeparateAdjacentValues(t *testing.T) {
	tiny := math.SmallestNonzeroFloat64
	columns := [][]float64{
		{1, math.Nextafter(1, 2)},
		{tiny, 2 * tiny},
		{math.Inf(-1), 5},
		{3, math.Inf(1)},
		{-math.MaxFloat64, math.MaxFloat64},
		{math.Nextafter(math.MaxFloat64, 0), math.MaxFloat64},
	}
	for _, x := range columns {
		tbl := table(t, dataset.NewContinuousColumn("x", x), dataset.CategoricalOf("y", 0, 1))
		candidates, err := FindSplitCandidates(tbl, "x", "y")
		require.NoError(t, err)
		require.Len(t, candidates, 1, "%v", x)
		sc := candidates[0]
		assert.Less(t, x[0], sc.Split, "%v", x)
		assert.LessOrEqual(t, sc.Split, x[1], "%v", x)
		assert.Equal(t, 0.0, sc.Metric, "%v", x)
	}
}

func TestFindSplitCandidatesInputErrors(t *testing.T) {
	tbl := table(t,
		dataset.NewContinuousColumn("x", []float64{1, 2}),
		dataset.CategoricalOf("c", 0, 1),
		dataset.CategoricalOf("y", 0, 1),
	)
	var ie *InputError
	_, err := FindSplitCandidates(tbl, "z", "y")
	assert.True(t, errors.As(err, &ie))
	_, err = FindSplitCandidates(tbl, "x", "z")
	assert.True(t, errors.As(err, &ie))
	_, err = FindSplitCandidates(tbl, "c", "y")
	assert.True(t, errors.Is(err, ErrColumnKind))
	_, err = FindSplitCandidates(tbl, "x", "x")
	assert.True(t, errors.Is(err, ErrColumnKind))
}

func TestBestSplit(t *testing.T) {
	tbl := table(t,
		dataset.NewContinuousColumn("noise", []float64{1, 2, 3, 4, 5, 6}),
		dataset.NewContinuousColumn("signal", []float64{10, 10, 10, 20, 20, 20}),
		dataset.CategoricalOf("color", 0, 1, 0, 1, 0, 1),
		dataset.CategoricalOf("y", 0, 0, 0, 1, 1, 1),
	)
	best, ok, err := BestSplit(tbl, []string{"noise", "signal", "color"}, "y")
	require.NoError(t, err)
	require.True(t, ok)
	// noise >= 3.5 separates the classes as well as signal >= 15
	assert.Equal(t, "noise", best.Feature)
	assert.Equal(t, 3.5, best.Split)
	assert.Equal(t, 0.0, best.Metric)
	assert.Equal(t, feature.SplitRule{Dimension: "noise", Cutoff: 3.5}, best.Rule())

	best, ok, err = BestSplit(tbl, []string{"signal", "color"}, "y")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "signal", best.Feature)
	assert.Equal(t, 15.0, best.Split)
}

func TestBestSplitTiesGoToFirstFeatureName(t *testing.T) {
	tbl := table(t,
		dataset.NewContinuousColumn("b", []float64{1, 2, 3, 4}),
		dataset.NewContinuousColumn("a", []float64{1, 2, 3, 4}),
		dataset.CategoricalOf("y", 0, 0, 1, 1),
	)
	best, ok, err := BestSplit(tbl, []string{"b", "a"}, "y")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", best.Feature)
	assert.Equal(t, 2.5, best.Split)
}

func TestBestSplitTiesGoToLowestThreshold(t *testing.T) {
	tbl := table(t,
		dataset.NewContinuousColumn("x", []float64{1, 2, 3}),
		dataset.CategoricalOf("y", 0, 0, 0),
	)
	best, ok, err := BestSplit(tbl, []string{"x"}, "y")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1.5, best.Split)
}

func TestBestSplitWithoutCandidates(t *testing.T) {
	tbl := table(t,
		dataset.NewContinuousColumn("x", []float64{1, 1}),
		dataset.CategoricalOf("c", 0, 1),
		dataset.CategoricalOf("y", 0, 1),
	)
	_, ok, err := BestSplit(tbl, []string{"x", "c"}, "y")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = BestSplit(tbl, []string{"x", "missing"}, "y")
	var ie *InputError
	assert.True(t, errors.As(err, &ie))
}

func TestBestOfAgreesWithBestSplit(t *testing.T) {
	tbl := table(t,
		dataset.NewContinuousColumn("b", []float64{1, 2, 3, 4, 5}),
		dataset.NewContinuousColumn("a", []float64{5, 4, 3, 2, 1}),
		dataset.CategoricalOf("y", 0, 1, 1, 0, 0),
	)
	features := []string{"b", "a"}
	all, err := AllSplitCandidates(tbl, features, "y")
	require.NoError(t, err)
	best, ok := BestOf(features, all)
	require.True(t, ok)
	expected, ok, err := BestSplit(tbl, features, "y")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, expected, best)

	only, ok := BestOf([]string{"b"}, all)
	require.True(t, ok)
	assert.Equal(t, "b", only.Feature)

	_, ok = BestOf(nil, all)
	assert.False(t, ok)
}

func TestAllSplitCandidatesSkipsCategorical(t *testing.T) {
	tbl := table(t,
		dataset.NewContinuousColumn("x", []float64{1, 2}),
		dataset.CategoricalOf("c", 0, 1),
		dataset.CategoricalOf("y", 0, 1),
	)
	all, err := AllSplitCandidates(tbl, []string{"x", "c"}, "y")
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Len(t, all["x"], 1)
}
