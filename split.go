package decision

import (
	"fmt"
	"sort"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
)

/*
SplitCandidate represents a tentative binary partition of a table on a
continuous feature at the Split threshold, scored by the weighted Gini
impurity of the resulting partitions (Metric, lower is better).
*/
type SplitCandidate struct {
	Feature string
	Split   float64
	Metric  float64
}

// Rule returns the split rule for the candidate
func (sc SplitCandidate) Rule() feature.SplitRule {
	return feature.SplitRule{Dimension: sc.Feature, Cutoff: sc.Split}
}

func (sc SplitCandidate) String() string {
	return fmt.Sprintf("%v (metric %.6f)", sc.Rule(), sc.Metric)
}

/*
FindSplitCandidates takes a table, the name of a continuous feature column
and the name of the categorical target column and returns a candidate for
every midpoint between adjacent distinct present values of the feature, in
ascending order of threshold. A feature with less than 2 distinct values
yields no candidates.

The metric of each candidate is
(|higher| x gini(higher) + |lower| x gini(lower)) / |table|
where higher holds the rows whose value is greater than or equal to the
threshold and lower those whose value is below it. Rows missing the feature
value belong to neither partition. Partitions without present labels
contribute 0.

An InputError is returned if either column is absent or of the wrong kind.
*/
func FindSplitCandidates(t dataset.Table, featureName, target string) ([]SplitCandidate, error) {
	lc, err := labelColumn(t, target)
	if err != nil {
		return nil, err
	}
	fc, err := continuousColumn(t, featureName)
	if err != nil {
		return nil, err
	}
	return splitCandidates(fc, lc, t.Count()), nil
}

/*
BestSplit takes a table, a slice of feature names and the name of the target
column and returns the candidate with the lowest metric among all candidates
of all continuous features, and false if there is none. Among candidates with
the same metric the one on the lexicographically first feature name and with
the lowest threshold wins. Categorical feature columns are not candidates and
are skipped.

An InputError is returned if any of the columns is absent or the target
column is not categorical.
*/
func BestSplit(t dataset.Table, features []string, target string) (SplitCandidate, bool, error) {
	all, err := AllSplitCandidates(t, features, target)
	if err != nil {
		return SplitCandidate{}, false, err
	}
	best, ok := BestOf(features, all)
	return best, ok, nil
}

/*
BestOf takes a slice of feature names and candidates indexed by feature
name, as returned by AllSplitCandidates, and returns the candidate with
the lowest metric among those of the given features, with the same
tie-breaking as BestSplit, and false if there is none.
*/
func BestOf(features []string, candidates map[string][]SplitCandidate) (SplitCandidate, bool) {
	return bestOf(sortedNames(features), candidates)
}

/*
AllSplitCandidates takes a table, a slice of feature names and the name of
the target column and returns the candidates of every continuous feature,
indexed by feature name. Categorical features are skipped.
*/
func AllSplitCandidates(t dataset.Table, features []string, target string) (map[string][]SplitCandidate, error) {
	lc, err := labelColumn(t, target)
	if err != nil {
		return nil, err
	}
	result := make(map[string][]SplitCandidate, len(features))
	for _, name := range features {
		c, err := lookupColumn(t, name, "feature")
		if err != nil {
			return nil, err
		}
		fc, ok := c.(*dataset.ContinuousColumn)
		if !ok {
			continue
		}
		result[name] = splitCandidates(fc, lc, t.Count())
	}
	return result, nil
}

func bestOf(names []string, candidates map[string][]SplitCandidate) (SplitCandidate, bool) {
	var best SplitCandidate
	var found bool
	for _, name := range names {
		for _, sc := range candidates[name] {
			if !found || sc.Metric < best.Metric {
				best = sc
				found = true
			}
		}
	}
	return best, found
}

func sortedNames(names []string) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return sorted
}

type observation struct {
	value float64
	class int
}

// splitCandidates sweeps the rows sorted by feature value once, keeping
// the class counts of the lower partition up to date as the threshold
// moves up.
func splitCandidates(fc *dataset.ContinuousColumn, lc *dataset.CategoricalColumn, rows int) []SplitCandidate {
	distinct := fc.Unique().(*dataset.ContinuousColumn)
	values := make([]float64, distinct.Len())
	for i := range values {
		values[i], _ = distinct.Value(i)
	}
	if len(values) < 2 {
		return nil
	}
	sort.Float64s(values)

	classIndex := classIndexes(lc)
	observations := make([]observation, 0, fc.Len())
	totalCounts := make([]int, len(classIndex))
	for i := 0; i < fc.Len(); i++ {
		v, ok := fc.Value(i)
		if !ok {
			continue
		}
		o := observation{v, -1}
		if code, ok := lc.Code(i); ok {
			o.class = classIndex[code]
			totalCounts[o.class]++
		}
		observations = append(observations, o)
	}
	sort.Slice(observations, func(i, j int) bool {
		return observations[i].value < observations[j].value
	})

	lowerCounts := make([]int, len(classIndex))
	higherCounts := make([]int, len(classIndex))
	var lowerRows, next int
	result := make([]SplitCandidate, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		threshold := midpoint(values[i-1], values[i])
		for next < len(observations) && observations[next].value < threshold {
			if c := observations[next].class; c >= 0 {
				lowerCounts[c]++
			}
			lowerRows++
			next++
		}
		for c := range higherCounts {
			higherCounts[c] = totalCounts[c] - lowerCounts[c]
		}
		higherRows := len(observations) - lowerRows
		metric := (float64(higherRows)*partitionGini(higherCounts) + float64(lowerRows)*partitionGini(lowerCounts)) / float64(rows)
		result = append(result, SplitCandidate{Feature: fc.Name(), Split: threshold, Metric: metric})
	}
	return result
}

// midpoint returns a threshold t with lower < t <= higher, so that both
// values end up on different sides. It is the mean of both values unless
// it rounds onto lower or overflows, in which case it is higher.
func midpoint(lower, higher float64) float64 {
	t := lower/2.0 + higher/2.0
	if lower < t && t <= higher {
		return t
	}
	return higher
}

// partitionGini returns 0 for partitions without labels instead of
// evaluating an empty distribution.
func partitionGini(counts []int) float64 {
	for _, c := range counts {
		if c > 0 {
			return Gini(counts)
		}
	}
	return 0
}

// classIndexes assigns a dense index to every present class, in
// ascending code order.
func classIndexes(lc *dataset.CategoricalColumn) map[dataset.Code]int {
	vc := lc.ValueCounts()
	codes := make([]dataset.Code, 0, len(vc))
	for c := range vc {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	result := make(map[dataset.Code]int, len(codes))
	for i, c := range codes {
		result[c] = i
	}
	return result
}
