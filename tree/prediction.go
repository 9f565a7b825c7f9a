package tree

import (
	"fmt"
	"sort"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
)

/*
Prediction represents a prediction made by a decision Tree: the
predicted class, the fraction of the labeled training rows in the
leaf that belong to it and the number of those rows.
*/
type Prediction struct {
	Class      dataset.Code
	Confidence float64
	Weight     int
}

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrMissingValue is the error returned by the Predict method of a tree
following the FailOnMissing policy when the sample lacks a value for the
dimension of a traversed split rule.
*/
const ErrMissingValue = PredictionError("sample has no value for split dimension")

/*
ErrMalformedTree is the error returned when a tree does not hold the
leaf and internal node structure expected.
*/
const ErrMalformedTree = PredictionError("malformed tree")

func (pe PredictionError) Error() string {
	return string(pe)
}

func (p *Prediction) String() string {
	return fmt.Sprintf("{class: %d, confidence: %.4f, weight: %d}", p.Class, p.Confidence, p.Weight)
}

/*
Labels is a sequence of optional class codes, such as a
dataset.CategoricalColumn.
*/
type Labels interface {
	Len() int
	Code(i int) (dataset.Code, bool)
}

/*
CountGroups takes a sequence of labels and returns the number of
occurrences of each present class code together with the total
number of present labels.
*/
func CountGroups(labels Labels) (map[dataset.Code]int, int) {
	counts := make(map[dataset.Code]int)
	var total int
	for i := 0; i < labels.Len(); i++ {
		c, ok := labels.Code(i)
		if !ok {
			continue
		}
		counts[c]++
		total++
	}
	return counts, total
}

/*
PredictMajority takes a sequence of labels and returns a prediction
for the class with the highest number of occurrences, ties going to
the smallest class code. Missing labels are ignored. The confidence
of the prediction is the number of occurrences of the winning class
over the number of present labels.

It returns nil when no label is present.
*/
func PredictMajority(labels Labels) *Prediction {
	counts, total := CountGroups(labels)
	if total == 0 {
		return nil
	}
	classes := make([]dataset.Code, 0, len(counts))
	for c := range counts {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool {
		ci, cj := counts[classes[i]], counts[classes[j]]
		if ci != cj {
			return ci > cj
		}
		return classes[i] < classes[j]
	})
	winner := classes[0]
	return &Prediction{
		Class:      winner,
		Confidence: float64(counts[winner]) / float64(total),
		Weight:     total,
	}
}
