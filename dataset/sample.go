package dataset

import (
	"fmt"
	"math"
)

/*
Sample represents an item to classify or from which to learn how to
classify them.

Its ValueFor method returns the numeric value of the sample for the
column with the given name and false if the sample has no value for it.
Categorical values are returned as their code.
*/
type Sample interface {
	ValueFor(name string) (float64, bool)
}

type sample struct {
	featureValues map[string]float64
}

type tableSample struct {
	t   *memoryTable
	row int
}

/*
NewSample takes a map of column names to values and returns a
sample. Absent names and NaN values are considered missing.
*/
func NewSample(featureValues map[string]float64) Sample {
	return &sample{featureValues}
}

func (s *sample) ValueFor(name string) (float64, bool) {
	v, ok := s.featureValues[name]
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func (s *sample) String() string {
	return fmt.Sprintf("%v", s.featureValues)
}

func (ts *tableSample) ValueFor(name string) (float64, bool) {
	i, ok := ts.t.index[name]
	if !ok {
		return 0, false
	}
	switch c := ts.t.columns[i].(type) {
	case *ContinuousColumn:
		return c.Value(ts.row)
	case *CategoricalColumn:
		code, ok := c.Code(ts.row)
		return float64(code), ok
	}
	return 0, false
}

func (ts *tableSample) String() string {
	return fmt.Sprintf("{row %d}", ts.row)
}
