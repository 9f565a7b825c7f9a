package feature

import (
	"fmt"
	"strconv"
)

// Branch identifies one of the two partitions a SplitRule produces
type Branch int

const (
	// Lower is the partition of values strictly below the cutoff
	Lower Branch = iota
	// Higher is the partition of values greater than or equal to the cutoff
	Higher
)

func (b Branch) String() string {
	if b == Higher {
		return "higher"
	}
	return "lower"
}

/*
SplitRule is a binary constraint on a continuous feature: values greater
than or equal to Cutoff belong to the Higher partition, the rest to the
Lower one.
*/
type SplitRule struct {
	Dimension string
	Cutoff    float64
}

// Route returns the partition the given value belongs to
func (sr SplitRule) Route(v float64) Branch {
	if v >= sr.Cutoff {
		return Higher
	}
	return Lower
}

/*
SatisfiedBy returns whether the given value belongs to the given
partition of the rule.
*/
func (sr SplitRule) SatisfiedBy(b Branch, v float64) bool {
	return sr.Route(v) == b
}

func (sr SplitRule) String() string {
	return fmt.Sprintf("%s >= %s", sr.Dimension, strconv.FormatFloat(sr.Cutoff, 'g', -1, 64))
}
