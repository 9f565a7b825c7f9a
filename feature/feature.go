package feature

import (
	"fmt"
	"math"
	"strconv"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
)

/*
Feature represents a property that can be observed on a row of a table.

Its Kind method tells whether the values of the feature are continuous
numbers or categorical codes.
*/
type Feature interface {
	Name() string
	Kind() dataset.Kind
}

/*
CategoricalFeature represents a property that can only take a value
among a finite set. Each available value is encoded as its position in
the set, so the encoding is stable as long as the set is.
*/
type CategoricalFeature struct {
	name            string
	availableValues []string
	codes           map[string]dataset.Code
}

/*
ContinuousFeature represents a property that can be observed and that can take
a numeric value
*/
type ContinuousFeature struct {
	name string
}

/*
NewCategoricalFeature takes a name string and a slice of available value strings
and returns a categorical feature with the given names and available values.
*/
func NewCategoricalFeature(name string, availableValues []string) *CategoricalFeature {
	codes := make(map[string]dataset.Code, len(availableValues))
	for i, v := range availableValues {
		codes[v] = dataset.Code(i)
	}
	return &CategoricalFeature{name, availableValues, codes}
}

/*
NewContinuousFeature takes a name string and returns a continuous feature with
the given name.
*/
func NewContinuousFeature(name string) *ContinuousFeature {
	return &ContinuousFeature{name}
}

// Name returns a string with the name of the feature
func (cf *CategoricalFeature) Name() string {
	return cf.name
}

// Kind returns dataset.Categorical
func (cf *CategoricalFeature) Kind() dataset.Kind {
	return dataset.Categorical
}

/*
AvailableValues returns a string slice with the values available for the feature
*/
func (cf *CategoricalFeature) AvailableValues() []string {
	return cf.availableValues
}

/*
Encode takes a value and returns its code or an error if the value is not
among the available values of the feature.
*/
func (cf *CategoricalFeature) Encode(value string) (dataset.Code, error) {
	c, ok := cf.codes[value]
	if !ok {
		return 0, fmt.Errorf("categorical feature %s got unknown value %s", cf.name, value)
	}
	return c, nil
}

/*
Decode takes a code and returns the value it stands for or an error if
the code is out of range.
*/
func (cf *CategoricalFeature) Decode(c dataset.Code) (string, error) {
	if int(c) >= len(cf.availableValues) {
		return "", fmt.Errorf("categorical feature %s has no value for code %d", cf.name, c)
	}
	return cf.availableValues[c], nil
}

func (cf *CategoricalFeature) String() string {
	return cf.name
}

// Name returns a string with the name of the feature
func (cf *ContinuousFeature) Name() string {
	return cf.name
}

// Kind returns dataset.Continuous
func (cf *ContinuousFeature) Kind() dataset.Kind {
	return dataset.Continuous
}

/*
Parse takes a raw value and returns it as a float64 or an error if it
cannot be parsed as a finite number.
*/
func (cf *ContinuousFeature) Parse(value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("continuous feature %s expects a number: %w", cf.name, err)
	}
	return cf.check(v)
}

// check rejects NaN and infinities, which cannot be split on or persisted
func (cf *ContinuousFeature) check(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("continuous feature %s expects a finite number, got %v", cf.name, v)
	}
	return v, nil
}

func (cf *ContinuousFeature) String() string {
	return cf.name
}

/*
Names takes a slice of features and returns a slice with their names
in the same order.
*/
func Names(features []Feature) []string {
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = f.Name()
	}
	return names
}

/*
Find takes a slice of features and a name and returns the feature
with that name or nil if there is none.
*/
func Find(features []Feature, name string) Feature {
	for _, f := range features {
		if f.Name() == name {
			return f
		}
	}
	return nil
}
