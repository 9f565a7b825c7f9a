/*
Package inputsample provides an implementation of dataset.Sample that is read
from an io.Reader.
*/
package inputsample

import (
	"bufio"
	"fmt"
	"io"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
)

/*
Sample is a dataset.Sample whose values are read on demand.

Its Err method returns the first error found while requesting or
reading a value, after which every value is considered missing.
*/
type Sample interface {
	dataset.Sample
	Err() error
}

type readSample struct {
	obtainedValues        map[string]*float64
	undefinedValue        string
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
	features              []feature.Feature
	err                   error
}

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(feature.Feature) error
	RejectValueFor(feature.Feature, string) error
}

/*
New takes an io.Reader, a slice of features, a
FeatureValueRequester and an undefinedValue coding string
and returns a Sample.

The returned Sample ValueFor method reads feature values first
requesting them with the given FeatureValueRequester and
then parsing the values from the reader. Each value is read
once and remembered afterwards.

The parsing expects each value to be presented ending with the
'\n' character, that is in new lines. Also, the undefinedValue
string followed by the '\n' character will be interpreted as an
undefined value.

For a feature.ContinuousFeature, lines will be read from the
reader until a line containing a valid float64 number is found.

For a feature.CategoricalFeature, lines will be read from the
reader until a line with a valid value for the feature is found,
its code being the value of the sample.

For both kind of feature.Feature, non accepted values will be
rejected with the FeatureValueRequester's RejectValueFor method.

Values for features not in the given features slice are missing.
*/
func New(r io.Reader, features []feature.Feature, featureValueRequester FeatureValueRequester, undefinedValue string) Sample {
	scanner := bufio.NewScanner(r)
	return &readSample{make(map[string]*float64), undefinedValue, scanner, featureValueRequester, features, nil}
}

func (rs *readSample) ValueFor(name string) (float64, bool) {
	if rs.err != nil {
		return 0, false
	}
	if value, ok := rs.obtainedValues[name]; ok {
		if value == nil {
			return 0, false
		}
		return *value, true
	}
	f := feature.Find(rs.features, name)
	if f == nil {
		return 0, false
	}
	err := rs.featureValueRequester.RequestValueFor(f)
	if err == nil {
		err = rs.read(f)
	}
	if err != nil {
		rs.err = err
		return 0, false
	}
	return rs.ValueFor(name)
}

func (rs *readSample) Err() error {
	return rs.err
}

func (rs *readSample) read(f feature.Feature) error {
	var err error
	for rs.scanner.Scan() {
		line := rs.scanner.Text()
		if line == rs.undefinedValue {
			rs.obtainedValues[f.Name()] = nil
			return nil
		}
		var value float64
		switch f := f.(type) {
		case *feature.ContinuousFeature:
			value, err = f.Parse(line)
		case *feature.CategoricalFeature:
			var code dataset.Code
			code, err = f.Encode(line)
			value = float64(code)
		default:
			return fmt.Errorf("do not know how to read a value for features of type %T", f)
		}
		if err == nil {
			rs.obtainedValues[f.Name()] = &value
			return nil
		}
		err = rs.featureValueRequester.RejectValueFor(f, line)
		if err != nil {
			return err
		}
	}
	err = rs.scanner.Err()
	if err != nil {
		return err
	}
	return fmt.Errorf("EOF when requesting value")
}
