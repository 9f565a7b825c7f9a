package feature

import (
	"fmt"
	"math"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
)

// UndefinedValue is the raw value standing for a missing value
const UndefinedValue = "?"

/*
TableBuilder accumulates rows of raw values for a list of features and
builds a dataset.Table with a column per feature. Continuous features
become continuous columns and categorical features become categorical
columns with their values encoded.
*/
type TableBuilder struct {
	features   []Feature
	continuous map[string][]float64
	codes      map[string][]dataset.Code
	present    map[string][]bool
	rows       int
}

/*
NewTableBuilder takes a slice of features and returns a TableBuilder
for them.
*/
func NewTableBuilder(features []Feature) *TableBuilder {
	tb := &TableBuilder{
		features:   features,
		continuous: make(map[string][]float64),
		codes:      make(map[string][]dataset.Code),
		present:    make(map[string][]bool),
	}
	return tb
}

/*
AddRow takes a map of feature names to raw values and appends a row
with them. Raw values may be strings, byte slices, numbers, booleans or
nil. Nil values, the UndefinedValue string and features absent from
the map are missing values. An error is returned if a value cannot be
parsed or encoded for its feature, in which case no row is appended.
*/
func (tb *TableBuilder) AddRow(values map[string]interface{}) error {
	parsedValues := make([]float64, len(tb.features))
	parsedCodes := make([]dataset.Code, len(tb.features))
	present := make([]bool, len(tb.features))
	for i, f := range tb.features {
		raw, ok := values[f.Name()]
		if !ok || raw == nil {
			continue
		}
		if b, ok := raw.([]byte); ok {
			raw = string(b)
		}
		if s, ok := raw.(string); ok && s == UndefinedValue {
			continue
		}
		var err error
		switch f := f.(type) {
		case *ContinuousFeature:
			parsedValues[i], err = toFloat(f, raw)
		case *CategoricalFeature:
			parsedCodes[i], err = f.Encode(fmt.Sprintf("%v", raw))
		default:
			err = fmt.Errorf("unknown feature type %T for feature %v", f, f.Name())
		}
		if err != nil {
			return err
		}
		present[i] = true
	}
	for i, f := range tb.features {
		name := f.Name()
		if f.Kind() == dataset.Continuous {
			v := math.NaN()
			if present[i] {
				v = parsedValues[i]
			}
			tb.continuous[name] = append(tb.continuous[name], v)
			continue
		}
		tb.codes[name] = append(tb.codes[name], parsedCodes[i])
		tb.present[name] = append(tb.present[name], present[i])
	}
	tb.rows++
	return nil
}

// Count returns the number of rows added so far
func (tb *TableBuilder) Count() int {
	return tb.rows
}

/*
Table returns a dataset.Table with the rows added so far, or an
error if the features cannot make up a table.
*/
func (tb *TableBuilder) Table() (dataset.Table, error) {
	columns := make([]dataset.Column, 0, len(tb.features))
	for _, f := range tb.features {
		name := f.Name()
		if f.Kind() == dataset.Continuous {
			values := tb.continuous[name]
			if values == nil {
				values = []float64{}
			}
			columns = append(columns, dataset.NewContinuousColumn(name, values))
			continue
		}
		codes, present := tb.codes[name], tb.present[name]
		if codes == nil {
			codes, present = []dataset.Code{}, []bool{}
		}
		columns = append(columns, dataset.NewCategoricalColumn(name, codes, present))
	}
	return dataset.New(columns...)
}

func toFloat(f *ContinuousFeature, raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return f.check(v)
	case float32:
		return f.check(float64(v))
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return f.Parse(v)
	}
	return 0, fmt.Errorf("continuous feature %s expects a number, got %T value", f.Name(), raw)
}
