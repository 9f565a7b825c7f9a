package dataset

import (
	"fmt"
	"math"
)

// Code is the integer representation of a categorical value,
// such as a class label.
type Code uint32

// Kind tells how the values of a Column must be interpreted.
type Kind int

const (
	// Continuous columns hold ordered numeric values.
	Continuous Kind = iota
	// Categorical columns hold small unsigned integer codes.
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Categorical:
		return "categorical"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

/*
Column represents a named sequence of optional values, one per row,
aligned by row index with the rest of the columns of a Table.

Its Missing method tells whether the value for the given row is undefined.

Its Unique method returns a column with the distinct present values,
in no particular order.

Its Select method returns a column with the values of the given rows,
in the given order.
*/
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	Missing(row int) bool
	Unique() Column
	Select(rows []int) Column
}

/*
ContinuousColumn is a Column of float64 values. Missing values
are kept as NaN.
*/
type ContinuousColumn struct {
	name   string
	values []float64
}

/*
CategoricalColumn is a Column of Code values with a presence
mask for missing values.
*/
type CategoricalColumn struct {
	name    string
	codes   []Code
	present []bool
}

/*
NewContinuousColumn takes a name and a slice of float64 values and
returns a ContinuousColumn with them. NaN values are considered missing.
The slice is not copied.
*/
func NewContinuousColumn(name string, values []float64) *ContinuousColumn {
	return &ContinuousColumn{name, values}
}

/*
NewCategoricalColumn takes a name, a slice of codes and a presence
mask and returns a CategoricalColumn with them. A nil mask means every
code is present. The slices are not copied.
*/
func NewCategoricalColumn(name string, codes []Code, present []bool) *CategoricalColumn {
	if present == nil {
		present = make([]bool, len(codes))
		for i := range present {
			present[i] = true
		}
	}
	return &CategoricalColumn{name, codes, present}
}

/*
CategoricalOf takes a name and a list of integer codes and returns a
CategoricalColumn with them, negative codes standing for missing values.
*/
func CategoricalOf(name string, codes ...int) *CategoricalColumn {
	cs := make([]Code, len(codes))
	present := make([]bool, len(codes))
	for i, c := range codes {
		if c >= 0 {
			cs[i] = Code(c)
			present[i] = true
		}
	}
	return &CategoricalColumn{name, cs, present}
}

// Name returns the name of the column
func (cc *ContinuousColumn) Name() string {
	return cc.name
}

// Kind returns Continuous
func (cc *ContinuousColumn) Kind() Kind {
	return Continuous
}

// Len returns the number of rows in the column, missing values included
func (cc *ContinuousColumn) Len() int {
	return len(cc.values)
}

// Missing returns whether the value for the given row is NaN
func (cc *ContinuousColumn) Missing(row int) bool {
	return math.IsNaN(cc.values[row])
}

/*
Value returns the value for the given row and a boolean that is
false when the value is missing.
*/
func (cc *ContinuousColumn) Value(row int) (float64, bool) {
	v := cc.values[row]
	return v, !math.IsNaN(v)
}

/*
Unique returns a ContinuousColumn with the distinct present values
of the column in order of first appearance.
*/
func (cc *ContinuousColumn) Unique() Column {
	seen := make(map[float64]bool)
	var values []float64
	for _, v := range cc.values {
		if math.IsNaN(v) || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return &ContinuousColumn{cc.name, values}
}

// Select returns a ContinuousColumn with the values of the given rows
func (cc *ContinuousColumn) Select(rows []int) Column {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = cc.values[r]
	}
	return &ContinuousColumn{cc.name, values}
}

func (cc *ContinuousColumn) String() string {
	return fmt.Sprintf("%s%v", cc.name, cc.values)
}

// Name returns the name of the column
func (cc *CategoricalColumn) Name() string {
	return cc.name
}

// Kind returns Categorical
func (cc *CategoricalColumn) Kind() Kind {
	return Categorical
}

// Len returns the number of rows in the column, missing values included
func (cc *CategoricalColumn) Len() int {
	return len(cc.codes)
}

// Missing returns whether the code for the given row is undefined
func (cc *CategoricalColumn) Missing(row int) bool {
	return !cc.present[row]
}

/*
Code returns the code for the given row and a boolean that is
false when the code is missing.
*/
func (cc *CategoricalColumn) Code(row int) (Code, bool) {
	return cc.codes[row], cc.present[row]
}

/*
Unique returns a CategoricalColumn with the distinct present codes
of the column in order of first appearance.
*/
func (cc *CategoricalColumn) Unique() Column {
	seen := make(map[Code]bool)
	var codes []Code
	for i, c := range cc.codes {
		if !cc.present[i] || seen[c] {
			continue
		}
		seen[c] = true
		codes = append(codes, c)
	}
	return NewCategoricalColumn(cc.name, codes, nil)
}

/*
ValueCounts returns a map with the number of occurrences of
every present code in the column.
*/
func (cc *CategoricalColumn) ValueCounts() map[Code]int {
	result := make(map[Code]int)
	for i, c := range cc.codes {
		if cc.present[i] {
			result[c]++
		}
	}
	return result
}

// Select returns a CategoricalColumn with the codes of the given rows
func (cc *CategoricalColumn) Select(rows []int) Column {
	codes := make([]Code, len(rows))
	present := make([]bool, len(rows))
	for i, r := range rows {
		codes[i] = cc.codes[r]
		present[i] = cc.present[r]
	}
	return &CategoricalColumn{cc.name, codes, present}
}

func (cc *CategoricalColumn) String() string {
	values := make([]string, len(cc.codes))
	for i, c := range cc.codes {
		if cc.present[i] {
			values[i] = fmt.Sprintf("%d", c)
		} else {
			values[i] = "?"
		}
	}
	return fmt.Sprintf("%s%v", cc.name, values)
}
