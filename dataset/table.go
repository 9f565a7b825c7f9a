package dataset

import (
	"fmt"
	"strings"
)

// Error represents an error related with tables
type Error string

/*
ErrColumnNotFound is the error returned (possibly wrapped) when a
column is requested by a name the table does not have.
*/
const ErrColumnNotFound = Error("column not found")

/*
ErrMisalignedColumns is the error returned when building a table
from columns with different lengths or repeated names.
*/
const ErrMisalignedColumns = Error("misaligned columns")

func (e Error) Error() string {
	return string(e)
}

/*
Table represents a fully materialized collection of rows
organized in named columns.

Its Column method returns the column with the given name or an
error wrapping ErrColumnNotFound.

Its Filter method takes a predicate over row indices and returns a
new table with only the rows satisfying it, preserving every column.
The receiver is never modified.

Its Sample method returns the given row as a Sample.
*/
type Table interface {
	Column(name string) (Column, error)
	Columns() []string
	Count() int
	Filter(keep func(row int) bool) Table
	Sample(row int) Sample
}

type memoryTable struct {
	columns []Column
	index   map[string]int
	count   int
}

/*
New takes a list of columns and returns a Table built with them or
an error if the columns do not have the same length or their names
are repeated.
*/
func New(columns ...Column) (Table, error) {
	t := &memoryTable{columns: columns, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if _, ok := t.index[c.Name()]; ok {
			return nil, fmt.Errorf("%w: column %q defined twice", ErrMisalignedColumns, c.Name())
		}
		if i == 0 {
			t.count = c.Len()
		} else if c.Len() != t.count {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", ErrMisalignedColumns, c.Name(), c.Len(), t.count)
		}
		t.index[c.Name()] = i
	}
	return t, nil
}

func (t *memoryTable) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return t.columns[i], nil
}

func (t *memoryTable) Columns() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name()
	}
	return names
}

func (t *memoryTable) Count() int {
	return t.count
}

func (t *memoryTable) Filter(keep func(row int) bool) Table {
	var rows []int
	for r := 0; r < t.count; r++ {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	columns := make([]Column, len(t.columns))
	for i, c := range t.columns {
		columns[i] = c.Select(rows)
	}
	return &memoryTable{columns, t.index, len(rows)}
}

func (t *memoryTable) Sample(row int) Sample {
	return &tableSample{t, row}
}

func (t *memoryTable) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%d rows]", t.count))
	for _, c := range t.columns {
		sb.WriteString(fmt.Sprintf(" %s(%v)", c.Name(), c.Kind()))
	}
	return sb.String()
}
