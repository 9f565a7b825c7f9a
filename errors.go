package decision

import (
	"errors"
	"fmt"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
)

// Error represents an error related with tree building
type Error string

/*
ErrColumnKind is the error wrapped by an InputError when a column
exists but holds values of the wrong kind.
*/
const ErrColumnKind = Error("wrong column kind")

func (e Error) Error() string {
	return string(e)
}

/*
InputError is the error returned when the table given to build a tree
or search splits cannot be used as requested: a feature or target
column is absent or its values are of the wrong kind. Building aborts
without producing a tree.
*/
type InputError struct {
	Column string
	Reason string
	Err    error
}

func (ie *InputError) Error() string {
	if ie.Err != nil {
		return fmt.Sprintf("column %q: %s: %v", ie.Column, ie.Reason, ie.Err)
	}
	return fmt.Sprintf("column %q: %s", ie.Column, ie.Reason)
}

// Unwrap returns the underlying error
func (ie *InputError) Unwrap() error {
	return ie.Err
}

func lookupColumn(t dataset.Table, name, role string) (dataset.Column, error) {
	c, err := t.Column(name)
	if err != nil {
		if errors.Is(err, dataset.ErrColumnNotFound) {
			return nil, &InputError{Column: name, Reason: role + " column not found", Err: err}
		}
		return nil, err
	}
	return c, nil
}

func labelColumn(t dataset.Table, target string) (*dataset.CategoricalColumn, error) {
	c, err := lookupColumn(t, target, "target")
	if err != nil {
		return nil, err
	}
	lc, ok := c.(*dataset.CategoricalColumn)
	if !ok {
		return nil, &InputError{Column: target, Reason: fmt.Sprintf("target column is %v, expected categorical", c.Kind()), Err: ErrColumnKind}
	}
	return lc, nil
}

func continuousColumn(t dataset.Table, name string) (*dataset.ContinuousColumn, error) {
	c, err := lookupColumn(t, name, "feature")
	if err != nil {
		return nil, err
	}
	cc, ok := c.(*dataset.ContinuousColumn)
	if !ok {
		return nil, &InputError{Column: name, Reason: fmt.Sprintf("feature column is %v, expected continuous", c.Kind()), Err: ErrColumnKind}
	}
	return cc, nil
}
