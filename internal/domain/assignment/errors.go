package assignment

import (
	"errors"
	"fmt"
)

// ErrNoData reports an empty event table. Callers render the no-data chart
// instead of failing.
var ErrNoData = errors.New("no data available")

type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("event table is missing required column %q", e.Column)
}

type DataFormatError struct {
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("column %q row %d: cannot parse %q as timestamp", e.Column, e.Row, e.Value)
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

type InvalidArgumentError struct {
	Name  string
	Value string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %q: must be one of D, W, M, Y", e.Name, e.Value)
}
