package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoObservations is returned when the input has a header but no data rows.
var ErrNoObservations = errors.New("input contains no observations")

// MissingColumnError reports required columns absent from the input header.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Columns, ", "))
}

// DateParseError reports a DATE cell that matches none of the accepted layouts.
// Row is the 1-based data row, not counting the header.
type DateParseError struct {
	Row   int
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("parse %s at row %d: %q: %v", ColDate, e.Row, e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }
