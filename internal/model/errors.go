package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPositions is returned when a prediction is requested with an empty selection.
	ErrNoPositions = errors.New("no positions selected")
	// ErrUnknownStrategy is returned for strategy names other than "rules" and "prefix".
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// DataFormatError reports an input table that cannot be used: unreadable under
// every tried encoding/delimiter, empty, or missing the step columns.
// Callers treat it as "no usable data" and stop.
type DataFormatError struct {
	Source string
	Reason string
	Err    error
}

func (e *DataFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data format %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("data format %s: %s", e.Source, e.Reason)
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

// IsDataFormat reports whether err is (or wraps) a DataFormatError.
func IsDataFormat(err error) bool {
	var dfe *DataFormatError
	return errors.As(err, &dfe)
}
