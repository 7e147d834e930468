package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrImageCorrupted is returned when a poster cannot be loaded or rendered.
	ErrImageCorrupted = errors.New("image data corrupted")
	// ErrMissingRating indicates the source rating is absent or not a number.
	ErrMissingRating = errors.New("movie rating missing")
	// ErrCatalogueNotLoaded is returned when a question is requested before the catalogue is ready.
	ErrCatalogueNotLoaded = errors.New("catalogue not loaded")
)

// DataErrorKind classifies catalogue source failures.
type DataErrorKind string

const (
	DataErrorTransport DataErrorKind = "transport"
	DataErrorBadStatus DataErrorKind = "badStatus"
	DataErrorNoData    DataErrorKind = "noData"
	DataErrorDecode    DataErrorKind = "decode"
)

// DataError is the typed failure of a DataSource.
type DataError struct {
	Kind       DataErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *DataError) Error() string {
	if e == nil {
		return "data error"
	}
	switch {
	case e.Kind == DataErrorBadStatus && e.StatusCode != 0:
		return fmt.Sprintf("%s: HTTP %d", e.Kind, e.StatusCode)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError wraps err with the given kind.
func NewDataError(kind DataErrorKind, err error) *DataError {
	return &DataError{Kind: kind, Err: err}
}
