package ingest

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither workbooks
	// nor YAML/JSON series documents.
	ErrUnsupportedFormat = errors.New("unsupported series file format")

	// ErrHeaderNotFound is returned when no row of a sheet has a DATE cell.
	ErrHeaderNotFound = errors.New("no DATE header row")

	// ErrColumnNotFound is returned when the requested column or series is
	// missing from a file.
	ErrColumnNotFound = errors.New("column not found")
)

// SourceError reports which source failed to load.
type SourceError struct {
	Source string
	File   string
	Err    error
}

func (e *SourceError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("series %q: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("series %q (%s): %v", e.Source, e.File, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
