package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrNavigationTimeout = errors.New("navigation timed out")
	ErrElementNotFound   = errors.New("element not found")
	ErrNoResults         = errors.New("results container not found")
	ErrBrowserClosed     = errors.New("browser session is closed")
)

// MissingInputError reports that a stage's required input file (the previous
// stage's output) is absent. Fatal: the pipeline aborts.
type MissingInputError struct {
	Stage Stage
	Path  string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input for stage %q: %s (run the %q stage first)", e.Stage, e.Path, e.Stage.Input())
}

// ExtractionError wraps a single-record page failure (element not found,
// navigation timeout). Recovered locally: the record is skipped with a
// warning, never aborting the stage.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// FetchError wraps errors from the HTTP fetch path.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StorageError wraps errors from reading or writing stage output files.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
