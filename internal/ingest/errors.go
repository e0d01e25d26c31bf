package ingest

import (
	"errors"
	"fmt"
)

// Classified pipeline errors. Callers match with errors.Is.
var (
	// ErrInvalidReference indicates a malformed or unsupported repository
	// locator. Detected before any process is spawned; caller-correctable.
	ErrInvalidReference = errors.New("invalid repository reference")

	// ErrScratchIO indicates a scratch directory or file could not be
	// created, written, or confirmed writable. Environment fault, not
	// caller-correctable.
	ErrScratchIO = errors.New("scratch filesystem failure")

	// ErrProcessFailed indicates the external tool exited non-zero.
	ErrProcessFailed = errors.New("ingestion tool failed")

	// ErrProcessTimeout indicates the external tool exceeded its wall-clock
	// bound and was terminated. Matches ErrProcessFailed under errors.Is so
	// callers can treat both uniformly; kept distinct for diagnostics.
	ErrProcessTimeout = fmt.Errorf("%w: timed out", ErrProcessFailed)

	// ErrEmptyResult indicates the tool exited zero but produced no usable
	// content. Distinct from ErrProcessFailed: the tool itself reported
	// success.
	ErrEmptyResult = errors.New("ingestion tool produced no content")
)
