package store

import "errors"

var (
	// ErrNotFound is returned by Get when no record exists for a path.
	// During a restore pass this indicates an invariant violation (the path
	// was never captured); during existence checks it is an expected outcome.
	ErrNotFound = errors.New("metadata record not found")

	// ErrUnavailable is returned by Open when the store file cannot be
	// created or opened.
	ErrUnavailable = errors.New("metadata store unavailable")
)
