package publishedresumes

import "errors"

var (
	ErrNotFound     = errors.New("published resume not found")
	ErrInvalidInput = errors.New("invalid publish input")
	ErrSlugTaken    = errors.New("slug already in use")
	// ErrConflict reports a concurrent first publish for the same source
	// resume; the datastore kept exactly one row.
	ErrConflict = errors.New("publish conflict")
)
