package resumes

import "errors"

var (
	ErrNotFound      = errors.New("resume not found")
	ErrInvalidInput  = errors.New("invalid resume input")
	ErrPrimaryDelete = errors.New("primary resume cannot be deleted")
)
