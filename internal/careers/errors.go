package careers

import "errors"

var (
	ErrNotFound     = errors.New("career not found")
	ErrInvalidInput = errors.New("invalid career input")
)
