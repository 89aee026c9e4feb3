package movie

import "errors"

var (
	ErrNotFound   = errors.New("movie not found")
	ErrValidation = errors.New("validation error")
)
