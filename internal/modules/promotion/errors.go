package promotion

import "errors"

var (
	ErrNotFound   = errors.New("promotion not found")
	ErrValidation = errors.New("validation error")
)
