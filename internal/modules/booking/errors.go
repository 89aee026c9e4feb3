package booking

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrInsufficientBalance = errors.New("insufficient score balance")
	ErrNotFound            = errors.New("booking not found")
	ErrMovieNotFound       = errors.New("movie not found")
	ErrPromotionNotFound   = errors.New("promotion not found")
	ErrPromotionInactive   = errors.New("promotion is not active")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidTransition   = errors.New("invalid status transition")
)
