package service

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrInvalid   = errors.New("invalid")
	ErrFeedFetch = errors.New("feed fetch failed")
)

// WeightSumError is returned when portfolio holding weights do not sum to 1.
type WeightSumError struct {
	Sum float64
}

func (e *WeightSumError) Error() string {
	return "holding weights must sum to 1"
}

func (e *WeightSumError) Is(target error) bool {
	return target == ErrInvalid
}
