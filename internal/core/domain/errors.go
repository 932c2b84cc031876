package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested festival day has no schedule.
	ErrNotFound = errors.New("domain: not found")

	// ErrInsufficientData indicates no artist of a day could be scored.
	ErrInsufficientData = errors.New("domain: insufficient data")

	// ErrInvalidVector indicates a feature vector that cannot be compared.
	ErrInvalidVector = errors.New("domain: invalid feature vector")
)

// InvalidVectorError provides context for a rejected feature vector.
type InvalidVectorError struct {
	Reason string
}

func (e *InvalidVectorError) Error() string {
	if e.Reason == "" {
		return ErrInvalidVector.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidVector.Error(), e.Reason)
}

func (e *InvalidVectorError) Is(target error) bool {
	return target == ErrInvalidVector
}
