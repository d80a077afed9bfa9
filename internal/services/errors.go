package services

import (
	"errors"

	"github.com/wirkaufenfair/fairprice/internal/pricing"
)

var (
	ErrPriceReportNotFound = errors.New("Price report not found")
	ErrReportFinalized     = pricing.ErrReportFinalized
)

// ValidationError marks an error caused by bad client input.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(msg string) error {
	return &ValidationError{Err: errors.New(msg)}
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	}
	return limit
}
