package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Option errors
	ErrInvalidOption = errors.New("invalid option")
	ErrInvalidMetric = fmt.Errorf("%w: sort metric", ErrInvalidOption)

	// Dataset errors
	ErrEmptyDataset   = errors.New("empty dataset")
	ErrInvalidDataset = errors.New("invalid dataset")

	// Fitting errors
	ErrEstimationFailure = errors.New("estimation failure")
	ErrDegenerateMetric  = errors.New("degenerate metric")
	ErrAllFamiliesFailed = errors.New("all distribution families failed")

	// Registry errors
	ErrUnknownFamily = errors.New("unknown distribution family")
)

// Error constructors with context
func NewInvalidOptionError(option string, value string, reason string) error {
	return fmt.Errorf("%w %s=%q: %s", ErrInvalidOption, option, value, reason)
}

func NewInvalidMetricError(value string) error {
	return fmt.Errorf("%w %q: expected one of nll, kse, r2, chisquare, rmse", ErrInvalidMetric, value)
}

func NewInvalidDatasetError(index int, value float64) error {
	return fmt.Errorf("%w: value %v at index %d is not finite", ErrInvalidDataset, value, index)
}

func NewEstimationError(family string, err error) error {
	return fmt.Errorf("%w for %s: %v", ErrEstimationFailure, family, err)
}

func NewDegenerateMetricError(metric string, x float64) error {
	return fmt.Errorf("%w: %s undefined at x=%v (fitted CDF is zero)", ErrDegenerateMetric, metric, x)
}

func NewAllFamiliesFailedError(attempted int) error {
	return fmt.Errorf("%w: none of %d attempted families produced a fit", ErrAllFamiliesFailed, attempted)
}

func NewUnknownFamilyError(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownFamily, name)
}

// Error checking helpers
func IsOptionError(err error) bool {
	return errors.Is(err, ErrInvalidOption)
}

func IsDatasetError(err error) bool {
	return errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrInvalidDataset)
}

func IsFatalFitError(err error) bool {
	return IsOptionError(err) ||
		IsDatasetError(err) ||
		errors.Is(err, ErrAllFamiliesFailed)
}
