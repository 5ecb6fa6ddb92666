package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Construction-time validation errors
	ErrInvalidParameter = errors.New("invalid parameter")

	// Features explicitly stubbed until their behavior is decided
	ErrUnsupported = errors.New("unsupported operation")

	// Numeric singularities during stress computation
	ErrSingularity = errors.New("stress singularity")

	// Monte Carlo bookkeeping errors
	ErrEnsembleMismatch = errors.New("ensemble mismatch")

	// Profile errors
	ErrNotFound       = errors.New("resource not found")
	ErrLayerNotFound  = fmt.Errorf("%w: layer", ErrNotFound)
	ErrDuplicateLayer = errors.New("duplicate layer name")
	ErrEmptyProfile   = errors.New("soil profile has no layers")
)

// Error constructors with context
func NewInvalidParameterError(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidParameter, field, reason)
}

func NewUnsupportedError(feature string) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, feature)
}

func NewEnsembleMismatchError(want, got int) error {
	return fmt.Errorf("%w: expected %d trials, got %d", ErrEnsembleMismatch, want, got)
}

func NewLayerNotFoundError(name string) error {
	return fmt.Errorf("%w %q", ErrLayerNotFound, name)
}

// Error checking helpers
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
