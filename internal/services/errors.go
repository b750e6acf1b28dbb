package services

import (
	"context"
	"errors"
	"fmt"
	"scopewatch/internal/models"
	"scopewatch/internal/storage"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrSigningFailure      = errors.New("signing failure")
)

// storeError maps an entity store failure onto the service error kinds.
// Out-of-set enum values read from the store are data faults and pass through.
func storeError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, models.ErrUnknownScopeStatus), errors.Is(err, models.ErrUnknownTimeUnit):
		return err
	}
	return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
}

func signError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	return fmt.Errorf("%w: %w", ErrSigningFailure, err)
}
