package services

import (
	"context"
	"fmt"
	"scopewatch/internal/models"
	"scopewatch/internal/storage"
)

type ScopeQueryServiceInterface interface {
	ListScopes(ctx context.Context, monitorID int64, unit *models.TimeUnit, pageNumber, pageSize int) ([]models.MonitoringScope, int, error)
}

type ScopeQueryService struct {
	store storage.EntityStoreInterface
}

func NewScopeQueryService(store storage.EntityStoreInterface) ScopeQueryServiceInterface {
	return &ScopeQueryService{store: store}
}

// ListScopes returns one page of a monitor's scopes, newest end first, and the
// total count over the same filter. Pages start at 1.
func (s *ScopeQueryService) ListScopes(ctx context.Context, monitorID int64, unit *models.TimeUnit, pageNumber, pageSize int) ([]models.MonitoringScope, int, error) {
	if pageNumber < 1 {
		return nil, 0, fmt.Errorf("%w: page number must be at least 1, got %d", ErrInvalidArgument, pageNumber)
	}
	if pageSize < 1 {
		return nil, 0, fmt.Errorf("%w: page size must be at least 1, got %d", ErrInvalidArgument, pageSize)
	}
	if unit != nil && !unit.Valid() {
		return nil, 0, fmt.Errorf("%w: %w: %q", ErrInvalidArgument, models.ErrUnknownTimeUnit, string(*unit))
	}

	filter := storage.NewScopeFilter(monitorID).WithUnit(unit)

	scopes, err := s.store.ListScopes(ctx, filter, pageSize, (pageNumber-1)*pageSize)
	if err != nil {
		return nil, 0, storeError(err)
	}
	if scopes == nil {
		scopes = []models.MonitoringScope{}
	}

	total, err := s.store.CountScopes(ctx, filter)
	if err != nil {
		return nil, 0, storeError(err)
	}

	return scopes, total, nil
}
