package services

import (
	"context"
	"scopewatch/internal/models"
	"scopewatch/internal/storage"
)

type AggregationServiceInterface interface {
	StatusCounts(ctx context.Context, monitorID int64) (models.StatusHistogram, error)
	ArchivedDailyFileCount(ctx context.Context, monitorID int64) (*int64, error)
}

type AggregationService struct {
	store storage.EntityStoreInterface
}

func NewAggregationService(store storage.EntityStoreInterface) AggregationServiceInterface {
	return &AggregationService{store: store}
}

// StatusCounts never reports a status with a zero count.
func (a *AggregationService) StatusCounts(ctx context.Context, monitorID int64) (models.StatusHistogram, error) {
	counts, err := a.store.CountScopesByStatus(ctx, storage.NewScopeFilter(monitorID))
	if err != nil {
		return nil, storeError(err)
	}

	histogram := make(models.StatusHistogram, len(counts))
	for status, n := range counts {
		if n > 0 {
			histogram[status] = n
		}
	}
	return histogram, nil
}

// ArchivedDailyFileCount sums files over archived DAY scopes. Nil means no
// such scope exists, which is distinct from a sum of zero.
func (a *AggregationService) ArchivedDailyFileCount(ctx context.Context, monitorID int64) (*int64, error) {
	day := models.UnitDay
	filter := storage.NewScopeFilter(monitorID).WithUnit(&day).WithStatus(models.StatusArchived)

	sum, err := a.store.SumFilesCount(ctx, filter)
	if err != nil {
		return nil, storeError(err)
	}
	return sum, nil
}
