package services

import (
	"context"
	"errors"
	"scopewatch/internal/models"
	"scopewatch/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregationService_StatusCounts(t *testing.T) {
	store, seed := testutil.NewSQLiteStore(t)
	id := seed.Monitor("frontdoor")
	seed.DayScopes(id, jan1, 4, models.StatusArchived, 1)
	seed.DayScopes(id, jan1.AddDate(0, 1, 0), 1, models.StatusError, 1)
	svc := NewAggregationService(store)

	counts, err := svc.StatusCounts(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusHistogram{models.StatusArchived: 4, models.StatusError: 1}, counts)
	for _, n := range counts {
		assert.Positive(t, n)
	}
}

func TestAggregationService_StatusCounts_NoScopes(t *testing.T) {
	store, seed := testutil.NewSQLiteStore(t)
	id := seed.Monitor("frontdoor")
	svc := NewAggregationService(store)

	counts, err := svc.StatusCounts(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestAggregationService_ArchivedDailyFileCount(t *testing.T) {
	store, seed := testutil.NewSQLiteStore(t)
	id := seed.Monitor("frontdoor")
	seed.DayScopes(id, jan1, 3, models.StatusArchived, 100)
	seed.DayScopes(id, jan1.AddDate(0, 1, 0), 2, models.StatusProcessed, 7)
	seed.Scope(models.MonitoringScope{
		MonitorID: id, Unit: models.UnitWeek, Value: "2024-W10", StartsAt: jan1, EndsAt: jan1.AddDate(0, 0, 7),
		FilesCount: 1000, Status: models.StatusArchived,
	})
	svc := NewAggregationService(store)

	sum, err := svc.ArchivedDailyFileCount(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, sum)
	assert.Equal(t, int64(300), *sum)
}

func TestAggregationService_ArchivedDailyFileCount_AbsentIsNil(t *testing.T) {
	store, seed := testutil.NewSQLiteStore(t)
	id := seed.Monitor("backyard")
	seed.DayScopes(id, jan1, 3, models.StatusPending, 5)
	svc := NewAggregationService(store)

	sum, err := svc.ArchivedDailyFileCount(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, sum)
}

func TestAggregationService_ArchivedDailyFileCount_ZeroIsZero(t *testing.T) {
	store, seed := testutil.NewSQLiteStore(t)
	id := seed.Monitor("frontdoor")
	seed.DayScopes(id, jan1, 2, models.StatusArchived, 0)
	svc := NewAggregationService(store)

	sum, err := svc.ArchivedDailyFileCount(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, sum)
	assert.Equal(t, int64(0), *sum)
}

func TestAggregationService_StoreFailureIsUpstream(t *testing.T) {
	svc := NewAggregationService(&failingStore{err: errors.New("timeout")})

	_, err := svc.StatusCounts(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	_, err = svc.ArchivedDailyFileCount(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}
