package services

import (
	"context"
	"errors"
	"scopewatch/internal/models"
	"scopewatch/internal/storage"
	"scopewatch/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan1 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// failingStore fails every query with err.
type failingStore struct {
	storage.EntityStoreInterface
	err error
}

func (f *failingStore) FindMonitorByName(_ context.Context, _ string) (*models.Monitor, error) {
	return nil, f.err
}
func (f *failingStore) ListMonitors(_ context.Context) ([]models.Monitor, error) { return nil, f.err }
func (f *failingStore) ListScopes(_ context.Context, _ storage.ScopeFilter, _, _ int) ([]models.MonitoringScope, error) {
	return nil, f.err
}
func (f *failingStore) CountScopesByStatus(_ context.Context, _ storage.ScopeFilter) (models.StatusHistogram, error) {
	return nil, f.err
}
func (f *failingStore) SumFilesCount(_ context.Context, _ storage.ScopeFilter) (*int64, error) {
	return nil, f.err
}

func TestScopeQueryService_ThirdPageOfThirtyTwo(t *testing.T) {
	store, seed := testutil.NewSQLiteStore(t)
	id := seed.Monitor("frontdoor")
	ids := seed.DayScopes(id, jan1, 32, models.StatusArchived, 1)
	svc := NewScopeQueryService(store)

	day := models.UnitDay
	scopes, total, err := svc.ListScopes(context.Background(), id, &day, 3, 15)
	require.NoError(t, err)
	require.Len(t, scopes, 2)
	assert.Equal(t, 32, total)

	// items 31 and 32 of the newest-first order are the two oldest days
	assert.Equal(t, ids[1], scopes[0].ID)
	assert.Equal(t, "2024-01-02", scopes[0].Value)
	assert.Equal(t, ids[0], scopes[1].ID)
	assert.Equal(t, "2024-01-01", scopes[1].Value)
	assert.True(t, scopes[0].EndsAt.After(scopes[1].EndsAt))
}

func TestScopeQueryService_PagesDoNotOverlap(t *testing.T) {
	store, seed := testutil.NewSQLiteStore(t)
	id := seed.Monitor("frontdoor")
	seed.DayScopes(id, jan1, 10, models.StatusPending, 0)
	svc := NewScopeQueryService(store)

	seen := map[int64]bool{}
	for page := 1; page <= 4; page++ {
		scopes, total, err := svc.ListScopes(context.Background(), id, nil, page, 3)
		require.NoError(t, err)
		assert.Equal(t, 10, total)
		for _, sc := range scopes {
			assert.False(t, seen[sc.ID], "scope %d repeated", sc.ID)
			seen[sc.ID] = true
		}
	}
	assert.Len(t, seen, 10)
}

func TestScopeQueryService_PastTheEndIsEmpty(t *testing.T) {
	store, seed := testutil.NewSQLiteStore(t)
	id := seed.Monitor("frontdoor")
	seed.DayScopes(id, jan1, 5, models.StatusPending, 0)
	svc := NewScopeQueryService(store)

	scopes, total, err := svc.ListScopes(context.Background(), id, nil, 9, 15)
	require.NoError(t, err)
	assert.NotNil(t, scopes)
	assert.Empty(t, scopes)
	assert.Equal(t, 5, total)
}

func TestScopeQueryService_UnknownMonitorIsEmpty(t *testing.T) {
	store, _ := testutil.NewSQLiteStore(t)
	svc := NewScopeQueryService(store)

	scopes, total, err := svc.ListScopes(context.Background(), 404, nil, 1, 15)
	require.NoError(t, err)
	assert.Empty(t, scopes)
	assert.Equal(t, 0, total)
}

func TestScopeQueryService_RejectsBadPaging(t *testing.T) {
	svc := NewScopeQueryService(&failingStore{err: errors.New("must not be called")})

	_, _, err := svc.ListScopes(context.Background(), 1, nil, 0, 15)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = svc.ListScopes(context.Background(), 1, nil, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	bogus := models.TimeUnit("YEAR")
	_, _, err = svc.ListScopes(context.Background(), 1, &bogus, 1, 15)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestScopeQueryService_StoreFailureIsUpstream(t *testing.T) {
	svc := NewScopeQueryService(&failingStore{err: errors.New("connection refused")})

	_, _, err := svc.ListScopes(context.Background(), 1, nil, 1, 15)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}
