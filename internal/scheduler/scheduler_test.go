package scheduler

import (
	"context"
	"errors"
	"scopewatch/internal/models"
	"scopewatch/internal/storage"
	"scopewatch/internal/structures"
	"scopewatch/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan1 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func testConfig(interval time.Duration) *structures.Config {
	return &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true, RefreshInterval: interval},
	}
}

type brokenStore struct {
	storage.EntityStoreInterface
}

func (b *brokenStore) CountMonitors(_ context.Context) (int, error) {
	return 0, errors.New("database is closed")
}

func TestScheduler_Refresh_PublishesGauges(t *testing.T) {
	store, seed := testutil.NewSQLiteStore(t)
	seed.DayScopes(seed.Monitor("frontdoor"), jan1, 3, models.StatusArchived, 1)
	seed.DayScopes(seed.Monitor("backyard"), jan1, 2, models.StatusPending, 1)
	metrics := testutil.NewMockMetrics()

	s := NewScheduler(testConfig(time.Second), &testutil.MockLogger{}, store, metrics)
	require.NoError(t, s.Refresh())

	assert.Equal(t, 2, metrics.Monitors)
	assert.Equal(t, 3, metrics.Scopes["ARCHIVED"])
	assert.Equal(t, 2, metrics.Scopes["PENDING"])
	assert.Equal(t, 0, metrics.Scopes["VOID"])
	assert.Len(t, metrics.Scopes, len(models.ScopeStatuses))
	assert.WithinDuration(t, time.Now(), s.LastRefresh(), 5*time.Second)
}

func TestScheduler_Refresh_StoreError(t *testing.T) {
	s := NewScheduler(testConfig(time.Second), &testutil.MockLogger{}, &brokenStore{}, testutil.NewMockMetrics())

	assert.Error(t, s.Refresh())
	assert.True(t, s.LastRefresh().IsZero())
}

func TestScheduler_StopNilCron(t *testing.T) {
	s := NewScheduler(testConfig(time.Second), &testutil.MockLogger{}, &brokenStore{}, testutil.NewMockMetrics())
	// Should not panic with nil cron
	s.Stop()
}

func TestScheduler_InitAndStop(t *testing.T) {
	store, _ := testutil.NewSQLiteStore(t)
	logger := &testutil.MockLogger{}

	s := NewScheduler(testConfig(0), logger, store, testutil.NewMockMetrics())
	s.Init()
	// Give the cron a moment to start
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	assert.Equal(t, 1, logger.Count("info"))
}
