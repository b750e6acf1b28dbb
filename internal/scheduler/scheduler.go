package scheduler

import (
	"context"
	"fmt"
	"scopewatch/internal/models"
	"scopewatch/internal/providers"
	"scopewatch/internal/scheduler/interfaces"
	"scopewatch/internal/storage"
	"scopewatch/internal/structures"
	"time"

	"github.com/roylee0704/gron"
	"go.uber.org/atomic"
)

const (
	defaultRefreshInterval = time.Minute
	refreshTimeout         = 30 * time.Second
)

// Scheduler periodically publishes catalog gauges from the entity store.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	store       storage.EntityStoreInterface
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	running     atomic.Bool
	lastRefresh atomic.Time
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Metrics.RefreshInterval
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	s.cron.AddFunc(gron.Every(interval), func() {
		if err := s.Refresh(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while refreshing catalog gauges: %s", err)
		}
	})

	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Catalog refresh scheduled every %s", interval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Refresh recomputes the gauges once. Overlapping runs are skipped.
func (s *Scheduler) Refresh() error {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Debugf(providers.TypeApp, "Catalog refresh already running, skipped")
		return nil
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	monitors, err := s.store.CountMonitors(ctx)
	if err != nil {
		return fmt.Errorf("count monitors: %w", err)
	}

	totals, err := s.store.ScopeStatusTotals(ctx)
	if err != nil {
		return fmt.Errorf("scope status totals: %w", err)
	}

	s.metrics.SetMonitorsTotal(monitors)
	for _, status := range models.ScopeStatuses {
		s.metrics.SetScopesTotal(status.String(), totals[status])
	}

	s.lastRefresh.Store(time.Now())
	s.logger.Debugf(providers.TypeApp, "Catalog refreshed: %d monitors, %d scopes", monitors, totals.Total())
	return nil
}

// LastRefresh is the zero time until the first successful refresh.
func (s *Scheduler) LastRefresh() time.Time {
	return s.lastRefresh.Load()
}

func NewScheduler(config *structures.Config, logger providers.Logger, store storage.EntityStoreInterface, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		store:   store,
		metrics: metrics,
	}
}
