package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"scopewatch/internal/models"
	"scopewatch/internal/providers"
	"scopewatch/internal/storage"
	"scopewatch/internal/structures"
	"strings"
)

const (
	DefaultPageSize       = 15
	DefaultScopesPageSize = 50
	DefaultPlayerFPS      = 10
)

var errNoOutput = errors.New("scope has no archived output")

type DashboardServiceInterface interface {
	GetMonitors(ctx context.Context) ([]models.MonitorView, error)
	GetMonitorDetail(ctx context.Context, name string, pageNumber int, unit string) (*models.MonitorDetail, error)
	GetMonitorScopes(ctx context.Context, name string, pageSize int) ([]models.MonitoringScope, error)
	GetScopeAccessURL(ctx context.Context, name, value string) (*models.ScopeAccess, error)
	GetScopeWatchView(ctx context.Context, name, value string) (*models.ScopeWatch, error)
}

type DashboardService struct {
	store        storage.EntityStoreInterface
	scopes       ScopeQueryServiceInterface
	aggregation  AggregationServiceInterface
	signer       SignedURLServiceInterface
	logger       providers.Logger
	pageSize     int
	scopesSize   int
	thumbnailURL string
	fps          int
}

func NewDashboardService(
	conf *structures.Config,
	store storage.EntityStoreInterface,
	scopes ScopeQueryServiceInterface,
	aggregation AggregationServiceInterface,
	signer SignedURLServiceInterface,
	logger providers.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		store:        store,
		scopes:       scopes,
		aggregation:  aggregation,
		signer:       signer,
		logger:       logger,
		pageSize:     orDefault(conf.Dashboard.PageSize, DefaultPageSize),
		scopesSize:   orDefault(conf.Dashboard.ScopesPageSize, DefaultScopesPageSize),
		thumbnailURL: conf.Dashboard.ThumbnailURL,
		fps:          orDefault(conf.Dashboard.PlayerFPS, DefaultPlayerFPS),
	}
}

// PageCount is the number of pages needed to show total items, rounding up.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

func (ds *DashboardService) GetMonitors(ctx context.Context) ([]models.MonitorView, error) {
	monitors, err := ds.store.ListMonitors(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	views := make([]models.MonitorView, 0, len(monitors))
	for _, m := range monitors {
		views = append(views, models.MonitorView{
			Monitor:      m,
			ThumbnailURL: ds.thumbnail(m.Name),
		})
	}
	return views, nil
}

func (ds *DashboardService) GetMonitorDetail(ctx context.Context, name string, pageNumber int, unit string) (*models.MonitorDetail, error) {
	timeUnit, err := models.ParseOptionalTimeUnit(unit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if pageNumber < 1 {
		return nil, fmt.Errorf("%w: page number must be at least 1, got %d", ErrInvalidArgument, pageNumber)
	}

	monitor, err := ds.monitor(ctx, name)
	if err != nil {
		return nil, err
	}

	scopes, total, err := ds.scopes.ListScopes(ctx, monitor.ID, timeUnit, pageNumber, ds.pageSize)
	if err != nil {
		return nil, err
	}

	statuses, err := ds.aggregation.StatusCounts(ctx, monitor.ID)
	if err != nil {
		return nil, err
	}

	archived, err := ds.aggregation.ArchivedDailyFileCount(ctx, monitor.ID)
	if err != nil {
		return nil, err
	}

	return &models.MonitorDetail{
		Monitor:                monitor,
		Scopes:                 scopes,
		TotalCount:             total,
		PageNumber:             pageNumber,
		PageSize:               ds.pageSize,
		NumPages:               PageCount(total, ds.pageSize),
		Unit:                   timeUnit,
		Statuses:               statuses,
		ArchivedDailyFileCount: archived,
	}, nil
}

// GetMonitorScopes returns the first page of scopes over all units.
func (ds *DashboardService) GetMonitorScopes(ctx context.Context, name string, pageSize int) ([]models.MonitoringScope, error) {
	if pageSize <= 0 {
		pageSize = ds.scopesSize
	}

	monitor, err := ds.monitor(ctx, name)
	if err != nil {
		return nil, err
	}

	scopes, _, err := ds.scopes.ListScopes(ctx, monitor.ID, nil, 1, pageSize)
	if err != nil {
		return nil, err
	}
	return scopes, nil
}

func (ds *DashboardService) GetScopeAccessURL(ctx context.Context, name, value string) (*models.ScopeAccess, error) {
	_, scope, err := ds.scope(ctx, name, value)
	if err != nil {
		return nil, err
	}

	access, err := ds.signer.IssueAccessURL(ctx, *scope.Output)
	if err != nil {
		return nil, err
	}
	return &models.ScopeAccess{AccessURL: access}, nil
}

func (ds *DashboardService) GetScopeWatchView(ctx context.Context, name, value string) (*models.ScopeWatch, error) {
	monitor, scope, err := ds.scope(ctx, name, value)
	if err != nil {
		return nil, err
	}

	access, err := ds.signer.IssueAccessURL(ctx, *scope.Output)
	if err != nil {
		return nil, err
	}

	return &models.ScopeWatch{
		AccessURL: access,
		Monitor:   monitor,
		Scope:     scope,
		FPS:       ds.fps,
	}, nil
}

func (ds *DashboardService) monitor(ctx context.Context, name string) (*models.Monitor, error) {
	monitor, err := ds.store.FindMonitorByName(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: monitor %q", ErrNotFound, name)
		}
		return nil, storeError(err)
	}
	return monitor, nil
}

// scope resolves a signable scope: one that exists and has an archived output.
func (ds *DashboardService) scope(ctx context.Context, name, value string) (*models.Monitor, *models.MonitoringScope, error) {
	monitor, err := ds.monitor(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	scope, err := ds.store.FindScope(ctx, monitor.ID, value)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: scope %q of monitor %q", ErrNotFound, value, name)
		}
		return nil, nil, storeError(err)
	}

	if !scope.HasOutput() {
		return nil, nil, fmt.Errorf("%w: %w", ErrNotFound, errNoOutput)
	}
	return monitor, scope, nil
}

func (ds *DashboardService) thumbnail(name string) string {
	if ds.thumbnailURL == "" {
		return ""
	}
	return strings.ReplaceAll(ds.thumbnailURL, "{name}", url.PathEscape(name))
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
