package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"scopewatch/internal/models"
	"scopewatch/internal/providers"
	"scopewatch/internal/structures"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

const (
	monitorColumns = `id, name, path, last_scan_at, width, height`
	scopeColumns   = `id, monitor_id, unit, value, starts_at, ends_at, path, files_count, status, output`
)

// EntityStoreInterface is the read-only query surface over monitors and
// their scopes.
type EntityStoreInterface interface {
	FindMonitorByName(ctx context.Context, name string) (*models.Monitor, error)
	ListMonitors(ctx context.Context) ([]models.Monitor, error)
	CountMonitors(ctx context.Context) (int, error)
	FindScope(ctx context.Context, monitorID int64, value string) (*models.MonitoringScope, error)
	ListScopes(ctx context.Context, filter ScopeFilter, limit, offset int) ([]models.MonitoringScope, error)
	CountScopes(ctx context.Context, filter ScopeFilter) (int, error)
	CountScopesByStatus(ctx context.Context, filter ScopeFilter) (models.StatusHistogram, error)
	ScopeStatusTotals(ctx context.Context) (models.StatusHistogram, error)
	SumFilesCount(ctx context.Context, filter ScopeFilter) (*int64, error)
	Ping(ctx context.Context) error
}

type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	metrics providers.MetricsProviderInterface
}

func NewSQLStore(db *sql.DB, dialect Dialect, metrics providers.MetricsProviderInterface) *SQLStore {
	return &SQLStore{db: db, dialect: dialect, metrics: metrics}
}

func NewEntityStore(db *sql.DB, conf *structures.Config, metrics providers.MetricsProviderInterface) (EntityStoreInterface, error) {
	dialect, err := ParseDialect(conf.Database.Driver)
	if err != nil {
		return nil, err
	}
	return NewSQLStore(db, dialect, metrics), nil
}

func (s *SQLStore) observe(operation string, start time.Time) {
	s.metrics.ObserveStoreQuery(operation, time.Since(start))
}

func (s *SQLStore) FindMonitorByName(ctx context.Context, name string) (*models.Monitor, error) {
	defer s.observe("find_monitor", time.Now())

	query := fmt.Sprintf(`SELECT %s FROM monitor WHERE name = %s`, monitorColumns, s.dialect.Placeholder(1))
	m, err := scanMonitor(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find monitor %q: %w", name, err)
	}
	return m, nil
}

func (s *SQLStore) ListMonitors(ctx context.Context) ([]models.Monitor, error) {
	defer s.observe("list_monitors", time.Now())

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT %s FROM monitor ORDER BY name ASC`, monitorColumns))
	if err != nil {
		return nil, fmt.Errorf("list monitors: %w", err)
	}
	defer rows.Close()

	result := make([]models.Monitor, 0)
	for rows.Next() {
		m, err := scanMonitor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan monitor: %w", err)
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monitors: %w", err)
	}
	return result, nil
}

func (s *SQLStore) CountMonitors(ctx context.Context) (int, error) {
	defer s.observe("count_monitors", time.Now())

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM monitor`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count monitors: %w", err)
	}
	return total, nil
}

// FindScope resolves a scope by its (monitor, value) pair. Duplicates resolve
// to the lowest id.
func (s *SQLStore) FindScope(ctx context.Context, monitorID int64, value string) (*models.MonitoringScope, error) {
	defer s.observe("find_scope", time.Now())

	query := fmt.Sprintf(`SELECT %s FROM monitoringscope WHERE monitor_id = %s AND value = %s ORDER BY id ASC LIMIT 1`,
		scopeColumns, s.dialect.Placeholder(1), s.dialect.Placeholder(2))
	sc, err := scanScope(s.db.QueryRowContext(ctx, query, monitorID, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find scope %q: %w", value, err)
	}
	return sc, nil
}

// ListScopes returns one page of scopes, most recent end first. Ties on
// ends_at are broken by id so that pages never overlap.
func (s *SQLStore) ListScopes(ctx context.Context, filter ScopeFilter, limit, offset int) ([]models.MonitoringScope, error) {
	defer s.observe("list_scopes", time.Now())

	where, args := buildScopeWhere(filter, s.dialect, 1)
	argNum := len(args) + 1
	query := fmt.Sprintf(`SELECT %s FROM monitoringscope %s ORDER BY ends_at DESC, id ASC LIMIT %s OFFSET %s`,
		scopeColumns, where, s.dialect.Placeholder(argNum), s.dialect.Placeholder(argNum+1))
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scopes: %w", err)
	}
	defer rows.Close()

	result := make([]models.MonitoringScope, 0, limit)
	for rows.Next() {
		sc, err := scanScope(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scope: %w", err)
		}
		result = append(result, *sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scopes: %w", err)
	}
	return result, nil
}

func (s *SQLStore) CountScopes(ctx context.Context, filter ScopeFilter) (int, error) {
	defer s.observe("count_scopes", time.Now())

	where, args := buildScopeWhere(filter, s.dialect, 1)
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM monitoringscope `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count scopes: %w", err)
	}
	return total, nil
}

func (s *SQLStore) CountScopesByStatus(ctx context.Context, filter ScopeFilter) (models.StatusHistogram, error) {
	defer s.observe("count_scopes_by_status", time.Now())

	where, args := buildScopeWhere(filter, s.dialect, 1)
	return s.groupByStatus(ctx, where, args)
}

func (s *SQLStore) ScopeStatusTotals(ctx context.Context) (models.StatusHistogram, error) {
	defer s.observe("scope_status_totals", time.Now())

	return s.groupByStatus(ctx, "", nil)
}

func (s *SQLStore) groupByStatus(ctx context.Context, where string, args []any) (models.StatusHistogram, error) {
	query := `SELECT status, COUNT(id) FROM monitoringscope ` + where + ` GROUP BY status`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("group scopes by status: %w", err)
	}
	defer rows.Close()

	histogram := make(models.StatusHistogram)
	for rows.Next() {
		var raw string
		var count int
		if err := rows.Scan(&raw, &count); err != nil {
			return nil, fmt.Errorf("scan status group: %w", err)
		}
		status, err := models.ParseScopeStatus(raw)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			histogram[status] += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status groups: %w", err)
	}
	return histogram, nil
}

// SumFilesCount returns nil when no scope matches the filter.
func (s *SQLStore) SumFilesCount(ctx context.Context, filter ScopeFilter) (*int64, error) {
	defer s.observe("sum_files_count", time.Now())

	where, args := buildScopeWhere(filter, s.dialect, 1)
	var sum sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT SUM(files_count) FROM monitoringscope `+where, args...).Scan(&sum); err != nil {
		return nil, fmt.Errorf("sum files count: %w", err)
	}
	if !sum.Valid {
		return nil, nil
	}
	return &sum.Int64, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMonitor(row rowScanner) (*models.Monitor, error) {
	var (
		m          models.Monitor
		lastScanAt sql.NullTime
		width      sql.NullInt64
		height     sql.NullInt64
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Path, &lastScanAt, &width, &height); err != nil {
		return nil, err
	}
	if lastScanAt.Valid {
		t := lastScanAt.Time
		m.LastScanAt = &t
	}
	m.Width = nullableInt(width)
	m.Height = nullableInt(height)
	return &m, nil
}

func scanScope(row rowScanner) (*models.MonitoringScope, error) {
	var (
		sc     models.MonitoringScope
		unit   string
		status string
		output sql.NullString
	)
	if err := row.Scan(&sc.ID, &sc.MonitorID, &unit, &sc.Value, &sc.StartsAt, &sc.EndsAt,
		&sc.Path, &sc.FilesCount, &status, &output); err != nil {
		return nil, err
	}

	var err error
	if sc.Unit, err = models.ParseTimeUnit(unit); err != nil {
		return nil, fmt.Errorf("scope %d: %w", sc.ID, err)
	}
	if sc.Status, err = models.ParseScopeStatus(status); err != nil {
		return nil, fmt.Errorf("scope %d: %w", sc.ID, err)
	}
	if output.Valid {
		o := output.String
		sc.Output = &o
	}
	return &sc, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
