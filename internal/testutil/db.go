package testutil

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"scopewatch/internal/models"
	"scopewatch/internal/storage"
	"scopewatch/internal/structures"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// NewSQLiteDB opens a migrated SQLite database in a temp dir. It is closed
// when the test ends.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	conf := &structures.Config{
		Database: structures.DatabaseConfig{
			Driver:  string(storage.DialectSQLite),
			Path:    filepath.Join(t.TempDir(), "scopewatch.db"),
			Migrate: true,
		},
	}
	db, cleanup, err := storage.NewDatabaseProvider(conf, &MockLogger{})
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return db
}

// NewSQLiteStore returns an entity store over a fresh SQLite database and a
// seeder writing into it.
func NewSQLiteStore(t *testing.T) (*storage.SQLStore, *Seeder) {
	t.Helper()
	db := NewSQLiteDB(t)
	return storage.NewSQLStore(db, storage.DialectSQLite, NewMockMetrics()), NewSeeder(t, db, storage.DialectSQLite)
}

// Seeder inserts fixture rows. The service itself never writes.
type Seeder struct {
	t       *testing.T
	db      *sql.DB
	dialect storage.Dialect
}

func NewSeeder(t *testing.T, db *sql.DB, dialect storage.Dialect) *Seeder {
	return &Seeder{t: t, db: db, dialect: dialect}
}

func (s *Seeder) insert(table string, columns []string, values ...any) int64 {
	s.t.Helper()

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = s.dialect.Placeholder(i + 1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	var id int64
	require.NoError(s.t, s.db.QueryRow(query, values...).Scan(&id))
	return id
}

// Monitor inserts a monitor stored under /monitors/<name>.
func (s *Seeder) Monitor(name string) int64 {
	return s.insert("monitor", []string{"name", "path"}, name, "/monitors/"+name)
}

// Scope inserts sc and returns its id. A blank status stores the default.
func (s *Seeder) Scope(sc models.MonitoringScope) int64 {
	if sc.Status == "" {
		sc.Status = models.DefaultScopeStatus
	}
	if sc.Path == "" {
		sc.Path = fmt.Sprintf("/scopes/%d/%s", sc.MonitorID, sc.Value)
	}
	return s.insert("monitoringscope",
		[]string{"monitor_id", "unit", "value", "starts_at", "ends_at", "path", "files_count", "status", "output"},
		sc.MonitorID, string(sc.Unit), sc.Value, sc.StartsAt.UTC(), sc.EndsAt.UTC(), sc.Path, sc.FilesCount, string(sc.Status), sc.Output)
}

// DayScopes inserts n consecutive DAY scopes starting at first, each holding
// filesCount files. Values are the ISO dates.
func (s *Seeder) DayScopes(monitorID int64, first time.Time, n int, status models.ScopeStatus, filesCount int) []int64 {
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		start := first.AddDate(0, 0, i).UTC()
		ids = append(ids, s.Scope(models.MonitoringScope{
			MonitorID:  monitorID,
			Unit:       models.UnitDay,
			Value:      start.Format(time.DateOnly),
			StartsAt:   start,
			EndsAt:     start.Add(24*time.Hour - time.Second),
			FilesCount: filesCount,
			Status:     status,
		}))
	}
	return ids
}

func StrPtr(s string) *string { return &s }
