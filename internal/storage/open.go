package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"scopewatch/internal/providers"
	"scopewatch/internal/structures"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const pingTimeout = 5 * time.Second

// NewDatabaseProvider opens the configured database, verifies connectivity
// and optionally migrates the schema. The returned func closes the pool.
func NewDatabaseProvider(conf *structures.Config, logger providers.Logger) (*sql.DB, func(), error) {
	dialect, err := ParseDialect(conf.Database.Driver)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := buildDSN(conf.Database, dialect)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	if dialect == DialectSQLite {
		// Single writer connection for SQLite
		db.SetMaxOpenConns(1)
	} else if conf.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(conf.Database.MaxOpenConns)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("pinging database: %w", err)
	}

	if conf.Database.Migrate {
		if err := Migrate(ctx, db, dialect, logger); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}

	logger.Infof(providers.TypeStore, "Database connected: %s", dialect)

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Errorf(providers.TypeStore, "Error closing database: %v", err)
		}
	}
	return db, cleanup, nil
}

func buildDSN(conf structures.DatabaseConfig, dialect Dialect) (string, error) {
	if dialect == DialectSQLite {
		return sqliteDSN(conf.Path)
	}
	if conf.DSN != "" {
		return conf.DSN, nil
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   conf.Host,
		Path:   "/" + conf.Name,
	}
	if conf.Port > 0 {
		u.Host = conf.Host + ":" + strconv.Itoa(conf.Port)
	}
	if conf.User != "" {
		u.User = url.UserPassword(conf.User, conf.Password)
	}
	if conf.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {conf.SSLMode}}.Encode()
	}
	return u.String(), nil
}

// sqliteDSN creates the parent directory of the database file.
func sqliteDSN(path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("creating database directory: %w", err)
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", nil
}
