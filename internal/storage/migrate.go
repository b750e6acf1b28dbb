package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"scopewatch/internal/providers"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// goose keeps its dialect and filesystem in package state.
var migrateMu sync.Mutex

type gooseLogger struct {
	logger providers.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.logger.Infof(providers.TypeStore, format, v...)
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.logger.Errorf(providers.TypeStore, format, v...)
}

// Migrate applies all pending migrations for the dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect, logger providers.Logger) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{logger: logger})

	if err := goose.SetDialect(dialect.GooseDialect()); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations/"+string(dialect)); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
