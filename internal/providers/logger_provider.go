package providers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"scopewatch/internal/structures"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeHTTP
	TypeStore
	TypeCache
	TypeSign
)

var logTypes = []TypeEnum{TypeApp, TypeHTTP, TypeStore, TypeCache, TypeSign}

func (t TypeEnum) String() string {
	switch t {
	case TypeHTTP:
		return "http"
	case TypeStore:
		return "store"
	case TypeCache:
		return "cache"
	case TypeSign:
		return "sign"
	default:
		return "app"
	}
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

// LogProvider keeps one zerolog logger per category, each writing to its own
// rotated file in the configured directory.
type LogProvider struct {
	loggers map[TypeEnum]zerolog.Logger
	closers []io.Closer
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	lp := &LogProvider{loggers: make(map[TypeEnum]zerolog.Logger, len(logTypes))}
	for _, t := range logTypes {
		path := filepath.Join(conf.Logger.Dir, t.String()+".log")

		// lumberjack keeps the mode of an existing file, so create it up front.
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, os.FileMode(conf.Logger.Mode))
		if err != nil {
			lp.Close()
			return nil, fmt.Errorf("unable to open log file %s: %w", path, err)
		}
		_ = f.Close()

		rotator := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    orDefault(conf.Logger.MaxSizeMB, 100),
			MaxBackups: orDefault(conf.Logger.MaxBackups, 3),
			MaxAge:     orDefault(conf.Logger.MaxAgeDays, 30),
		}
		lp.closers = append(lp.closers, rotator)

		var w io.Writer = rotator
		if conf.Debug {
			w = zerolog.MultiLevelWriter(rotator, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
		}
		lp.loggers[t] = zerolog.New(w).Level(level).With().Timestamp().Str("type", t.String()).Logger()
	}

	return lp, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (lp *LogProvider) get(t TypeEnum) *zerolog.Logger {
	l, ok := lp.loggers[t]
	if !ok {
		l = lp.loggers[TypeApp]
	}
	return &l
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	lp.get(t).Error().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	lp.get(t).Warn().Msgf(format, args...)
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	lp.get(t).Debug().Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	lp.get(t).Info().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	lp.get(t).Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, c := range lp.closers {
		_ = c.Close()
	}
	lp.closers = nil
}
