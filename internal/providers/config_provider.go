package providers

import (
	"fmt"
	"path/filepath"
	"scopewatch/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const AppName = "ScopeWatch"

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 5000)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "storage_operator")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 10)

	v.SetDefault("objectStore.region", "us-east-1")
	v.SetDefault("objectStore.bucket", "monitoring-storage")
	v.SetDefault("objectStore.urlExpiry", 5*time.Minute)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", CacheBackendFreecache)
	v.SetDefault("cache.size", DefaultCacheSizeMB)
	v.SetDefault("cache.entries", 1024)
	v.SetDefault("cache.ttl.home", 2*time.Hour)
	v.SetDefault("cache.ttl.monitor", 2*time.Minute)
	v.SetDefault("cache.ttl.scope", 2*time.Minute)

	v.SetDefault("metrics.refreshInterval", time.Minute)

	v.SetDefault("dashboard.pageSize", 15)
	v.SetDefault("dashboard.scopesPageSize", 50)
	v.SetDefault("dashboard.playerFps", 10)
}

func bindConfigEnv(v *viper.Viper) {
	_ = v.BindEnv("logger.level", "SCOPEWATCH_LOG_LEVEL")
	_ = v.BindEnv("cache.enabled", "SCOPEWATCH_CACHE_ENABLED")
	_ = v.BindEnv("cache.backend", "SCOPEWATCH_CACHE_BACKEND")
	_ = v.BindEnv("cache.size", "SCOPEWATCH_CACHE_SIZE")
	_ = v.BindEnv("cache.redis.addr", "SCOPEWATCH_CACHE_REDIS_ADDR")
	_ = v.BindEnv("cache.redis.password", "SCOPEWATCH_CACHE_REDIS_PASSWORD")

	_ = v.BindEnv("database.dsn", "SCOPEWATCH_DB_DSN")
	_ = v.BindEnv("database.host", "SCOPEWATCH_DB_HOST", "DB_HOST")
	_ = v.BindEnv("database.port", "SCOPEWATCH_DB_PORT", "DB_PORT")
	_ = v.BindEnv("database.user", "SCOPEWATCH_DB_USER", "DB_USERNAME")
	_ = v.BindEnv("database.password", "SCOPEWATCH_DB_PASSWORD", "DB_PASSWORD")

	_ = v.BindEnv("objectStore.endpoint", "SCOPEWATCH_S3_ENDPOINT", "S3_ENDPOINT")
	_ = v.BindEnv("objectStore.accessKey", "SCOPEWATCH_S3_KEY_ID", "S3_KEY_ID")
	_ = v.BindEnv("objectStore.secretKey", "SCOPEWATCH_S3_SECRET_KEY", "S3_SECRET_KEY")
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	setConfigDefaults(v)
	bindConfigEnv(v)

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
