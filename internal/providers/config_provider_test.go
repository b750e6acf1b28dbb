package providers

import (
	"os"
	"path/filepath"
	"scopewatch/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
webServer:
  host: 127.0.0.1
  port: 5050
logger:
  level: debug
  mode: 0644
  dir: /tmp
database:
  driver: sqlite
  path: /tmp/scopewatch-test.db
objectStore:
  endpoint: http://localhost:9000
cache:
  backend: lru
  ttl:
    scope: 90s
dashboard:
  pageSize: 20
`

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNewConfigProvider_LoadsFileAndDefaults(t *testing.T) {
	path := writeTestConfig(t, testConfigYAML)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, AppName, conf.AppName)
	assert.Equal(t, path, conf.Path)
	assert.True(t, conf.Debug)
	assert.Equal(t, "127.0.0.1", conf.WebServer.Host)
	assert.Equal(t, 5050, conf.WebServer.Port)
	assert.Equal(t, "sqlite", conf.Database.Driver)
	assert.Equal(t, CacheBackendLRU, conf.Cache.Backend)
	assert.Equal(t, DefaultCacheSizeMB, conf.Cache.Size)
	assert.Equal(t, 90*time.Second, conf.Cache.TTL.Scope)
	assert.Equal(t, 2*time.Hour, conf.Cache.TTL.Home)
	assert.Equal(t, 20, conf.Dashboard.PageSize)
	assert.Equal(t, 50, conf.Dashboard.ScopesPageSize)
	assert.Equal(t, 10, conf.Dashboard.PlayerFPS)
	assert.Equal(t, "monitoring-storage", conf.ObjectStore.Bucket)
	assert.Equal(t, 5*time.Minute, conf.ObjectStore.URLExpiry)
}

func TestNewConfigProvider_EnvOverride(t *testing.T) {
	path := writeTestConfig(t, testConfigYAML)
	t.Setenv("SCOPEWATCH_S3_ENDPOINT", "https://objects.example.com")
	t.Setenv("SCOPEWATCH_LOG_LEVEL", "warn")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "https://objects.example.com", conf.ObjectStore.Endpoint)
	assert.Equal(t, "warn", conf.Logger.Level)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidConfig(t *testing.T) {
	path := writeTestConfig(t, testConfigYAML+"\n  scopesPageSize: 0\n")

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
