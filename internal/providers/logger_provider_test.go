package providers

import (
	"os"
	"path/filepath"
	"scopewatch/internal/structures"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggerConfig(dir, level string) *structures.Config {
	return &structures.Config{
		Logger: structures.LoggerConfig{
			Level: level,
			Mode:  0644,
			Dir:   dir,
		},
	}
}

func TestTypeEnum_String(t *testing.T) {
	assert.Equal(t, "app", TypeApp.String())
	assert.Equal(t, "http", TypeHTTP.String())
	assert.Equal(t, "store", TypeStore.String())
	assert.Equal(t, "cache", TypeCache.String())
	assert.Equal(t, "sign", TypeSign.String())
	assert.Equal(t, "app", TypeEnum(42).String())
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogProvider(loggerConfig(dir, "info"))
	require.NoError(t, err)
	defer logger.Close()

	for _, name := range []string{"app.log", "http.log", "store.log", "cache.log", "sign.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "log file %s should exist", name)
	}
}

func TestNewLogProvider_WritesToCategoryFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogProvider(loggerConfig(dir, "info"))
	require.NoError(t, err)

	logger.Infof(TypeSign, "signed %s", "frontdoor/2024-01-15.mp4")
	logger.Debugf(TypeSign, "below level")
	logger.Close()

	data, err := os.ReadFile(filepath.Join(dir, "sign.log"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "signed frontdoor/2024-01-15.mp4")
	assert.Contains(t, content, `"type":"sign"`)
	assert.NotContains(t, content, "below level")

	app, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(app), "frontdoor"))
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	_, err := NewLogProvider(loggerConfig("/nonexistent/path/that/does/not/exist", "info"))
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	_, err := NewLogProvider(loggerConfig(t.TempDir(), "verbose"))
	assert.ErrorContains(t, err, "invalid log level")
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, 100, orDefault(0, 100))
	assert.Equal(t, 100, orDefault(-1, 100))
	assert.Equal(t, 5, orDefault(5, 100))
}
