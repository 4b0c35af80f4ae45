package providers

import (
	"os"
	"path/filepath"
	"sentinel/internal/structures"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggerConfig(dir, level string) *structures.Config {
	return &structures.Config{
		Logger: structures.LoggerConfig{Level: level, Mode: 0644, Dir: dir},
	}
}

func TestNewLogProvider_CreatesFiles(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogProvider(loggerConfig(dir, "info"))
	require.NoError(t, err)
	defer logger.Close()

	_, err = os.Stat(filepath.Join(dir, "app.log"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "access.log"))
	assert.NoError(t, err)
}

func TestLogProvider_SplitsAppAndAccess(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogProvider(loggerConfig(dir, "debug"))
	require.NoError(t, err)

	logger.Infof(TypeApp, "application started")
	logger.Infof(TypeGet, "GET /api/sites")
	logger.Infof(TypePost, "POST /api/login")
	logger.Errorf(TypeStore, "save failed: %s", "disk full")
	logger.Close()

	app, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	access, err := os.ReadFile(filepath.Join(dir, "access.log"))
	require.NoError(t, err)

	assert.Contains(t, string(app), "application started")
	assert.Contains(t, string(app), "disk full")
	assert.NotContains(t, string(app), "GET /api/sites")

	assert.Contains(t, string(access), "GET /api/sites")
	assert.Contains(t, string(access), "POST /api/login")
}

func TestLogProvider_RespectsLevel(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogProvider(loggerConfig(dir, "warn"))
	require.NoError(t, err)

	logger.Infof(TypeApp, "should be filtered")
	logger.Warnf(TypeApp, "should appear")
	logger.Close()

	app, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(app), "should be filtered")
	assert.Contains(t, string(app), "should appear")
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	_, err := NewLogProvider(loggerConfig(t.TempDir(), "verbose"))
	assert.Error(t, err)
}

func TestNewLogProvider_BadDir(t *testing.T) {
	_, err := NewLogProvider(loggerConfig("/nonexistent/dir/for/logs", "info"))
	assert.Error(t, err)
}

func TestGetLogTypeByRequestType(t *testing.T) {
	assert.Equal(t, TypePost, GetLogTypeByRequestType("POST"))
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("GET"))
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("PUT"))
}

func TestTypeEnum_String(t *testing.T) {
	assert.Equal(t, "app", TypeApp.String())
	assert.Equal(t, "get", TypeGet.String())
	assert.Equal(t, "post", TypePost.String())
	assert.Equal(t, "monitor", TypeMonitor.String())
	assert.Equal(t, "store", TypeStore.String())
}
