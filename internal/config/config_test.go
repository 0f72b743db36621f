package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfig = `
logger:
  log_level: DEBUG
  app_name: job-keywords-test
server:
  port: 9090
search:
  base_url: http://localhost:1234
  timeout: 5s
cache:
  ttl: 1m
  monitor_schedule: "@every 10s"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	return file
}

func Test_Config_WhenOnlyFileProvided_ShouldApplyFileAndDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, "job-keywords-test", cfg.Logger.AppName)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ":9090", cfg.Server.Address())
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "http://localhost:1234", cfg.Search.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Search.Timeout)
	assert.Equal(t, float32(5), cfg.Search.MaxRequestsPerSecond)
	assert.False(t, cfg.Search.CoalesceRequests)
	assert.Empty(t, cfg.Search.APIKey)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "@every 10s", cfg.Cache.MonitorSchedule)
	assert.Equal(t, 10000, cfg.Cache.WarnEntries)
}

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	t.Setenv("SERPAPI_KEY", "overrideKey")
	t.Setenv("PORT", "7070")
	t.Setenv("CACHE_TTL", "3h")
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOKI_URL", "http://loki:3100/loki/api/v1/push")
	t.Setenv("COALESCE_REQUESTS", "true")

	cfg, err := loadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "overrideKey", cfg.Search.APIKey)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 3*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, LevelError, cfg.Logger.LogLevel)
	assert.Equal(t, "http://loki:3100/loki/api/v1/push", cfg.Logger.LokiURL)
	assert.True(t, cfg.Search.CoalesceRequests)
}

func Test_Load_WhenConfigPathSet_ShouldReadThatFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, testConfig))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func Test_Config_WhenValuesInvalid_ShouldReturnJoinedErrors(t *testing.T) {
	_, err := loadConfig(writeConfig(t, `
logger:
  log_level: VERBOSE
server:
  port: 70000
cache:
  ttl: 0s
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log_level: VERBOSE")
	assert.Contains(t, err.Error(), "invalid port: 70000")
	assert.Contains(t, err.Error(), "ttl must be positive")
}

func Test_Config_WhenFileMissing_ShouldReturnError(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
