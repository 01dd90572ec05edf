package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FINTRACK_LOG_LEVEL",
		"FINTRACK_LOG_FORMAT",
		"FINTRACK_DATABASE_PATH",
		"FINTRACK_VALIDATION_MAX_DESCRIPTION_LEN",
		"FINTRACK_VALIDATION_MAX_CATEGORY_LEN",
		"FINTRACK_EXPORT_INCLUDE_HEADERS",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "fintrack.db", config.Database.Path)
	assert.Equal(t, 255, config.Validation.MaxDescriptionLen)
	assert.Equal(t, 50, config.Validation.MaxCategoryLen)
	assert.True(t, config.Export.IncludeHeaders)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	t.Setenv("FINTRACK_LOG_LEVEL", "debug")
	t.Setenv("FINTRACK_LOG_FORMAT", "json")
	t.Setenv("FINTRACK_DATABASE_PATH", "/tmp/ledger.db")
	t.Setenv("FINTRACK_VALIDATION_MAX_DESCRIPTION_LEN", "100")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "/tmp/ledger.db", config.Database.Path)
	assert.Equal(t, 100, config.Validation.MaxDescriptionLen)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	dir := t.TempDir()
	content := "log:\n  level: warn\n  format: json\ndatabase:\n  path: custom.db\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(wd))
	})

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "custom.db", config.Database.Path)
	// Untouched keys keep their defaults
	assert.Equal(t, 255, config.Validation.MaxDescriptionLen)
}

func TestInitializeConfig_InvalidLogLevel(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("FINTRACK_LOG_LEVEL", "shouting")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestInitializeConfig_InvalidLogFormat(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("FINTRACK_LOG_FORMAT", "xml")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	var config Config
	config.Log.Level = "debug"
	config.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(&config)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("FINTRACK_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("FINTRACK_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("FINTRACK_TEST_KEY_ABSENT", "fallback"))
}
