package timetracker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets key for the duration of the test so godotenv may set it.
func clearEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfig_Defaults(t *testing.T) {
	ws := t.TempDir()
	cfg, err := LoadConfig([]string{ws})
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, cfg.InactivityTimeout)
	assert.Equal(t, time.Minute, cfg.MinimumLogTime)
	assert.Equal(t, ".time.csv", cfg.LogFilePath)
	assert.Equal(t, ".timetracker.db", cfg.StateDBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{ws}, cfg.Workspaces)
}

func TestLoadConfig_File(t *testing.T) {
	ws := t.TempDir()
	content := "inactivity_timeout: 5\nminimum_log_time: 0\nlog_file_path: logs/time.csv\nlog_level: DEBUG\n"
	require.NoError(t, os.WriteFile(filepath.Join(ws, ConfigFileName), []byte(content), 0o644))

	cfg, err := LoadConfig([]string{ws})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.InactivityTimeout)
	assert.Equal(t, time.Duration(0), cfg.MinimumLogTime)
	assert.Equal(t, "logs/time.csv", cfg.LogFilePath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ws := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(ws, ConfigFileName), []byte("inactivity_timeout: 5\n"), 0o644))
	t.Setenv("TIMETRACKER_INACTIVITY_TIMEOUT", "15")
	t.Setenv("TIMETRACKER_MINIMUM_LOG_TIME", "0.5")

	cfg, err := LoadConfig([]string{ws})
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.InactivityTimeout)
	assert.Equal(t, 30*time.Second, cfg.MinimumLogTime)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	ws := t.TempDir()
	clearEnv(t, "TIMETRACKER_LOG_FILE_PATH")
	require.NoError(t, os.WriteFile(filepath.Join(ws, ".env"), []byte("TIMETRACKER_LOG_FILE_PATH=hours.csv\n"), 0o644))

	cfg, err := LoadConfig([]string{ws})
	require.NoError(t, err)
	assert.Equal(t, "hours.csv", cfg.LogFilePath)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "negative timeout", content: "inactivity_timeout: -1\n"},
		{name: "negative minimum", content: "minimum_log_time: -2\n"},
		{name: "malformed yaml", content: "inactivity_timeout: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(ws, ConfigFileName), []byte(tt.content), 0o644))
			_, err := LoadConfig([]string{ws})
			assert.Error(t, err)
		})
	}
}

func TestConfig_Paths(t *testing.T) {
	ws := t.TempDir()
	cfg := Config{Workspaces: []string{ws, "/other"}, LogFilePath: ".time.csv", StateDBPath: "/var/lib/tt.db"}

	p, err := cfg.TrackingFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws, ".time.csv"), p)

	p, err = cfg.StatePath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/tt.db", p)

	w, err := cfg.Workspace()
	require.NoError(t, err)
	assert.Equal(t, ws, w)
}

func TestConfig_NoWorkspace(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	_, err = cfg.TrackingFilePath()
	assert.ErrorIs(t, err, ErrNoWorkspace)
	_, err = cfg.StatePath()
	assert.ErrorIs(t, err, ErrNoWorkspace)
	_, err = cfg.Workspace()
	assert.ErrorIs(t, err, ErrNoWorkspace)
}
