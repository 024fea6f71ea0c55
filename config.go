package timetracker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ConfigFileName = ".timetracker.yaml"
	EnvPrefix      = "TIMETRACKER"

	InactivityTimeoutKey = "inactivity_timeout"
	MinimumLogTimeKey    = "minimum_log_time"
	LogFilePathKey       = "log_file_path"
	StateDBPathKey       = "state_db_path"
	LogLevelKey          = "log_level"
)

type Config struct {
	Workspaces        []string      `yaml:"workspaces"`
	InactivityTimeout time.Duration `yaml:"inactivity_timeout"`
	MinimumLogTime    time.Duration `yaml:"minimum_log_time"`
	LogFilePath       string        `yaml:"log_file_path"`
	StateDBPath       string        `yaml:"state_db_path"`
	LogLevel          string        `yaml:"log_level"`
}

// LoadConfig reads <workspace>/.env and <workspace>/.timetracker.yaml from the
// first workspace, if any. TIMETRACKER_* environment variables override the
// file. Durations are configured in minutes.
func LoadConfig(workspaces []string) (Config, error) {
	v := viper.New()
	v.SetDefault(InactivityTimeoutKey, 10)
	v.SetDefault(MinimumLogTimeKey, 1)
	v.SetDefault(LogFilePathKey, ".time.csv")
	v.SetDefault(StateDBPathKey, ".timetracker.db")
	v.SetDefault(LogLevelKey, "info")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if len(workspaces) > 0 {
		_ = godotenv.Load(filepath.Join(workspaces[0], ".env"))

		path := filepath.Join(workspaces[0], ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
			}
		}
	}

	inactivity := v.GetFloat64(InactivityTimeoutKey)
	if inactivity < 0 {
		return Config{}, fmt.Errorf("%s must not be negative: %v", InactivityTimeoutKey, inactivity)
	}
	minimum := v.GetFloat64(MinimumLogTimeKey)
	if minimum < 0 {
		return Config{}, fmt.Errorf("%s must not be negative: %v", MinimumLogTimeKey, minimum)
	}

	cfg := Config{
		Workspaces:        workspaces,
		InactivityTimeout: minutes(inactivity),
		MinimumLogTime:    minutes(minimum),
		LogFilePath:       v.GetString(LogFilePathKey),
		StateDBPath:       v.GetString(StateDBPathKey),
		LogLevel:          strings.ToLower(v.GetString(LogLevelKey)),
	}
	if cfg.LogFilePath == "" {
		return Config{}, fmt.Errorf("required setting: %s", LogFilePathKey)
	}
	if cfg.StateDBPath == "" {
		return Config{}, fmt.Errorf("required setting: %s", StateDBPathKey)
	}

	return cfg, nil
}

// TrackingFilePath resolves the log file against the first workspace.
func (c Config) TrackingFilePath() (string, error) {
	return c.resolve(c.LogFilePath)
}

// StatePath resolves the state database against the first workspace.
func (c Config) StatePath() (string, error) {
	return c.resolve(c.StateDBPath)
}

// Workspace returns the first workspace root.
func (c Config) Workspace() (string, error) {
	if len(c.Workspaces) == 0 || c.Workspaces[0] == "" {
		return "", ErrNoWorkspace
	}
	return c.Workspaces[0], nil
}

func (c Config) resolve(p string) (string, error) {
	ws, err := c.Workspace()
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	return filepath.Join(ws, p), nil
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
