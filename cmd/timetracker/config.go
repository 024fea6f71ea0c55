package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/benjamonnguyen/timetracker"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect timetracker configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE:  runConfigPath,
}

// configView mirrors the config file, with durations in minutes.
type configView struct {
	Workspaces        []string `yaml:"workspaces"`
	InactivityTimeout float64  `yaml:"inactivity_timeout"`
	MinimumLogTime    float64  `yaml:"minimum_log_time"`
	LogFilePath       string   `yaml:"log_file_path"`
	StateDBPath       string   `yaml:"state_db_path"`
	LogLevel          string   `yaml:"log_level"`
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(configView{
		Workspaces:        cfg.Workspaces,
		InactivityTimeout: cfg.InactivityTimeout.Minutes(),
		MinimumLogTime:    cfg.MinimumLogTime.Minutes(),
		LogFilePath:       cfg.LogFilePath,
		StateDBPath:       cfg.StateDBPath,
		LogLevel:          cfg.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "# Effective configuration (defaults + file + environment)")
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ws, err := cfg.Workspace()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(ws, timetracker.ConfigFileName))
	return nil
}
