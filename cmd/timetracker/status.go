package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/timetracker"
	"github.com/benjamonnguyen/timetracker/logfile"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the persisted timer status and the last description",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logPath, err := cfg.TrackingFilePath()
	if err != nil {
		if errors.Is(err, timetracker.ErrNoWorkspace) {
			consoleNotifier{out: out}.Error("No workspace folder found")
		}
		return err
	}

	db, _, repo, err := openState(cfg)
	if err != nil {
		return err
	}
	defer db.Close() //nolint

	states, err := repo.GetAllStates(ctx)
	if err != nil {
		return fmt.Errorf("failed to read workspace state: %w", err)
	}
	values := make(map[timetracker.StateKey]string, len(states))
	for _, s := range states {
		values[s.Key] = s.Value
	}

	description, err := logfile.NewSink(logPath, log.Default()).PreviousDescription(ctx)
	if err != nil {
		log.Debug("no previous description", "err", err)
	}

	fmt.Fprint(out, formatStatus(values, description, logPath))
	return nil
}

func formatStatus(values map[timetracker.StateKey]string, description, logPath string) string {
	status := timetracker.ParseStatus(values[timetracker.TimerStatusKey])
	s := fmt.Sprintf("status:      %s\n", status)
	if status != timetracker.StatusStopped {
		if since, err := time.Parse(time.RFC3339, values[timetracker.TimerStartedAtKey]); err == nil {
			s += fmt.Sprintf("since:       %s\n", since.Local().Format(time.DateTime))
		}
	}
	s += fmt.Sprintf("description: %s\n", description)
	s += fmt.Sprintf("log file:    %s\n", logPath)
	return s
}
