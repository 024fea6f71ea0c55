package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Thiht/transactor"
	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/timetracker"
	"github.com/benjamonnguyen/timetracker/fsnotify"
	"github.com/benjamonnguyen/timetracker/logfile"
	"github.com/benjamonnguyen/timetracker/sqlite"
)

const (
	RepoURL = "https://github.com/benjamonnguyen/timetracker"
	Version = "0.1.0"
)

var (
	workspaces []string
	verbose    bool
	rootCmd    *cobra.Command
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Track time in the workspace until interrupted",
	Long: `Tracks working time in the workspace. Edits to files under the workspace
count as activity; the timer pauses after the inactivity timeout and resumes
on the next edit. Commands are read from stdin, one per line.`,
	RunE: runTracker,
}

func init() {
	rootCmd = &cobra.Command{
		Use:           "timetracker",
		Short:         "Track working time against a task description",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringSliceVarP(&workspaces, "workspace", "w", nil, "workspace root, repeatable (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runTracker(cmd *cobra.Command, args []string) error {
	topCtx, topCtxC := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer topCtxC()
	notifier := consoleNotifier{out: cmd.OutOrStdout()}

	// config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logPath, err := cfg.TrackingFilePath()
	if err != nil {
		if errors.Is(err, timetracker.ErrNoWorkspace) {
			notifier.Error("No workspace folder found")
		}
		return err
	}
	statePath, _ := cfg.StatePath()
	workspace, _ := cfg.Workspace()

	// db
	db, tx, repo, err := openState(cfg)
	if err != nil {
		return err
	}
	defer db.Close() //nolint

	// timer
	timer := NewTimer(topCtx, cfg, timerDeps{
		sink:     logfile.NewSink(logPath, log.Default()),
		repo:     repo,
		tx:       tx,
		notifier: notifier,
		clock:    timetracker.SystemClock,
		l:        log.Default(),
	})
	timer.OnUpdate(newStatusBar(cmd.ErrOrStderr()).Update)
	timer.Restore(topCtx)

	// activity
	watcher, err := fsnotify.NewActivityWatcher(workspace, []string{logPath, statePath}, log.Default())
	if err != nil {
		timer.Close()
		return err
	}
	defer watcher.Close() //nolint
	go watcher.Run(topCtx, func(string) {
		timer.SetLastEdit(timetracker.SystemClock.Now())
	})

	// commands
	log.Info("tracking time", "workspace", workspace, "logFile", logPath)
	printHelp(cmd.OutOrStdout())
	cmdDone := make(chan error, 1)
	go func() {
		cmdDone <- runCommands(cmd.InOrStdin(), cmd.OutOrStdout(), timer)
	}()

	select {
	case <-topCtx.Done():
		log.Info("terminating timetracker")
	case err = <-cmdDone:
		if err != nil {
			log.Error("failed to read commands", "err", err)
		}
	}
	topCtxC()

	shutdownDone := make(chan struct{})
	go func() {
		timer.Close()
		close(shutdownDone)
	}()
	select {
	case <-shutdownDone:
	case <-time.After(10 * time.Second):
		log.Error("failed to shut down gracefully")
	}
	return err
}

// loadConfig resolves workspace flags, loads configuration and configures the
// default logger from it.
func loadConfig() (timetracker.Config, error) {
	ws := workspaces
	if len(ws) == 0 {
		if cwd, err := os.Getwd(); err == nil {
			ws = []string{cwd}
		}
	}

	var roots []string
	for _, w := range ws {
		abs, err := filepath.Abs(w)
		if err != nil {
			log.Warn("skipping workspace", "path", w, "err", err)
			continue
		}
		if fi, err := os.Stat(abs); err != nil || !fi.IsDir() {
			log.Warn("skipping workspace, not a directory", "path", abs)
			continue
		}
		roots = append(roots, abs)
	}

	cfg, err := timetracker.LoadConfig(roots)
	if err != nil {
		return timetracker.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	// logger
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn("unknown log level, using info", "level", cfg.LogLevel)
		level = log.InfoLevel
	}
	if verbose {
		level = log.DebugLevel
		log.SetReportCaller(true)
	}
	log.SetLevel(level)

	return cfg, nil
}

func openState(cfg timetracker.Config) (*sqlite.DB, transactor.Transactor, timetracker.StateRepo, error) {
	workspace, err := cfg.Workspace()
	if err != nil {
		return nil, nil, nil, err
	}
	path, err := cfg.StatePath()
	if err != nil {
		return nil, nil, nil, err
	}

	log.Debug("opening db", "path", path)
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.RunMigrations(sqlite.Migrations); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}

	tx, dbGetter := txStdLib.NewTransactor(
		db.DB(),
		txStdLib.NestedTransactionsSavepoints,
	)
	return db, tx, sqlite.NewStateRepo(dbGetter, workspace, log.Default()), nil
}
