// Package logfile implements the append-only session log on the local file system.
package logfile

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/timetracker"
)

var descriptionRegex = regexp.MustCompile(`((\w|\s)+)(\n+)?$`)

type sink struct {
	path string
	l    *log.Logger
}

func NewSink(path string, logger *log.Logger) *sink {
	return &sink{
		path: path,
		l:    logger,
	}
}

func (s *sink) Path() string {
	return s.path
}

func (s *sink) Append(ctx context.Context, r timetracker.LogRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line := r.String() + "\n"
	s.l.Debug("appending log record", "path", s.path, "line", strings.TrimSuffix(line, "\n"))
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append to %s: %w", s.path, err)
	}
	return f.Close()
}

// PreviousDescription returns the description of the last record in the log.
func (s *sink) PreviousDescription(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return ParsePreviousDescription(string(content))
}

// ParsePreviousDescription extracts the trailing run of word and whitespace
// characters from log content, dropping its first newline.
func ParsePreviousDescription(content string) (string, error) {
	match := descriptionRegex.FindString(content)
	if match == "" {
		return "", timetracker.ErrNoPreviousDescription
	}
	return strings.Replace(match, "\n", "", 1), nil
}
