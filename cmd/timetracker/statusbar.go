package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/benjamonnguyen/timetracker"
)

const clockIcon = "⏱"

var (
	runningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	stoppedStyle = lipgloss.NewStyle().Faint(true)
)

// statusBar prints the timer status whenever its rendered text changes.
type statusBar struct {
	out  io.Writer
	last string
}

func newStatusBar(out io.Writer) *statusBar {
	return &statusBar{out: out}
}

func (b *statusBar) Update(elapsed time.Duration, status timetracker.Status) {
	text := statusText(elapsed, status)
	if text == b.last {
		return
	}
	b.last = text

	style := stoppedStyle
	switch status {
	case timetracker.StatusRunning:
		style = runningStyle
	case timetracker.StatusPaused:
		style = pausedStyle
	}
	fmt.Fprintln(b.out, style.Render(clockIcon+" "+text))
}

func statusText(elapsed time.Duration, status timetracker.Status) string {
	switch status {
	case timetracker.StatusRunning:
		return formatElapsed(elapsed)
	case timetracker.StatusPaused:
		return formatElapsed(elapsed) + " (Timer paused)"
	default:
		return "Timer Stopped"
	}
}

// formatElapsed renders hours and minutes, wrapping at 24h.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return time.Time{}.Add(d).Format("15:04")
}
