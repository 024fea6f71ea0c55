package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/benjamonnguyen/timetracker"
)

func TestStatusText(t *testing.T) {
	assert.Equal(t, "00:00", statusText(0, timetracker.StatusRunning))
	assert.Equal(t, "01:05", statusText(65*time.Minute+59*time.Second, timetracker.StatusRunning))
	assert.Equal(t, "00:10 (Timer paused)", statusText(10*time.Minute, timetracker.StatusPaused))
	assert.Equal(t, "Timer Stopped", statusText(time.Hour, timetracker.StatusStopped))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00", formatElapsed(-time.Minute))
	assert.Equal(t, "23:59", formatElapsed(24*time.Hour-time.Second))
	assert.Equal(t, "01:00", formatElapsed(25*time.Hour))
}

func TestStatusBar_PrintsOnlyChanges(t *testing.T) {
	var out bytes.Buffer
	b := newStatusBar(&out)

	b.Update(0, timetracker.StatusRunning)
	b.Update(30*time.Second, timetracker.StatusRunning)
	b.Update(time.Minute, timetracker.StatusRunning)
	b.Update(time.Minute, timetracker.StatusPaused)
	b.Update(0, timetracker.StatusStopped)
	b.Update(0, timetracker.StatusStopped)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if assert.Len(t, lines, 4) {
		assert.Contains(t, lines[0], "00:00")
		assert.Contains(t, lines[1], "00:01")
		assert.Contains(t, lines[2], "00:01 (Timer paused)")
		assert.Contains(t, lines[3], "Timer Stopped")
	}
}
