package timetracker

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"
)

type Status uint8

const (
	StatusStopped Status = iota
	StatusPaused
	StatusRunning
)

func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusPaused:
		return "paused"
	case StatusRunning:
		return "running"
	default:
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseStatus maps a persisted status name back to a Status.
// Anything unrecognized restores as StatusStopped.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "running":
		return StatusRunning
	case "paused":
		return StatusPaused
	default:
		return StatusStopped
	}
}

// ISOTimestamp matches the millisecond UTC layout used in the log file.
const ISOTimestamp = "2006-01-02T15:04:05.000Z"

// LogRecord is one flushed session, written as a single comma-joined line.
type LogRecord struct {
	Start, End  time.Time
	Minutes     int
	Description string
}

func NewLogRecord(start, end time.Time, d time.Duration, description string) LogRecord {
	return LogRecord{
		Start:       start,
		End:         end,
		Minutes:     int(math.Round(d.Minutes())),
		Description: description,
	}
}

// String encodes the record without a trailing newline. Commas and newlines
// inside the description are written as-is.
func (r LogRecord) String() string {
	return strings.Join([]string{
		r.Start.UTC().Format(ISOTimestamp),
		r.End.UTC().Format(ISOTimestamp),
		strconv.Itoa(r.Minutes),
		r.Description,
	}, ",")
}

// StateKey names a value in workspace-scoped state.
type StateKey string

const (
	TimerStatusKey    StateKey = "timer_status"
	TimerStartedAtKey StateKey = "timer_started_at"
)

type StateRecord struct {
	Workspace string
	Key       StateKey
	Value     string
}

type ExistingStateRecord struct {
	StateRecord
	CreatedAt time.Time
	UpdatedAt time.Time
}

type StateRepo interface {
	GetState(ctx context.Context, key StateKey) (ExistingStateRecord, error)
	PutState(ctx context.Context, key StateKey, value string) (ExistingStateRecord, error)
	GetAllStates(ctx context.Context) ([]ExistingStateRecord, error)
}

// LogSink is the append-only session log.
type LogSink interface {
	Append(context.Context, LogRecord) error
	PreviousDescription(context.Context) (string, error)
}

// Notifier surfaces user-visible messages.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}
