package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Thiht/transactor"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/benjamonnguyen/timetracker"
)

var tickRate = time.Second

// UpdateFunc receives the elapsed time of the current session and the timer status.
type UpdateFunc func(elapsed time.Duration, status timetracker.Status)

type timerDeps struct {
	sink     timetracker.LogSink
	repo     timetracker.StateRepo
	tx       transactor.Transactor
	notifier timetracker.Notifier
	clock    timetracker.Clock
	l        *log.Logger
}

// Timer tracks one session at a time. Every exported method takes mu, so
// ticks, commands and edit notifications never interleave.
type Timer struct {
	mu        sync.Mutex
	wg        sync.WaitGroup
	parentCtx context.Context
	cfg       timetracker.Config
	timerDeps

	sessionID   uuid.UUID
	description string
	lastEdit    time.Time
	startedAt   time.Time
	status      timetracker.Status
	cancelTick  context.CancelFunc
	onUpdate    []UpdateFunc
}

func NewTimer(ctx context.Context, cfg timetracker.Config, deps timerDeps) *Timer {
	if deps.clock == nil {
		deps.clock = timetracker.SystemClock
	}
	if deps.l == nil {
		deps.l = log.Default()
	}
	now := deps.clock.Now()
	return &Timer{
		parentCtx: ctx,
		cfg:       cfg,
		timerDeps: deps,
		lastEdit:  now,
		startedAt: now,
	}
}

// Restore recovers the description from the log and the status persisted by
// a previous process. A running session resumes with a fresh start time.
func (t *Timer) Restore(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	desc, err := t.sink.PreviousDescription(ctx)
	if err != nil {
		t.l.Warn("no previous description", "err", err)
	} else {
		t.description = desc
	}

	status := timetracker.StatusStopped
	record, err := t.repo.GetState(ctx, timetracker.TimerStatusKey)
	switch {
	case err == nil:
		status = timetracker.ParseStatus(record.Value)
	case errors.Is(err, timetracker.ErrNotFound):
	default:
		t.l.Error("failed to restore timer status", "err", err)
	}
	t.l.Info("restored timer", "status", status, "description", t.description)

	switch status {
	case timetracker.StatusRunning:
		t.start(false)
	case timetracker.StatusPaused:
		t.enterPaused()
	default:
		t.setStatus(timetracker.StatusStopped)
	}
}

func (t *Timer) OnUpdate(f UpdateFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onUpdate = append(t.onUpdate, f)
}

func (t *Timer) Status() timetracker.Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *Timer) Description() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.description
}

// Duration is the time since the current session (re)started.
func (t *Timer) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed()
}

func (t *Timer) StartedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.startedAt
}

func (t *Timer) Start(silent bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.start(silent)
}

// Pause flushes the session minus the inactivity timeout and waits for
// activity. It does nothing unless the timer is running.
func (t *Timer) Pause(silent bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != timetracker.StatusRunning {
		t.l.Debug("ignoring pause", "status", t.status)
		return
	}
	t.pause(silent)
}

func (t *Timer) Stop(silent bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stop(silent)
}

// Toggle starts a stopped timer and stops a running or paused one.
func (t *Timer) Toggle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status == timetracker.StatusStopped {
		t.start(false)
		return
	}
	t.stop(false)
}

// WriteToLog flushes the current session, or override when given.
func (t *Timer) WriteToLog(override *time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writeToLog(override)
}

// SetDescription flushes an active session under the old description and
// resumes it in the same status under the new one.
func (t *Timer) SetDescription(description string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.status
	if prev != timetracker.StatusStopped {
		t.stop(true)
	}
	t.description = description
	t.l.Info("description set", "description", description)

	switch prev {
	case timetracker.StatusRunning:
		t.start(true)
	case timetracker.StatusPaused:
		t.enterPaused()
	}
}

// SetLastEdit records editor activity and resumes a paused timer.
func (t *Timer) SetLastEdit(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastEdit = at
	if t.status == timetracker.StatusPaused {
		t.start(false)
	}
}

// Tick notifies observers and pauses the timer once the workspace has been
// idle for longer than the inactivity timeout.
func (t *Timer) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tick()
}

// Close stops an active session and waits for the tick loop to exit.
func (t *Timer) Close() {
	t.mu.Lock()
	if t.status != timetracker.StatusStopped {
		t.stop(false)
	}
	t.stopTickLoop()
	t.mu.Unlock()

	t.wg.Wait()
}

func (t *Timer) start(silent bool) {
	if t.status == timetracker.StatusStopped {
		t.sessionID = uuid.New()
	}
	t.startedAt = t.clock.Now()
	t.setStatus(timetracker.StatusRunning)
	t.startTickLoop()
	t.l.Debug("started session", "sessionID", t.sessionID, "description", t.description)

	if !silent {
		t.notifier.Info("Started time tracking")
	}
}

func (t *Timer) pause(silent bool) {
	t.stopTickLoop()
	d := t.elapsed() - t.cfg.InactivityTimeout
	_ = t.writeToLog(&d)
	t.enterPaused()
	t.l.Debug("paused session", "sessionID", t.sessionID)

	if !silent {
		t.notifier.Info("Paused time tracking")
	}
}

// enterPaused switches to paused without a running clock. startedAt moves to
// the pause so a later stop does not count the flushed time twice.
func (t *Timer) enterPaused() {
	t.stopTickLoop()
	t.startedAt = t.clock.Now()
	t.setStatus(timetracker.StatusPaused)
}

func (t *Timer) stop(silent bool) {
	t.stopTickLoop()
	_ = t.writeToLog(nil)
	t.l.Debug("stopped session", "sessionID", t.sessionID)
	t.setStatus(timetracker.StatusStopped)

	if !silent {
		t.notifier.Info("Stopped time tracking")
	}
}

func (t *Timer) tick() {
	t.notify()
	if t.status != timetracker.StatusRunning {
		return
	}
	idle := t.clock.Now().Sub(t.lastEdit)
	if idle > t.cfg.InactivityTimeout {
		t.l.Info("inactivity timeout reached", "idle", idle.Round(time.Second), "sessionID", t.sessionID)
		t.pause(false)
	}
}

func (t *Timer) writeToLog(override *time.Duration) error {
	if t.status == timetracker.StatusStopped {
		t.notifier.Error("Timer not running")
		return timetracker.ErrNoActiveSession
	}

	d := t.elapsed()
	if override != nil {
		d = *override
	}

	// sessions at or under the minimum are dropped
	if d <= t.cfg.MinimumLogTime {
		t.l.Debug("discarding short session", "sessionID", t.sessionID, "duration", d, "minimum", t.cfg.MinimumLogTime)
		return nil
	}

	record := timetracker.NewLogRecord(t.startedAt, t.clock.Now(), d, t.description)
	if err := t.sink.Append(context.WithoutCancel(t.parentCtx), record); err != nil {
		t.l.Error("failed to write log record", "sessionID", t.sessionID, "err", err)
		t.notifier.Error("An error occurred while creating the time tracking file")
		return fmt.Errorf("failed to write log record: %w", err)
	}
	t.l.Info("logged session", "sessionID", t.sessionID, "minutes", record.Minutes, "description", record.Description)
	return nil
}

func (t *Timer) setStatus(s timetracker.Status) {
	t.status = s
	t.notify()
	t.persistStatus()
}

func (t *Timer) persistStatus() {
	ctx := context.WithoutCancel(t.parentCtx)
	err := t.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := t.repo.PutState(ctx, timetracker.TimerStatusKey, t.status.String()); err != nil {
			return err
		}
		_, err := t.repo.PutState(ctx, timetracker.TimerStartedAtKey, t.startedAt.UTC().Format(time.RFC3339))
		return err
	})
	if err != nil {
		t.l.Error("failed to persist timer status", "status", t.status, "err", err)
	}
}

func (t *Timer) notify() {
	elapsed := t.elapsed()
	for _, f := range t.onUpdate {
		f(elapsed, t.status)
	}
}

func (t *Timer) elapsed() time.Duration {
	return t.clock.Now().Sub(t.startedAt)
}

// startTickLoop replaces any running loop. A tick that was already waiting on
// mu when its loop got cancelled returns without effect.
func (t *Timer) startTickLoop() {
	t.stopTickLoop()

	ctx, cancel := context.WithCancel(t.parentCtx)
	t.cancelTick = cancel
	ticker := t.clock.NewTicker(tickRate)
	t.wg.Go(func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				t.mu.Lock()
				if ctx.Err() == nil {
					t.tick()
				}
				t.mu.Unlock()
			}
		}
	})
}

func (t *Timer) stopTickLoop() {
	if t.cancelTick != nil {
		t.cancelTick()
		t.cancelTick = nil
	}
}
