// Package session enforces the single-active-session invariant on top of
// the library and exposes elapsed time for the timer display.
package session

import (
	"log/slog"
	"time"

	"github.com/okabe/tankobon/internal/domain"
	"github.com/okabe/tankobon/internal/library"
)

// Timer drives reading sessions through the library. The library itself
// accepts any number of open sessions; the timer is the component that
// guarantees at most one is active (check-then-act is enough since all
// operations run on a single goroutine).
type Timer struct {
	lib    *library.Service
	logger *slog.Logger

	now func() time.Time
}

// Option customizes a Timer, mainly for tests.
type Option func(*Timer)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// NewTimer creates a timer over the given library.
func NewTimer(lib *library.Service, logger *slog.Logger, opts ...Option) *Timer {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Timer{lib: lib, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Active returns the running session, if any.
func (t *Timer) Active() (domain.ReadingSession, bool) {
	return t.lib.ActiveSession()
}

// Start begins a new session, optionally bound to a title. It refuses to
// start while another session is active.
func (t *Timer) Start(titleID string) (domain.ReadingSession, error) {
	if _, ok := t.lib.ActiveSession(); ok {
		return domain.ReadingSession{}, domain.ErrSessionActive
	}
	sess := t.lib.StartSession(titleID)
	t.logger.Info("reading session started", "sessionID", sess.ID, "titleID", titleID)
	return sess, nil
}

// Stop closes the active session, recording how many chapters were read.
// When the session was bound to a title, a read entry is appended to the
// activity feed with the elapsed duration.
func (t *Timer) Stop(unitsRead int) (domain.ReadingSession, error) {
	active, ok := t.lib.ActiveSession()
	if !ok {
		return domain.ReadingSession{}, domain.ErrNoActiveSession
	}

	closed, err := t.lib.EndSession(active.ID, unitsRead)
	if err != nil {
		return domain.ReadingSession{}, err
	}

	if closed.TitleID != "" {
		details := domain.HistoryDetails{
			Units:           unitsRead,
			DurationSeconds: int(closed.Duration().Seconds()),
		}
		if title, err := t.lib.Title(closed.TitleID); err == nil {
			details.TitleName = title.Name
			details.Chapter = title.CurrentProgress
		}
		t.lib.RecordHistory(closed.TitleID, domain.ActionRead, details)
	}

	t.logger.Info("reading session stopped",
		"sessionID", closed.ID,
		"unitsRead", unitsRead,
		"duration", closed.Duration())
	return closed, nil
}

// Toggle stops the active session (recording unitsRead) or starts a new
// one bound to titleID when none is running.
func (t *Timer) Toggle(titleID string, unitsRead int) (domain.ReadingSession, error) {
	if _, ok := t.lib.ActiveSession(); ok {
		return t.Stop(unitsRead)
	}
	return t.Start(titleID)
}

// ElapsedSeconds returns whole seconds since the active session started,
// or zero when idle.
func (t *Timer) ElapsedSeconds() int {
	active, ok := t.lib.ActiveSession()
	if !ok {
		return 0
	}
	elapsed := t.now().Sub(active.StartedAt)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed.Seconds())
}
