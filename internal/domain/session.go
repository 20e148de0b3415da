package domain

import (
	"strings"
	"time"
)

// TrackingSession is the single in-flight tracking session. Note and
// StartedAt are always set together and cleared together; a session with
// only one of them is never constructed. ID is assigned on start and used
// for diagnostics only.
type TrackingSession struct {
	ID        string
	Note      string
	StartedAt time.Time
}

// Active reports whether the session is currently running.
func (s TrackingSession) Active() bool {
	return s.Note != "" && !s.StartedAt.IsZero()
}

// Elapsed returns the running time accumulated by now, clamped to zero
// when the clock moved backwards. Zero when no session is active.
func (s TrackingSession) Elapsed(now time.Time) time.Duration {
	if !s.Active() {
		return 0
	}
	elapsed := now.Sub(s.StartedAt)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// TrackingState is the one mutable state object of the tracker: the
// in-flight session, the per-note duration ledger, and the focused note
// used as the default target when start is given no argument.
type TrackingState struct {
	Session     TrackingSession
	Ledger      DurationLedger
	FocusedNote string
}

// StopOutcome reports a single stopped session: the note it was tracked
// against and the elapsed milliseconds of this session alone, not the
// ledger total.
type StopOutcome struct {
	Note      string
	ElapsedMs int64
}

// Start begins a session on note at now. A session already running is
// overwritten without error and returned so the caller can surface the
// discarded time; the discarded session is never credited to the ledger.
func (t *TrackingState) Start(id, note string, now time.Time) (discarded TrackingSession, err error) {
	if strings.TrimSpace(note) == "" {
		return TrackingSession{}, ErrNoActiveDocument
	}

	if t.Session.Active() {
		discarded = t.Session
	}
	t.Session = TrackingSession{ID: id, Note: note, StartedAt: now}

	return discarded, nil
}

// Stop ends the running session, credits its elapsed time to the ledger
// and clears the session. The elapsed time is clamped to zero when the
// clock moved backwards between start and stop.
func (t *TrackingState) Stop(now time.Time) (StopOutcome, error) {
	if !t.Session.Active() {
		return StopOutcome{}, ErrNoActiveSession
	}

	elapsedMs := now.Sub(t.Session.StartedAt).Milliseconds()
	if elapsedMs < 0 {
		elapsedMs = 0
	}

	if t.Ledger == nil {
		t.Ledger = DurationLedger{}
	}
	t.Ledger.Add(t.Session.Note, elapsedMs)

	outcome := StopOutcome{Note: t.Session.Note, ElapsedMs: elapsedMs}
	t.Session = TrackingSession{}

	return outcome, nil
}
