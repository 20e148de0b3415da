package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingStateStartRequiresNote(t *testing.T) {
	t.Parallel()

	state := TrackingState{}

	_, err := state.Start("id-1", "", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNoActiveDocument)

	_, err = state.Start("id-1", "   ", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNoActiveDocument)

	assert.False(t, state.Session.Active())
}

func TestTrackingStateStartThenStopCreditsExactElapsed(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	state := TrackingState{Ledger: DurationLedger{}}

	discarded, err := state.Start("id-1", "notes/todo.md", started)
	require.NoError(t, err)
	assert.False(t, discarded.Active())
	require.True(t, state.Session.Active())

	outcome, err := state.Stop(started.Add(65 * time.Second))
	require.NoError(t, err)

	assert.Equal(t, "notes/todo.md", outcome.Note)
	assert.Equal(t, int64(65_000), outcome.ElapsedMs)
	assert.Equal(t, int64(65_000), state.Ledger.Total("notes/todo.md"))
	assert.False(t, state.Session.Active())
}

func TestTrackingStateStopWithoutStart(t *testing.T) {
	t.Parallel()

	state := TrackingState{Ledger: DurationLedger{"notes/todo.md": 1_000}}

	_, err := state.Stop(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.Equal(t, int64(1_000), state.Ledger.Total("notes/todo.md"))
}

func TestTrackingStateStartOverwritesRunningSession(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	state := TrackingState{Ledger: DurationLedger{}}

	_, err := state.Start("id-1", "notes/first.md", started)
	require.NoError(t, err)

	discarded, err := state.Start("id-2", "notes/second.md", started.Add(2*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, "notes/first.md", discarded.Note)
	assert.Equal(t, "id-1", discarded.ID)
	assert.Equal(t, "notes/second.md", state.Session.Note)

	// The overwritten session is discarded, never credited.
	outcome, err := state.Stop(started.Add(5 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(3*60*1000), outcome.ElapsedMs)
	assert.Equal(t, int64(0), state.Ledger.Total("notes/first.md"))
	assert.Equal(t, int64(3*60*1000), state.Ledger.Total("notes/second.md"))
}

func TestTrackingStateSessionsAccumulateAdditively(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	state := TrackingState{Ledger: DurationLedger{}}

	_, err := state.Start("id-1", "notes/todo.md", started)
	require.NoError(t, err)
	_, err = state.Stop(started.Add(90 * time.Second))
	require.NoError(t, err)

	_, err = state.Start("id-2", "notes/todo.md", started.Add(10*time.Minute))
	require.NoError(t, err)
	_, err = state.Stop(started.Add(10*time.Minute + 30*time.Second))
	require.NoError(t, err)

	assert.Equal(t, int64(120_000), state.Ledger.Total("notes/todo.md"))
}

func TestTrackingStateStopClampsBackwardsClock(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	state := TrackingState{}

	_, err := state.Start("id-1", "notes/todo.md", started)
	require.NoError(t, err)

	outcome, err := state.Stop(started.Add(-time.Minute))
	require.NoError(t, err)

	assert.Equal(t, int64(0), outcome.ElapsedMs)
	assert.Equal(t, int64(0), state.Ledger.Total("notes/todo.md"))
}

func TestTrackingStateStopAllocatesLedger(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	state := TrackingState{}
	require.Nil(t, state.Ledger)

	_, err := state.Start("id-1", "notes/todo.md", started)
	require.NoError(t, err)
	_, err = state.Stop(started.Add(time.Second))
	require.NoError(t, err)

	assert.Equal(t, int64(1_000), state.Ledger.Total("notes/todo.md"))
}

func TestTrackingSessionElapsed(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	var idle TrackingSession
	assert.Equal(t, time.Duration(0), idle.Elapsed(started))

	running := TrackingSession{ID: "id-1", Note: "notes/todo.md", StartedAt: started}
	assert.Equal(t, 90*time.Second, running.Elapsed(started.Add(90*time.Second)))
	assert.Equal(t, time.Duration(0), running.Elapsed(started.Add(-time.Second)))
}
