package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bnema/notetime-cli/internal/domain"
	"github.com/bnema/notetime-cli/internal/logbook"
	"github.com/bnema/notetime-cli/internal/ports"
)

// TrackerService orchestrates the session state machine around its ports:
// note resolution, state persistence, and log insertion.
type TrackerService struct {
	repo  ports.TrackingStateRepository
	notes ports.Workspace
	clock ports.Clock
	newID func() string
}

func NewTrackerService(repo ports.TrackingStateRepository, notes ports.Workspace, clock ports.Clock) *TrackerService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &TrackerService{
		repo:  repo,
		notes: notes,
		clock: clock,
		newID: func() string { return uuid.New().String() },
	}
}

// StartResult reports a started session. Discarded carries the previous
// session when starting overwrote one; its partial time is not credited
// anywhere and is surfaced so the caller can tell the user.
type StartResult struct {
	Session   domain.TrackingSession
	Discarded domain.TrackingSession
}

// Start begins tracking against note, or against the focused note when
// note is empty. With neither available it fails with ErrNoActiveDocument.
func (s *TrackerService) Start(ctx context.Context, note string) (StartResult, error) {
	state, _, err := s.repo.Load(ctx)
	if err != nil {
		return StartResult{}, fmt.Errorf("load tracking state: %w", err)
	}

	target := strings.TrimSpace(note)
	if target == "" {
		target = state.FocusedNote
	}
	if target == "" {
		return StartResult{}, fmt.Errorf("no note given and none focused: %w", domain.ErrNoActiveDocument)
	}

	resolved, err := s.notes.Resolve(ctx, target)
	if err != nil {
		return StartResult{}, fmt.Errorf("resolve tracking target: %w", err)
	}

	discarded, err := state.Start(s.newID(), resolved, s.clock.Now())
	if err != nil {
		return StartResult{}, err
	}

	if err := s.repo.SaveState(ctx, state); err != nil {
		return StartResult{}, fmt.Errorf("save tracking state: %w", err)
	}

	return StartResult{Session: state.Session, Discarded: discarded}, nil
}

// StopResult reports a stopped session: the per-session elapsed time, the
// note's cumulative total after crediting it, and whether the log entry
// made it into the note.
type StopResult struct {
	Note       string
	ElapsedMs  int64
	TotalMs    int64
	LogWritten bool
}

// Stop ends the running session, persists the updated ledger, and splices
// a log entry into the tracked note. When the note cannot take the entry
// the returned error wraps ErrNoEditableView and the result is still
// valid: the session stopped and its time is in the ledger; only the
// insertion was skipped.
func (s *TrackerService) Stop(ctx context.Context) (StopResult, error) {
	state, settings, err := s.repo.Load(ctx)
	if err != nil {
		return StopResult{}, fmt.Errorf("load tracking state: %w", err)
	}

	now := s.clock.Now()

	outcome, err := state.Stop(now)
	if err != nil {
		return StopResult{}, err
	}

	if err := s.repo.SaveState(ctx, state); err != nil {
		return StopResult{}, fmt.Errorf("save tracking state: %w", err)
	}

	result := StopResult{
		Note:      outcome.Note,
		ElapsedMs: outcome.ElapsedMs,
		TotalMs:   state.Ledger.Total(outcome.Note),
	}

	doc, err := s.notes.Snapshot(ctx, outcome.Note)
	if err != nil {
		return result, fmt.Errorf("snapshot note for log entry: %w", err)
	}

	block := logbook.BuildInsert(outcome.ElapsedMs, doc.Text, settings, now)
	if err := s.notes.Insert(ctx, outcome.Note, doc.Cursor, block); err != nil {
		return result, fmt.Errorf("insert log entry: %w", err)
	}

	result.LogWritten = true
	return result, nil
}

// Focus sets note as the default tracking target used when Start is given
// no argument, returning its workspace-relative form.
func (s *TrackerService) Focus(ctx context.Context, note string) (string, error) {
	resolved, err := s.notes.Resolve(ctx, note)
	if err != nil {
		return "", fmt.Errorf("resolve focus target: %w", err)
	}

	state, _, err := s.repo.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load tracking state: %w", err)
	}

	state.FocusedNote = resolved

	if err := s.repo.SaveState(ctx, state); err != nil {
		return "", fmt.Errorf("save tracking state: %w", err)
	}

	return resolved, nil
}

// ClearFocus removes the focused note. Start then requires an explicit
// note argument until a new focus is set.
func (s *TrackerService) ClearFocus(ctx context.Context) error {
	state, _, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load tracking state: %w", err)
	}

	state.FocusedNote = ""

	if err := s.repo.SaveState(ctx, state); err != nil {
		return fmt.Errorf("save tracking state: %w", err)
	}

	return nil
}
