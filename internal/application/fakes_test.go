package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/notetime-cli/internal/domain"
	"github.com/bnema/notetime-cli/internal/ports"
)

// fakeStateRepo keeps the blob in memory. Load hands out copies the way a
// real decode would, so service-side mutations only land via SaveState.
type fakeStateRepo struct {
	state    domain.TrackingState
	settings domain.LogSettings

	loadErr error
	saveErr error
	saves   int
}

var _ ports.TrackingStateRepository = (*fakeStateRepo)(nil)

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{settings: domain.DefaultLogSettings()}
}

func (f *fakeStateRepo) Load(context.Context) (domain.TrackingState, domain.LogSettings, error) {
	if f.loadErr != nil {
		return domain.TrackingState{}, domain.LogSettings{}, f.loadErr
	}

	state := f.state
	state.Ledger = f.state.Ledger.Clone()
	return state, f.settings, nil
}

func (f *fakeStateRepo) SaveState(_ context.Context, state domain.TrackingState) error {
	if f.saveErr != nil {
		return f.saveErr
	}

	f.saves++
	state.Ledger = state.Ledger.Clone()
	f.state = state
	return nil
}

func (f *fakeStateRepo) SaveSettings(_ context.Context, settings domain.LogSettings) error {
	if f.saveErr != nil {
		return f.saveErr
	}

	f.saves++
	f.settings = settings
	return nil
}

type fakeInsert struct {
	note     string
	position int
	block    string
}

// fakeWorkspace serves notes from a map keyed by workspace-relative path.
type fakeWorkspace struct {
	notes map[string]string

	snapshotErr error
	insertErr   error
	inserts     []fakeInsert
}

var _ ports.Workspace = (*fakeWorkspace)(nil)

func newFakeWorkspace(notes map[string]string) *fakeWorkspace {
	if notes == nil {
		notes = map[string]string{}
	}
	return &fakeWorkspace{notes: notes}
}

func (f *fakeWorkspace) Resolve(_ context.Context, note string) (string, error) {
	if _, ok := f.notes[note]; !ok {
		return "", fmt.Errorf("note %q is not an editable note: %w", note, domain.ErrNoActiveDocument)
	}
	return note, nil
}

func (f *fakeWorkspace) Snapshot(_ context.Context, note string) (ports.Document, error) {
	if f.snapshotErr != nil {
		return ports.Document{}, f.snapshotErr
	}

	text, ok := f.notes[note]
	if !ok {
		return ports.Document{}, fmt.Errorf("note %q is not an editable note: %w", note, domain.ErrNoEditableView)
	}
	return ports.Document{Path: note, Text: text, Cursor: len(text)}, nil
}

func (f *fakeWorkspace) Insert(_ context.Context, note string, position int, block string) error {
	if f.insertErr != nil {
		return f.insertErr
	}

	text, ok := f.notes[note]
	if !ok {
		return fmt.Errorf("note %q is not an editable note: %w", note, domain.ErrNoEditableView)
	}

	f.notes[note] = text[:position] + block + text[position:]
	f.inserts = append(f.inserts, fakeInsert{note: note, position: position, block: block})
	return nil
}

type fakeClock struct {
	now time.Time
}

var _ ports.Clock = (*fakeClock)(nil)

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestTracker(repo *fakeStateRepo, notes *fakeWorkspace, clock *fakeClock) *TrackerService {
	svc := NewTrackerService(repo, notes, clock)

	next := 0
	svc.newID = func() string {
		next++
		return fmt.Sprintf("session-%d", next)
	}
	return svc
}
