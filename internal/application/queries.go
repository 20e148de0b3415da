package application

import (
	"context"
	"fmt"

	"github.com/bnema/notetime-cli/internal/domain"
)

// StatusSnapshot is the read model behind `nt status`: the running
// session with its elapsed time computed against the service clock, the
// focused note, and a copy of the duration ledger.
type StatusSnapshot struct {
	Session     domain.TrackingSession
	RunningMs   int64
	FocusedNote string
	Ledger      domain.DurationLedger
}

func (s *TrackerService) Status(ctx context.Context) (StatusSnapshot, error) {
	state, _, err := s.repo.Load(ctx)
	if err != nil {
		return StatusSnapshot{}, fmt.Errorf("load tracking state: %w", err)
	}

	return StatusSnapshot{
		Session:     state.Session,
		RunningMs:   state.Session.Elapsed(s.clock.Now()).Milliseconds(),
		FocusedNote: state.FocusedNote,
		Ledger:      state.Ledger.Clone(),
	}, nil
}
