package ports

import (
	"context"

	"github.com/bnema/notetime-cli/internal/domain"
)

type TrackingStateRepository interface {
	Load(ctx context.Context) (domain.TrackingState, domain.LogSettings, error)
	SaveState(ctx context.Context, state domain.TrackingState) error
	SaveSettings(ctx context.Context, settings domain.LogSettings) error
}
