package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	statusadapter "github.com/bnema/notetime-cli/internal/adapters/render/status"
	tomlrepo "github.com/bnema/notetime-cli/internal/adapters/repo/toml"
	"github.com/bnema/notetime-cli/internal/adapters/workspace"
	"github.com/bnema/notetime-cli/internal/application"
	"github.com/bnema/notetime-cli/internal/logging"
	"github.com/bnema/notetime-cli/internal/ports"
)

type app struct {
	tracker        *application.TrackerService
	settings       *application.SettingsService
	statusRenderer func(application.StatusSnapshot, statusadapter.RenderOptions) (string, error)
	logger         zerolog.Logger
	now            func() time.Time
}

func wireApp() (*app, error) {
	if err := statusadapter.Configure(viper.New()); err != nil {
		return nil, fmt.Errorf("configure output rendering: %w", err)
	}

	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire state repository: %w", err)
	}

	notes, err := workspace.NewStore(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire note workspace: %w", err)
	}

	logger, err := logging.New(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	return &app{
		tracker:        application.NewTrackerService(repo, notes, ports.SystemClock{}),
		settings:       application.NewSettingsService(repo),
		statusRenderer: statusadapter.Render,
		logger:         logger,
		now:            time.Now,
	}, nil
}
