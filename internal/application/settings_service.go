package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/notetime-cli/internal/domain"
	"github.com/bnema/notetime-cli/internal/ports"
)

var ErrUnknownSetting = errors.New("unknown setting key")

// Setting keys accepted by Set, matching the state file's field names.
const (
	SettingDateHeader     = "date_header"
	SettingDurationHeader = "duration_header"
	SettingSectionHeader  = "log_section_header"
)

// SettingKeys lists the accepted keys in display order.
var SettingKeys = []string{SettingDateHeader, SettingDurationHeader, SettingSectionHeader}

type SettingsService struct {
	repo ports.TrackingStateRepository
}

func NewSettingsService(repo ports.TrackingStateRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context) (domain.LogSettings, error) {
	_, settings, err := s.repo.Load(ctx)
	if err != nil {
		return domain.LogSettings{}, fmt.Errorf("load log settings: %w", err)
	}

	return settings, nil
}

// Update persists settings immediately. Fields left empty reset to their
// defaults, mirroring how the state file merges over them at load time.
func (s *SettingsService) Update(ctx context.Context, settings domain.LogSettings) (domain.LogSettings, error) {
	settings.ApplyDefaults()

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return domain.LogSettings{}, fmt.Errorf("save log settings: %w", err)
	}

	return settings, nil
}

// Set updates one field by key and persists the result.
func (s *SettingsService) Set(ctx context.Context, key, value string) (domain.LogSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return domain.LogSettings{}, err
	}

	switch key {
	case SettingDateHeader:
		settings.DateHeader = value
	case SettingDurationHeader:
		settings.DurationHeader = value
	case SettingSectionHeader:
		settings.SectionHeader = value
	default:
		return domain.LogSettings{}, fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}

	return s.Update(ctx, settings)
}
