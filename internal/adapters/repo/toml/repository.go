package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/notetime-cli/internal/domain"
	"github.com/bnema/notetime-cli/internal/ports"
)

const (
	configName      = "config"
	configType      = "toml"
	statePathKey    = "state.path"
	stateFileMode   = 0o600
	stateDirMode    = 0o700
	stateConfigDir  = ".notetime"
	stateConfigFile = "state.toml"
	tempFilePattern = ".state-*.toml.tmp"
	envPrefix       = "NOTETIME"
)

type Repository struct {
	statePath string
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.TrackingStateRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, stateConfigDir, stateConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, stateConfigDir))
	cfg.SetDefault(statePathKey, defaultPath)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	statePath := cfg.GetString(statePathKey)
	if statePath == "" {
		return nil, errors.New("state path is empty")
	}
	statePath, err = normalizeStatePath(statePath)
	if err != nil {
		return nil, err
	}

	return &Repository{statePath: statePath, mu: lockForPath(statePath)}, nil
}

func (r *Repository) Load(ctx context.Context) (domain.TrackingState, domain.LogSettings, error) {
	if err := ctx.Err(); err != nil {
		return domain.TrackingState{}, domain.LogSettings{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.TrackingState{}, domain.LogSettings{}, err
	}

	state, settings := fromSchema(file)
	return state, settings, nil
}

func (r *Repository) SaveState(ctx context.Context, state domain.TrackingState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	file.Session = sessionToSchema(state.Session)
	file.Workspace.FocusedNote = state.FocusedNote
	file.TimeTracking = ledgerToSchema(state.Ledger)

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) SaveSettings(ctx context.Context, settings domain.LogSettings) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	file.Settings = settingsSchema{
		DateHeader:       settings.DateHeader,
		DurationHeader:   settings.DurationHeader,
		LogSectionHeader: settings.SectionHeader,
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.statePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read state file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode state file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeStatePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve state path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.statePath), stateDirMode); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.statePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}

	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tempName, r.statePath); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.statePath, stateFileMode); err != nil {
		return fmt.Errorf("chmod state file: %w", err)
	}

	return nil
}

func sessionToSchema(session domain.TrackingSession) *sessionSchema {
	if !session.Active() {
		return nil
	}

	return &sessionSchema{
		ID:        session.ID,
		Note:      session.Note,
		StartTime: formatTime(session.StartedAt),
	}
}

func sessionFromSchema(session *sessionSchema) domain.TrackingSession {
	if session == nil {
		return domain.TrackingSession{}
	}

	startedAt := parseTime(session.StartTime)
	if session.Note == "" || startedAt.IsZero() {
		// Note and start time travel together; a blob carrying only one
		// of them is treated as no session at all.
		return domain.TrackingSession{}
	}

	return domain.TrackingSession{
		ID:        session.ID,
		Note:      session.Note,
		StartedAt: startedAt,
	}
}

func ledgerToSchema(ledger domain.DurationLedger) map[string]int64 {
	if len(ledger) == 0 {
		return nil
	}

	out := make(map[string]int64, len(ledger))
	for note, ms := range ledger {
		out[note] = ms
	}
	return out
}

func ledgerFromSchema(tracking map[string]int64) domain.DurationLedger {
	ledger := make(domain.DurationLedger, len(tracking))
	for note, ms := range tracking {
		if ms < 0 {
			ms = 0
		}
		ledger[note] = ms
	}
	return ledger
}

func fromSchema(file fileSchema) (domain.TrackingState, domain.LogSettings) {
	settings := domain.LogSettings{
		DateHeader:     file.Settings.DateHeader,
		DurationHeader: file.Settings.DurationHeader,
		SectionHeader:  file.Settings.LogSectionHeader,
	}
	settings.ApplyDefaults()

	state := domain.TrackingState{
		Session:     sessionFromSchema(file.Session),
		Ledger:      ledgerFromSchema(file.TimeTracking),
		FocusedNote: file.Workspace.FocusedNote,
	}

	return state, settings
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
