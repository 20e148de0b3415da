// Package workspace is the file-backed note store: it resolves note
// arguments against a configured workspace root and splices log blocks
// into note files. It stands in for the host editor surface, so its
// cursor for inserts is always end-of-file.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/bnema/notetime-cli/internal/domain"
	"github.com/bnema/notetime-cli/internal/ports"
)

const (
	configName       = "config"
	configType       = "toml"
	workspaceRootKey = "workspace.root"
	workspaceDir     = ".notetime"
	noteExtension    = ".md"
	envPrefix        = "NOTETIME"
)

type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.Workspace = (*Store)(nil)

func NewStore(cfg *viper.Viper) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, workspaceDir))
	cfg.SetDefault(workspaceRootKey, ".")
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

	root := cfg.GetString(workspaceRootKey)
	if root == "" {
		return nil, errors.New("workspace root is empty")
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}

	return &Store{root: filepath.Clean(root)}, nil
}

// Resolve normalizes note to its workspace-relative form and checks that
// it names an editable note. Targets outside the workspace, directories,
// missing files, and non-markdown files all resolve to ErrNoActiveDocument.
func (s *Store) Resolve(ctx context.Context, note string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel, abs, ok := s.notePath(note)
	if !ok {
		return "", fmt.Errorf("note %q is not inside the workspace: %w", note, domain.ErrNoActiveDocument)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !editableNote(abs) {
		return "", fmt.Errorf("note %q is not an editable note: %w", note, domain.ErrNoActiveDocument)
	}

	return rel, nil
}

// Snapshot reads the note's current text. The reported cursor sits at
// end-of-file, where this adapter splices inserts.
func (s *Store) Snapshot(ctx context.Context, note string) (ports.Document, error) {
	if err := ctx.Err(); err != nil {
		return ports.Document{}, err
	}

	rel, abs, ok := s.notePath(note)
	if !ok {
		return ports.Document{}, fmt.Errorf("note %q is not inside the workspace: %w", note, domain.ErrNoEditableView)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !editableNote(abs) {
		return ports.Document{}, fmt.Errorf("note %q is not an editable note: %w", note, domain.ErrNoEditableView)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return ports.Document{}, fmt.Errorf("read note %q: %w", note, err)
	}

	return ports.Document{Path: rel, Text: string(data), Cursor: len(data)}, nil
}

// Insert splices block into the note at position. Positions outside the
// note's bounds are clamped to end-of-file.
func (s *Store) Insert(ctx context.Context, note string, position int, block string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, abs, ok := s.notePath(note)
	if !ok {
		return fmt.Errorf("note %q is not inside the workspace: %w", note, domain.ErrNoEditableView)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(abs)
	if err != nil || info.IsDir() || !strings.EqualFold(filepath.Ext(abs), noteExtension) {
		return fmt.Errorf("note %q is not an editable note: %w", note, domain.ErrNoEditableView)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("read note %q: %w", note, err)
	}

	if position < 0 || position > len(data) {
		position = len(data)
	}

	spliced := make([]byte, 0, len(data)+len(block))
	spliced = append(spliced, data[:position]...)
	spliced = append(spliced, block...)
	spliced = append(spliced, data[position:]...)

	if err := os.WriteFile(abs, spliced, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write note %q: %w", note, err)
	}

	return nil
}

func (s *Store) notePath(note string) (rel string, abs string, ok bool) {
	trimmed := strings.TrimSpace(note)
	if trimmed == "" {
		return "", "", false
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) {
		relPath, err := filepath.Rel(s.root, cleaned)
		if err != nil || strings.HasPrefix(relPath, "..") {
			return "", "", false
		}
		cleaned = relPath
	}
	if strings.HasPrefix(cleaned, "..") || cleaned == "." {
		return "", "", false
	}

	return filepath.ToSlash(cleaned), filepath.Join(s.root, cleaned), true
}

func editableNote(abs string) bool {
	info, err := os.Stat(abs)
	if err != nil {
		return false
	}

	return !info.IsDir() && strings.EqualFold(filepath.Ext(abs), noteExtension)
}
