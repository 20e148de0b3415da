package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version      int              `toml:"version"`
	Session      *sessionSchema   `toml:"session,omitempty"`
	Settings     settingsSchema   `toml:"settings"`
	Workspace    workspaceSchema  `toml:"workspace"`
	TimeTracking map[string]int64 `toml:"time_tracking,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported state schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	ID        string `toml:"id"`
	Note      string `toml:"note"`
	StartTime string `toml:"start_time"`
}

type settingsSchema struct {
	DateHeader       string `toml:"date_header"`
	DurationHeader   string `toml:"duration_header"`
	LogSectionHeader string `toml:"log_section_header"`
}

type workspaceSchema struct {
	FocusedNote string `toml:"focused_note,omitempty"`
}
