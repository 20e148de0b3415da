package domain

// LogSettings holds the user-configurable labels of the time log: the two
// table column headers and the name of the markdown section the table
// lives under.
type LogSettings struct {
	DateHeader     string
	DurationHeader string
	SectionHeader  string
}

// DefaultLogSettings returns the built-in labels.
func DefaultLogSettings() LogSettings {
	return LogSettings{
		DateHeader:     "Date",
		DurationHeader: "Duration",
		SectionHeader:  "Time Log",
	}
}

// ApplyDefaults fills any empty field from the defaults so a partially
// configured blob still renders a complete table.
func (s *LogSettings) ApplyDefaults() {
	def := DefaultLogSettings()
	if s.DateHeader == "" {
		s.DateHeader = def.DateHeader
	}
	if s.DurationHeader == "" {
		s.DurationHeader = def.DurationHeader
	}
	if s.SectionHeader == "" {
		s.SectionHeader = def.SectionHeader
	}
}
