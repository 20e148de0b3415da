package status

// Notice renders a one-line message for command output, styled as a
// warning when warn is set.
func Notice(text string, warn bool) string {
	s := newStyles()
	if warn {
		return s.warning.Render(text)
	}
	return s.detail.Render(text)
}
