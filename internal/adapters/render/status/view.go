package status

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/notetime-cli/internal/application"
	"github.com/bnema/notetime-cli/internal/logbook"
)

type RenderOptions struct {
	Now time.Time
}

func renderView(snapshot application.StatusSnapshot, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Note Time Tracking"),
		s.header.Render(fmt.Sprintf("tracked notes: %d", len(snapshot.Ledger))),
	}

	lines = append(lines, s.section.Render(renderSession(snapshot, opts, s)))

	if len(snapshot.Ledger) > 0 {
		lines = append(lines, s.section.Render(renderLedger(snapshot, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSession(snapshot application.StatusSnapshot, opts RenderOptions, s styles) string {
	if !snapshot.Session.Active() {
		parts := []string{s.empty.Render("No session running.")}
		if snapshot.FocusedNote != "" {
			parts = append(parts, s.detail.Render(fmt.Sprintf("focused: %s", snapshot.FocusedNote)))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	parts := []string{
		s.note.Render(fmt.Sprintf("Tracking %s", snapshot.Session.Note)),
		s.detail.Render(fmt.Sprintf("started %s", formatStartedAt(snapshot.Session.StartedAt, opts.Now))),
		s.detail.Render(fmt.Sprintf("elapsed %s", logbook.FormatDuration(snapshot.RunningMs))),
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderLedger(snapshot application.StatusSnapshot, s styles) string {
	notes := make([]string, 0, len(snapshot.Ledger))
	width := 0
	for note := range snapshot.Ledger {
		notes = append(notes, note)
		if len(note) > width {
			width = len(note)
		}
	}
	sort.Strings(notes)

	parts := make([]string, 0, len(notes))
	for _, note := range notes {
		line := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.ledgerNote.Render(fmt.Sprintf("%-*s", width, note)),
			"  ",
			s.ledgerTime.Render(logbook.FormatDuration(snapshot.Ledger.Total(note))),
		)
		parts = append(parts, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func formatStartedAt(startedAt, now time.Time) string {
	if startedAt.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return startedAt.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := startedAt.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return startedAt.Format("15:04")
	}

	return startedAt.Format("15:04 on 02 Jan")
}
