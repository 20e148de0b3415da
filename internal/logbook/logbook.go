// Package logbook renders time-log entries as markdown table rows and
// decides how much surrounding structure (section heading, table header)
// an insert needs for a given note body.
package logbook

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/notetime-cli/internal/domain"
)

// timestampLayout renders the row timestamp in the zone of the supplied
// time value.
const timestampLayout = "2006-01-02 15:04:05"

// FormatDuration renders elapsed milliseconds as HH:MM:SS. The value is
// first rounded to a tenth of a minute, so the seconds column moves in
// six-second steps. The coarse rounding is part of the log format and
// affects display only, never the stored ledger totals.
func FormatDuration(elapsedMs int64) string {
	minutes := math.Round(float64(elapsedMs)/6000) / 10

	hours := int(minutes / 60)
	remMinutes := int(math.Mod(minutes, 60))
	remSeconds := int(math.Round(math.Mod(minutes, 1) * 60))

	return fmt.Sprintf("%02d:%02d:%02d", hours, remMinutes, remSeconds)
}

// BuildInsert returns the text block to splice into a note after a session
// stops: one table row carrying now and the formatted duration, preceded
// by the table header, and by the section heading when the note body does
// not already contain it. Containment is a plain substring test on the
// rendered "## <header>" string, and the table header is emitted on every
// insert even when the note already holds a log table.
func BuildInsert(elapsedMs int64, existingText string, settings domain.LogSettings, now time.Time) string {
	heading := "## " + settings.SectionHeader

	var b strings.Builder
	b.WriteString("\n\n")
	if !strings.Contains(existingText, heading) {
		b.WriteString(heading)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "| %s | %s |\n", settings.DateHeader, settings.DurationHeader)
	b.WriteString("| --- | --- |\n")
	fmt.Fprintf(&b, "| %s | %s |\n", now.Format(timestampLayout), FormatDuration(elapsedMs))
	b.WriteString("\n")

	return b.String()
}
