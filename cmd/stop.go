package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/notetime-cli/internal/domain"
	"github.com/bnema/notetime-cli/internal/logbook"
)

func newStopCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running session and log it into the note",
		Long:  "Stop the running session, credit its time to the note's ledger total, and append a time log entry to the note. When the note cannot take the entry the session still stops and its time is still credited.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.tracker.Stop(cmd.Context())
			if errors.Is(err, domain.ErrNoActiveSession) {
				return writeNotice(cmd, "no active session", false)
			}
			if err != nil && !errors.Is(err, domain.ErrNoEditableView) {
				return err
			}

			app.logger.Info().
				Str("event", "session_stopped").
				Str("note", result.Note).
				Int64("elapsed_ms", result.ElapsedMs).
				Bool("log_written", result.LogWritten).
				Msg("tracking session stopped")

			if _, werr := fmt.Fprintf(cmd.OutOrStdout(), "Stopped %s: %s this session, %s total\n",
				result.Note,
				logbook.FormatDuration(result.ElapsedMs),
				logbook.FormatDuration(result.TotalMs),
			); werr != nil {
				return werr
			}

			if err != nil {
				app.logger.Warn().
					Str("event", "log_entry_skipped").
					Str("note", result.Note).
					Err(err).
					Msg("note cannot take the log entry")

				return writeNotice(cmd, fmt.Sprintf("log entry skipped: %v", err), true)
			}

			return nil
		},
	}
}
