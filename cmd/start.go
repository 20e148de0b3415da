package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/notetime-cli/internal/domain"
)

func newStartCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start [note]",
		Short: "Start tracking time against a note",
		Long:  "Start a tracking session against the given note, or against the focused note when no argument is given. A session still running is discarded without crediting its time.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note := ""
			if len(args) > 0 {
				note = args[0]
			}

			result, err := app.tracker.Start(cmd.Context(), note)
			if errors.Is(err, domain.ErrNoActiveDocument) {
				return writeNotice(cmd, err.Error(), true)
			}
			if err != nil {
				return err
			}

			if result.Discarded.Active() {
				app.logger.Debug().
					Str("event", "session_discarded").
					Str("session_id", result.Discarded.ID).
					Str("note", result.Discarded.Note).
					Time("started_at", result.Discarded.StartedAt).
					Msg("running session replaced without credit")

				if err := writeNotice(cmd, fmt.Sprintf("discarded running session on %s (time not credited)", result.Discarded.Note), true); err != nil {
					return err
				}
			}

			app.logger.Info().
				Str("event", "session_started").
				Str("session_id", result.Session.ID).
				Str("note", result.Session.Note).
				Msg("tracking session started")

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Tracking %s\n", result.Session.Note)
			return err
		},
	}
}
