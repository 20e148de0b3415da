package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/notetime-cli/internal/domain"
)

func newFocusCmd(app *app) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "focus [note]",
		Short: "Set or show the default note for new sessions",
		Long:  "Set the note that `nt start` tracks when called without an argument. Without an argument the current focus is printed.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clear {
				if err := app.tracker.ClearFocus(cmd.Context()); err != nil {
					return err
				}

				app.logger.Info().Str("event", "focus_cleared").Msg("focused note cleared")

				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Focus cleared")
				return err
			}

			if len(args) == 0 {
				snapshot, err := app.tracker.Status(cmd.Context())
				if err != nil {
					return err
				}

				if snapshot.FocusedNote == "" {
					return writeNotice(cmd, "no note focused", false)
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), snapshot.FocusedNote)
				return err
			}

			resolved, err := app.tracker.Focus(cmd.Context(), args[0])
			if errors.Is(err, domain.ErrNoActiveDocument) {
				return writeNotice(cmd, err.Error(), true)
			}
			if err != nil {
				return err
			}

			app.logger.Info().Str("event", "focus_set").Str("note", resolved).Msg("focused note updated")

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Focused %s\n", resolved)
			return err
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the focused note")

	return cmd
}
