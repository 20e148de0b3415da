package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/notetime-cli/internal/adapters/render/status"
)

// writeNotice prints a styled one-liner to stderr and reports success to
// cobra, so expected tracking failures exit zero instead of erroring.
func writeNotice(cmd *cobra.Command, text string, warn bool) error {
	_, err := fmt.Fprintln(cmd.ErrOrStderr(), statusadapter.Notice(text, warn))
	return err
}
