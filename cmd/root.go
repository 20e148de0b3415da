package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nt",
		Short:         "Note time tracking (nt): track working time against markdown notes",
		Long:          "nt tracks working sessions against markdown notes, keeps a cumulative per-note time ledger, and appends a time log table entry to the note whenever a session stops.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newStartCmd(app),
		newStopCmd(app),
		newStatusCmd(app),
		newFocusCmd(app),
		newSettingsCmd(app),
	)

	return rootCmd
}
