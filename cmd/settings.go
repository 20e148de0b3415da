package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bnema/notetime-cli/internal/application"
	"github.com/bnema/notetime-cli/internal/domain"
)

func newSettingsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage time log formatting settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
		newSettingsEditCmd(app),
	)

	return cmd
}

func newSettingsShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current time log settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settings.Get(cmd.Context())
			if err != nil {
				return err
			}

			for _, key := range application.SettingKeys {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", key, settingValue(settings, key))
			}

			return nil
		},
	}
}

func newSettingsSetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one time log setting",
		Long:  "Set one of: " + strings.Join(application.SettingKeys, ", ") + ". An empty value resets the key to its default.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.settings.Set(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			app.logger.Info().
				Str("event", "settings_updated").
				Str("key", args[0]).
				Msg("time log settings updated")

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %q\n", args[0], settingValue(settings, args[0]))
			return err
		},
	}
}

func newSettingsEditCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit time log settings in an interactive form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isInteractive() {
				return errors.New("settings edit needs an interactive terminal, use `nt settings set` instead")
			}

			settings, err := app.settings.Get(cmd.Context())
			if err != nil {
				return err
			}

			if err := newSettingsForm(&settings).RunWithContext(cmd.Context()); err != nil {
				return fmt.Errorf("run settings form: %w", err)
			}

			updated, err := app.settings.Update(cmd.Context(), settings)
			if err != nil {
				return err
			}

			app.logger.Info().Str("event", "settings_updated").Msg("time log settings updated")

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s | %s | %s\n",
				updated.DateHeader, updated.DurationHeader, updated.SectionHeader)
			return err
		},
	}
}

func isInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func settingValue(settings domain.LogSettings, key string) string {
	switch key {
	case application.SettingDateHeader:
		return settings.DateHeader
	case application.SettingDurationHeader:
		return settings.DurationHeader
	default:
		return settings.SectionHeader
	}
}

func newSettingsForm(settings *domain.LogSettings) *huh.Form {
	defaults := domain.DefaultLogSettings()

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date column header").
				Placeholder(defaults.DateHeader).
				Value(&settings.DateHeader),
			huh.NewInput().
				Title("Duration column header").
				Placeholder(defaults.DurationHeader).
				Value(&settings.DurationHeader),
			huh.NewInput().
				Title("Log section header").
				Placeholder(defaults.SectionHeader).
				Value(&settings.SectionHeader),
		),
	).WithTheme(ntHuhTheme()).WithShowHelp(false)
}

func ntHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	t.Blurred.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	return t
}
