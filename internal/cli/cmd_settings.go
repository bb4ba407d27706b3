package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/confsched/internal/cli/formatter"
	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/alexanderramin/confsched/internal/settings"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change display settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
	)
	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := settings.NewPresenter(app.Settings, app.messages(), settings.WithLogger(app.logger()))
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(p.Settings()))
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <font|animation|fallback> <value>",
		Short: "Change one setting",
		Long: `Change one setting.

  font       dot_gothic16_regular or system_default
  animation  true or false
  fallback   true or false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := settingsEvent(args[0], args[1])
			if err != nil {
				return err
			}

			p := settings.NewPresenter(app.Settings, app.messages(), settings.WithLogger(app.logger()))
			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			p.Handle(cmd.Context(), ev)

			if msg, ok := app.messages().Take(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), msg.Text)
			}
			return nil
		},
	}
}

// settingsEvent maps a "settings set" key and value onto a presenter event.
func settingsEvent(name, value string) (settings.Event, error) {
	switch name {
	case "font":
		f, err := domain.ParseFontFamily(value)
		if err != nil {
			return nil, err
		}
		return settings.SelectUseFontFamily{FontFamily: f}, nil
	case "animation", "fallback":
		on, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: want true or false", name, value)
		}
		if name == "animation" {
			return settings.SelectEnableAnimation{Enabled: on}, nil
		}
		return settings.SelectEnableFallbackMode{Enabled: on}, nil
	}
	return nil, fmt.Errorf("unknown setting %q (want font, animation or fallback)", name)
}
