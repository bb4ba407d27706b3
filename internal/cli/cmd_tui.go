package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	var hideTopBar bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive timetable",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("hide-top-bar") {
				app.HideTopBar = hideTopBar
			}
			return runTUI(cmd.Context(), app)
		},
	}

	cmd.Flags().BoolVar(&hideTopBar, "hide-top-bar", false, "Hide the settings screen's top bar")
	return cmd
}

// runTUI runs the bubbletea program until the user quits or ctx is done.
func runTUI(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newAppModel(ctx, app), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
