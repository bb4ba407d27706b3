package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "confsched" command and registers all
// subcommands against the provided App.
//
// Run without a subcommand it opens the TUI on a terminal, or prints the
// workshop-day timetable when output is piped.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "confsched",
		Short:         "Conference timetable, bookmarks and display settings",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(cmd.Context(), app)
			}
			return printTimetable(cmd, app, "workshop", false)
		},
	}

	root.AddCommand(
		newTUICmd(app),
		newTimetableCmd(app),
		newSessionCmd(app),
		newBookmarkCmd(app),
		newSettingsCmd(app),
		newImportCmd(app),
		newExportCmd(app),
	)

	return root
}
