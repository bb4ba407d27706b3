package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/confsched/internal/ics"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.ics>",
		Short: "Replace the timetable with an iCalendar schedule",
		Long: `Replace the timetable with the events in an iCalendar file.

Bookmarks on sessions that survive the import are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := ics.ReadFile(args[0], ics.WithLogger(app.logger()))
			if err != nil {
				return err
			}
			if err := app.Sessions.ReplaceTimetable(cmd.Context(), items); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d sessions from %s\n", len(items), args[0])
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.ics>",
		Short: "Write bookmarked sessions to an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tt := app.Sessions.Timetable()
			n := len(tt.BookmarkedItems())
			if n == 0 {
				return fmt.Errorf("no bookmarked sessions to export")
			}
			body := ics.ExportBookmarks(tt, app.now())
			if err := os.WriteFile(args[0], []byte(body), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarked sessions to %s\n", n, args[0])
			return nil
		},
	}
}
