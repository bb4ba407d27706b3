package cli

import (
	"fmt"

	"github.com/alexanderramin/confsched/internal/cli/formatter"
	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect sessions",
	}

	cmd.AddCommand(newSessionShowCmd(app))
	return cmd
}

func newSessionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a session with its bookmark state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, ok := app.Sessions.TimetableItemWithBookmark(domain.TimetableItemID(args[0]))
			if !ok {
				return fmt.Errorf("session %q not found", args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox(entry.Item.Title, formatter.FormatSessionDetail(entry)))
			return nil
		},
	}
}
