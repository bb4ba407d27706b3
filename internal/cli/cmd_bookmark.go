package cli

import (
	"fmt"

	"github.com/alexanderramin/confsched/internal/cli/formatter"
	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/spf13/cobra"
)

func newBookmarkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmark",
		Short: "Manage bookmarked sessions",
	}

	cmd.AddCommand(
		newBookmarkToggleCmd(app),
		newBookmarkListCmd(app),
	)
	return cmd
}

func newBookmarkToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip the bookmark on a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.TimetableItemID(args[0])
			err := app.Sessions.ToggleBookmark(cmd.Context(), id)
			reportToggle(app, bookmarkToggledMsg{id: id, err: err})
			if msg, ok := app.messages().Take(); ok {
				fmt.Fprintln(cmd.ErrOrStderr(), msg.Text)
			}
			if err != nil {
				return err
			}

			entry, _ := app.Sessions.TimetableItemWithBookmark(id)
			state := "removed"
			if entry.Bookmarked {
				state = "added"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Bookmark %s: %s\n",
				formatter.BookmarkMark(entry.Bookmarked), state, entry.Item.Title)
			return nil
		},
	}
}

func newBookmarkListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bookmarked sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			items := app.Sessions.Timetable().BookmarkedItems()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No bookmarks yet.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Bookmarks", formatter.FormatBookmarks(items)))
			return nil
		},
	}
}
