package cli

import (
	"fmt"

	"github.com/alexanderramin/confsched/internal/cli/formatter"
	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/spf13/cobra"
)

func newTimetableCmd(app *App) *cobra.Command {
	var day string
	var bookmarked bool

	cmd := &cobra.Command{
		Use:     "timetable",
		Aliases: []string{"tt"},
		Short:   "Print one day of the timetable",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTimetable(cmd, app, day, bookmarked)
		},
	}

	cmd.Flags().StringVar(&day, "day", "workshop", "Day to show: workshop, day1 or day2")
	cmd.Flags().BoolVar(&bookmarked, "bookmarked", false, "Only show bookmarked sessions")
	return cmd
}

func printTimetable(cmd *cobra.Command, app *App, day string, bookmarked bool) error {
	tab, err := domain.ParseDayTab(day)
	if err != nil {
		return err
	}

	tt := app.Sessions.Timetable().ForDay(tab)
	if bookmarked {
		tt = domain.Timetable{Items: tt.BookmarkedItems(), Bookmarks: tt.Bookmarks}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatter.DayTabs(tab))
	if len(tt.Items) == 0 {
		fmt.Fprintln(out, formatter.Dim("No sessions on this day."))
		return nil
	}
	fmt.Fprint(out, formatter.FormatTimetable(tab, tt.TimeGroups()))
	return nil
}
