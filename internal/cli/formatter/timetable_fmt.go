package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/confsched/internal/domain"
)

// DayTabs renders the tab strip with selected highlighted.
func DayTabs(selected domain.DayTab) string {
	tabs := make([]string, 0, 3)
	for i, d := range domain.AllDayTabs() {
		label := fmt.Sprintf("%d %s", i+1, d.Label())
		if d == selected {
			tabs = append(tabs, StyleTabActive.Render(label))
		} else {
			tabs = append(tabs, StyleTabInactive.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

// FormatTimetable renders time groups for non-interactive output.
func FormatTimetable(day domain.DayTab, groups []domain.TimetableTimeGroupItems) string {
	var b strings.Builder
	b.WriteString(Header(day.Label()))
	b.WriteString("\n")
	if len(groups) == 0 {
		b.WriteString(Dim("No sessions.") + "\n")
		return b.String()
	}
	for _, g := range groups {
		b.WriteString("\n" + StyleBlue.Render(TimeRange(g.StartsAt, g.EndsAt)) + "\n")
		for _, entry := range g.Items {
			b.WriteString(fmt.Sprintf("  %s %s  %s  %s\n",
				BookmarkMark(entry.Bookmarked),
				entry.Item.Title,
				Dim(entry.Item.Room.Name),
				Dim(string(entry.Item.ID)),
			))
		}
	}
	return b.String()
}

// FormatSessionDetail renders a single session with its bookmark state.
func FormatSessionDetail(entry domain.TimetableItemWithBookmark) string {
	item := entry.Item
	var b strings.Builder
	b.WriteString(StyleBold.Render(item.Title) + " " + BookmarkMark(entry.Bookmarked) + "\n\n")

	rows := [][2]string{
		{"Day", item.Day.Label()},
		{"Time", TimeRange(item.StartsAt, item.EndsAt) + " (" + FormatMinutes(item.Minutes()) + ")"},
		{"Room", item.Room.Name},
	}
	if item.Language != "" {
		rows = append(rows, [2]string{"Language", item.Language})
	}
	if item.Category != "" {
		rows = append(rows, [2]string{"Category", item.Category})
	}
	if names := item.SpeakerNames(); len(names) > 0 {
		rows = append(rows, [2]string{"Speakers", strings.Join(names, ", ")})
	}
	for _, r := range rows {
		b.WriteString(Dim(PadRight(r[0], 10)) + r[1] + "\n")
	}
	if item.Description != "" {
		b.WriteString("\n" + item.Description + "\n")
	}
	return b.String()
}

// FormatBookmarks lists bookmarked sessions as a table.
func FormatBookmarks(items []domain.TimetableItem) string {
	if len(items) == 0 {
		return Dim("No bookmarks yet.") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Day.Label(),
			TimeRange(it.StartsAt, it.EndsAt),
			it.Title,
			it.Room.Name,
			string(it.ID),
		})
	}
	return RenderTable([]string{"Day", "Time", "Title", "Room", "ID"}, rows)
}

// FormatSettings renders the stored settings.
func FormatSettings(s domain.Settings) string {
	font := Dim("(default)")
	if s.UseFontFamily != nil {
		font = s.UseFontFamily.DisplayName()
	}
	return RenderTable([]string{"Setting", "Value"}, [][]string{
		{"font", font},
		{"animation", Toggle(s.EnableAnimation)},
		{"fallback", Toggle(s.EnableFallbackMode)},
	})
}
