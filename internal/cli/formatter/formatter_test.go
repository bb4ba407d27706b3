package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

var jst = time.FixedZone("JST", 9*60*60)

func sample() domain.TimetableItem {
	start := time.Date(2025, 9, 11, 10, 0, 0, 0, jst)
	return domain.TimetableItem{
		ID:       "s-1",
		Title:    "Keynote",
		Day:      domain.Day1,
		StartsAt: start,
		EndsAt:   start.Add(40 * time.Minute),
		Room:     domain.Room{Name: "Flamingo", SortOrder: 1},
		Category: "Keynote",
		Speakers: []domain.Speaker{{ID: "a", Name: "Ada"}, {ID: "b", Name: "Grace"}},
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{40, "40m"},
		{60, "1h"},
		{90, "1h 30m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.in))
	}
}

func TestTruncateAndPad(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	got := Truncate("a very long session title", 10)
	assert.Equal(t, 10, lipgloss.Width(got))
	assert.Equal(t, "…", string([]rune(got)[len([]rune(got))-1:]))

	assert.Equal(t, 8, lipgloss.Width(PadRight("abc", 8)))
}

func TestTimeRangeUsesItemZone(t *testing.T) {
	item := sample()
	assert.Equal(t, "10:00–10:40", TimeRange(item.StartsAt, item.EndsAt))
}

func TestFormatTimetable(t *testing.T) {
	item := sample()
	groups := []domain.TimetableTimeGroupItems{{
		StartsAt: item.StartsAt,
		EndsAt:   item.EndsAt,
		Items:    []domain.TimetableItemWithBookmark{{Item: item, Bookmarked: true}},
	}}

	out := FormatTimetable(domain.Day1, groups)
	assert.Contains(t, out, "DAY 1")
	assert.Contains(t, out, "Keynote")
	assert.Contains(t, out, "★")

	assert.Contains(t, FormatTimetable(domain.Day2, nil), "No sessions.")
}

func TestFormatSessionDetail(t *testing.T) {
	out := FormatSessionDetail(domain.TimetableItemWithBookmark{Item: sample()})
	assert.Contains(t, out, "Ada, Grace")
	assert.Contains(t, out, "40m")
	assert.Contains(t, out, "☆")
}

func TestFormatSettings(t *testing.T) {
	font := domain.FontFamilyDotGothic16Regular
	out := FormatSettings(domain.Settings{UseFontFamily: &font, EnableAnimation: true})
	assert.Contains(t, out, "DotGothic16")
	assert.Contains(t, out, "[on ]")
	assert.Contains(t, out, "[off]")
}

func TestRenderTableAligns(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{{"long cell", "x"}, {"s", "y"}})
	assert.Contains(t, out, "long cell  x")
	assert.Contains(t, out, "s          y")
}
