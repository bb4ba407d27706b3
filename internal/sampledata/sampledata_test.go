package sampledata

import (
	"testing"

	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ThreeDisjointDatasets(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	seen := make(map[domain.TimetableItemID]domain.DayTab)
	for _, day := range domain.AllDayTabs() {
		groups := d.ForDay(day)
		require.NotEmpty(t, groups, "day %s", day)
		for _, g := range groups {
			for _, entry := range g.Items {
				prev, dup := seen[entry.Item.ID]
				assert.False(t, dup, "session %s appears on %s and %s", entry.Item.ID, prev, day)
				seen[entry.Item.ID] = day
				assert.Equal(t, day, entry.Item.Day)
			}
		}
	}
	assert.Len(t, d.Items(), len(seen))
}

func TestLoad_GroupsShareTimeSlot(t *testing.T) {
	d := MustLoad()

	for _, g := range d.Day1() {
		for _, entry := range g.Items {
			assert.True(t, entry.Item.StartsAt.Equal(g.StartsAt))
			assert.True(t, entry.Item.EndsAt.Equal(g.EndsAt))
		}
	}
	// Two talks run in parallel in the 10:30 slot on day one.
	require.GreaterOrEqual(t, len(d.Day1()), 2)
	assert.Len(t, d.Day1()[1].Items, 2)
}

func TestParse_RejectsUnknownDay(t *testing.T) {
	_, err := Parse([]byte("days:\n  day3:\n    - id: x\n"))
	assert.Error(t, err)
}

func TestParse_RejectsDuplicateIDs(t *testing.T) {
	body := []byte(`days:
  day1:
    - {id: a, title: A, starts_at: "2025-09-11T10:00:00+09:00", ends_at: "2025-09-11T10:40:00+09:00", room: X}
  day2:
    - {id: a, title: A, starts_at: "2025-09-12T10:00:00+09:00", ends_at: "2025-09-12T10:40:00+09:00", room: X}
`)
	_, err := Parse(body)
	assert.ErrorContains(t, err, "duplicate")
}

func TestParse_BadTimestamp(t *testing.T) {
	body := []byte(`days:
  day1:
    - {id: a, title: A, starts_at: "10:00", ends_at: "2025-09-11T10:40:00+09:00", room: X}
`)
	_, err := Parse(body)
	assert.ErrorContains(t, err, "starts_at")
}
