package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/confsched/internal/domain"
)

var itemCounter atomic.Int64

// ConferenceStart is midnight of the workshop day used by fixtures.
var ConferenceStart = time.Date(2025, 9, 10, 0, 0, 0, 0, time.FixedZone("JST", 9*60*60))

// ItemOption customizes a fixture session.
type ItemOption func(*domain.TimetableItem)

func WithID(id string) ItemOption {
	return func(i *domain.TimetableItem) {
		i.ID = domain.TimetableItemID(id)
	}
}

// WithDay moves the session to the given day, keeping its time of day.
func WithDay(d domain.DayTab) ItemOption {
	return func(i *domain.TimetableItem) {
		shift := int(d) - int(i.Day)
		i.Day = d
		i.StartsAt = i.StartsAt.AddDate(0, 0, shift)
		i.EndsAt = i.EndsAt.AddDate(0, 0, shift)
	}
}

// WithSlot sets the start time (hour:minute on the session's day) and length.
func WithSlot(hour, minute, lengthMin int) ItemOption {
	return func(i *domain.TimetableItem) {
		day := ConferenceStart.AddDate(0, 0, int(i.Day))
		i.StartsAt = day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
		i.EndsAt = i.StartsAt.Add(time.Duration(lengthMin) * time.Minute)
	}
}

func WithRoom(name string, sort int) ItemOption {
	return func(i *domain.TimetableItem) {
		i.Room = domain.Room{Name: name, SortOrder: sort}
	}
}

func WithSpeakers(names ...string) ItemOption {
	return func(i *domain.TimetableItem) {
		i.Speakers = nil
		for _, n := range names {
			i.Speakers = append(i.Speakers, domain.Speaker{ID: "spk-" + n, Name: n})
		}
	}
}

func WithCategory(c string) ItemOption {
	return func(i *domain.TimetableItem) {
		i.Category = c
	}
}

// NewTestItem builds a 40-minute day-one session at 10:00 in room "Flamingo".
func NewTestItem(title string, opts ...ItemOption) domain.TimetableItem {
	n := itemCounter.Add(1)
	start := ConferenceStart.AddDate(0, 0, int(domain.Day1)).Add(10 * time.Hour)
	item := domain.TimetableItem{
		ID:          domain.TimetableItemID(fmt.Sprintf("item-%03d", n)),
		Title:       title,
		Day:         domain.Day1,
		StartsAt:    start,
		EndsAt:      start.Add(40 * time.Minute),
		Room:        domain.Room{Name: "Flamingo", SortOrder: 1},
		Language:    "ENGLISH",
		Category:    "General",
		Description: title + " description",
	}
	for _, opt := range opts {
		opt(&item)
	}
	return item
}
