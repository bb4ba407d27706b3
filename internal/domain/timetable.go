package domain

import (
	"slices"
	"sort"
	"time"
)

// TimetableItemID identifies a single session in the timetable.
type TimetableItemID string

type Room struct {
	Name      string
	SortOrder int
}

type Speaker struct {
	ID      string
	Name    string
	Tagline string
}

// TimetableItem is one session on the conference schedule.
type TimetableItem struct {
	ID          TimetableItemID
	Title       string
	Day         DayTab
	StartsAt    time.Time
	EndsAt      time.Time
	Room        Room
	Language    string
	Category    string
	Description string
	Speakers    []Speaker
}

// Minutes returns the scheduled length of the session.
func (i TimetableItem) Minutes() int {
	return int(i.EndsAt.Sub(i.StartsAt).Minutes())
}

// SpeakerNames returns the speaker names in listing order.
func (i TimetableItem) SpeakerNames() []string {
	names := make([]string, 0, len(i.Speakers))
	for _, s := range i.Speakers {
		names = append(names, s.Name)
	}
	return names
}

// TimetableItemWithBookmark pairs a session with the user's bookmark flag.
type TimetableItemWithBookmark struct {
	Item       TimetableItem
	Bookmarked bool
}

// TimetableTimeGroupItems groups the sessions sharing one time slot.
type TimetableTimeGroupItems struct {
	StartsAt time.Time
	EndsAt   time.Time
	Items    []TimetableItemWithBookmark
}

// CloneTimeGroups copies groups and their item slices so the copy can be
// written without touching the source.
func CloneTimeGroups(groups []TimetableTimeGroupItems) []TimetableTimeGroupItems {
	out := slices.Clone(groups)
	for i := range out {
		out[i].Items = slices.Clone(out[i].Items)
	}
	return out
}

// Timetable is the full schedule plus the set of bookmarked sessions.
// Values are treated as immutable; mutators return a copy.
type Timetable struct {
	Items     []TimetableItem
	Bookmarks map[TimetableItemID]bool
}

// NewTimetable builds a Timetable with items ordered by start time, then room.
func NewTimetable(items []TimetableItem, bookmarks map[TimetableItemID]bool) Timetable {
	sorted := make([]TimetableItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(a, b int) bool {
		if !sorted[a].StartsAt.Equal(sorted[b].StartsAt) {
			return sorted[a].StartsAt.Before(sorted[b].StartsAt)
		}
		return sorted[a].Room.SortOrder < sorted[b].Room.SortOrder
	})
	marks := make(map[TimetableItemID]bool, len(bookmarks))
	for id, on := range bookmarks {
		if on {
			marks[id] = true
		}
	}
	return Timetable{Items: sorted, Bookmarks: marks}
}

func (t Timetable) IsBookmarked(id TimetableItemID) bool {
	return t.Bookmarks[id]
}

// Find returns the session with the given id.
func (t Timetable) Find(id TimetableItemID) (TimetableItem, bool) {
	for _, item := range t.Items {
		if item.ID == id {
			return item, true
		}
	}
	return TimetableItem{}, false
}

// ItemWithBookmark returns the session paired with its bookmark flag.
func (t Timetable) ItemWithBookmark(id TimetableItemID) (TimetableItemWithBookmark, bool) {
	item, ok := t.Find(id)
	if !ok {
		return TimetableItemWithBookmark{}, false
	}
	return TimetableItemWithBookmark{Item: item, Bookmarked: t.IsBookmarked(id)}, true
}

// WithBookmark returns a copy of t with the bookmark flag for id set to on.
func (t Timetable) WithBookmark(id TimetableItemID, on bool) Timetable {
	marks := make(map[TimetableItemID]bool, len(t.Bookmarks)+1)
	for k, v := range t.Bookmarks {
		marks[k] = v
	}
	if on {
		marks[id] = true
	} else {
		delete(marks, id)
	}
	return Timetable{Items: t.Items, Bookmarks: marks}
}

// ForDay returns the sessions scheduled on the given day.
func (t Timetable) ForDay(day DayTab) Timetable {
	var items []TimetableItem
	for _, item := range t.Items {
		if item.Day == day {
			items = append(items, item)
		}
	}
	return Timetable{Items: items, Bookmarks: t.Bookmarks}
}

// BookmarkedItems returns the bookmarked sessions in schedule order.
func (t Timetable) BookmarkedItems() []TimetableItem {
	var out []TimetableItem
	for _, item := range t.Items {
		if t.IsBookmarked(item.ID) {
			out = append(out, item)
		}
	}
	return out
}

// TimeGroups groups consecutive sessions that share the same start and end.
func (t Timetable) TimeGroups() []TimetableTimeGroupItems {
	var groups []TimetableTimeGroupItems
	for _, item := range t.Items {
		entry := TimetableItemWithBookmark{Item: item, Bookmarked: t.IsBookmarked(item.ID)}
		n := len(groups)
		if n > 0 && groups[n-1].StartsAt.Equal(item.StartsAt) && groups[n-1].EndsAt.Equal(item.EndsAt) {
			groups[n-1].Items = append(groups[n-1].Items, entry)
			continue
		}
		groups = append(groups, TimetableTimeGroupItems{
			StartsAt: item.StartsAt,
			EndsAt:   item.EndsAt,
			Items:    []TimetableItemWithBookmark{entry},
		})
	}
	return groups
}
