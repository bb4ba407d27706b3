package ics

import (
	"strconv"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/alexanderramin/confsched/internal/domain"
)

// ExportBookmarks serializes the bookmarked sessions of tt as a calendar.
func ExportBookmarks(tt domain.Timetable, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//confsched//bookmarks//EN")

	for _, item := range tt.BookmarkedItems() {
		ev := cal.AddEvent(string(item.ID))
		ev.SetDtStampTime(now)
		ev.SetStartAt(item.StartsAt)
		ev.SetEndAt(item.EndsAt)
		ev.SetSummary(item.Title)
		if item.Description != "" {
			ev.SetDescription(item.Description)
		}
		if item.Room.Name != "" {
			ev.SetLocation(item.Room.Name)
			ev.SetProperty(propRoomOrder, strconv.Itoa(item.Room.SortOrder))
		}
		if item.Category != "" {
			ev.SetProperty(ical.ComponentPropertyCategories, item.Category)
		}
		if item.Language != "" {
			ev.SetProperty(propLanguage, item.Language)
		}
		for _, s := range item.Speakers {
			ev.AddProperty(ical.ComponentPropertyAttendee, "mailto:"+s.ID, ical.WithCN(s.Name))
		}
	}
	return cal.Serialize()
}
