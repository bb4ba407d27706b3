// Package ics converts between iCalendar files and the conference timetable.
package ics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/alexanderramin/confsched/internal/domain"
)

// Non-standard properties written by ExportBookmarks so a round trip keeps
// fields iCalendar has no slot for.
const (
	propLanguage  ical.ComponentProperty = "X-CONFSCHED-LANGUAGE"
	propRoomOrder ical.ComponentProperty = "X-CONFSCHED-ROOM-ORDER"
)

// ErrTooManyDays is returned when the events span more dates than the
// conference has day tabs.
var ErrTooManyDays = errors.New("calendar spans more than three days")

type parseConfig struct {
	loc    *time.Location
	logger *slog.Logger
}

type ParseOption func(*parseConfig)

// InLocation interprets event dates in loc when assigning days. Defaults to
// each event's own zone.
func InLocation(loc *time.Location) ParseOption {
	return func(c *parseConfig) { c.loc = loc }
}

func WithLogger(l *slog.Logger) ParseOption {
	return func(c *parseConfig) { c.logger = l }
}

// ReadFile parses the calendar at path.
func ReadFile(path string, opts ...ParseOption) ([]domain.TimetableItem, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseTimetable(body, opts...)
}

// ParseTimetable turns the VEVENTs in body into timetable items. The distinct
// event dates, in ascending order, become the workshop day, day 1 and day 2.
// Events without a UID or start time are skipped. When a UID repeats, the
// later event replaces the earlier one unless only the earlier one is a
// RECURRENCE-ID override.
func ParseTimetable(body []byte, opts ...ParseOption) ([]domain.TimetableItem, error) {
	cfg := parseConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	rooms := map[string]int{}
	var items []domain.TimetableItem
	index := map[domain.TimetableItemID]int{}
	overrides := map[domain.TimetableItemID]bool{}
	for _, ve := range cal.Events() {
		item, err := parseEvent(ve, rooms)
		if err != nil {
			cfg.logger.Warn("skipping event", "error", err)
			continue
		}
		if cfg.loc != nil {
			item.StartsAt = item.StartsAt.In(cfg.loc)
			item.EndsAt = item.EndsAt.In(cfg.loc)
		}
		override := ve.GetProperty(ical.ComponentPropertyRecurrenceId) != nil

		i, dup := index[item.ID]
		if !dup {
			index[item.ID] = len(items)
			overrides[item.ID] = override
			items = append(items, item)
			continue
		}
		if overrides[item.ID] && !override {
			cfg.logger.Warn("duplicate UID, keeping override", "uid", item.ID)
			continue
		}
		cfg.logger.Warn("duplicate UID, keeping later event", "uid", item.ID)
		items[i] = item
		overrides[item.ID] = override
	}

	if err := assignDays(items); err != nil {
		return nil, err
	}
	cfg.logger.Info("calendar parsed", "events", len(items))
	return items, nil
}

func parseEvent(ve *ical.VEvent, rooms map[string]int) (domain.TimetableItem, error) {
	var item domain.TimetableItem

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return item, errors.New("missing UID")
	}
	item.ID = domain.TimetableItemID(uid.Value)

	start, err := ve.GetStartAt()
	if err != nil {
		return item, fmt.Errorf("event %s: %w", uid.Value, err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		end = start
	}
	if end.Before(start) {
		return item, fmt.Errorf("event %s ends before it starts", uid.Value)
	}
	item.StartsAt, item.EndsAt = start, end

	item.Title = propValue(ve, ical.ComponentPropertySummary)
	item.Description = propValue(ve, ical.ComponentPropertyDescription)
	item.Category = propValue(ve, ical.ComponentPropertyCategories)
	item.Language = propValue(ve, propLanguage)

	roomName := propValue(ve, ical.ComponentPropertyLocation)
	order, ok := rooms[roomName]
	if !ok {
		order = len(rooms) + 1
		rooms[roomName] = order
	}
	if v := propValue(ve, propRoomOrder); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			order = n
		}
	}
	item.Room = domain.Room{Name: roomName, SortOrder: order}

	seen := map[string]bool{}
	for _, p := range ve.GetProperties(ical.ComponentPropertyAttendee) {
		id := speakerID(p.Value)
		if seen[id] {
			continue
		}
		name := p.Value
		if cn, ok := p.ICalParameters[string(ical.ParameterCn)]; ok && len(cn) > 0 {
			name = cn[0]
		}
		name = strings.TrimPrefix(name, "mailto:")
		if name == "" {
			continue
		}
		seen[id] = true
		item.Speakers = append(item.Speakers, domain.Speaker{
			ID:   id,
			Name: name,
		})
	}
	return item, nil
}

// speakerID is stable across imports of the same attendee.
func speakerID(attendee string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(attendee)).String()
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return p.Value
	}
	return ""
}

func assignDays(items []domain.TimetableItem) error {
	var dates []string
	seen := map[string]bool{}
	for _, it := range items {
		d := it.StartsAt.Format(time.DateOnly)
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	if len(dates) > len(domain.AllDayTabs()) {
		return fmt.Errorf("%w: %d distinct dates", ErrTooManyDays, len(dates))
	}
	sort.Strings(dates)

	tabs := make(map[string]domain.DayTab, len(dates))
	for i, d := range dates {
		tabs[d] = domain.AllDayTabs()[i]
	}
	for i := range items {
		items[i].Day = tabs[items[i].StartsAt.Format(time.DateOnly)]
	}
	return nil
}
