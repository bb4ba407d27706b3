// Package sampledata holds the pre-baked conference sessions shown before a
// real schedule is imported.
package sampledata

import (
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/confsched/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleYAML []byte

type fileSchema struct {
	Rooms []roomSchema               `yaml:"rooms"`
	Days  map[string][]sessionSchema `yaml:"days"`
}

type roomSchema struct {
	Name string `yaml:"name"`
	Sort int    `yaml:"sort"`
}

type sessionSchema struct {
	ID          string          `yaml:"id"`
	Title       string          `yaml:"title"`
	StartsAt    string          `yaml:"starts_at"`
	EndsAt      string          `yaml:"ends_at"`
	Room        string          `yaml:"room"`
	Language    string          `yaml:"language"`
	Category    string          `yaml:"category"`
	Description string          `yaml:"description"`
	Speakers    []speakerSchema `yaml:"speakers"`
}

type speakerSchema struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
}

// Data is the parsed sample schedule. Each day's dataset is disjoint.
type Data struct {
	timetable domain.Timetable
	byDay     map[domain.DayTab][]domain.TimetableTimeGroupItems
}

// Parse decodes a sample schedule document.
func Parse(body []byte) (*Data, error) {
	var doc fileSchema
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decoding sample data: %w", err)
	}

	rooms := make(map[string]domain.Room, len(doc.Rooms))
	for _, r := range doc.Rooms {
		rooms[r.Name] = domain.Room{Name: r.Name, SortOrder: r.Sort}
	}

	seen := make(map[string]bool)
	var items []domain.TimetableItem
	for key, sessions := range doc.Days {
		day, err := domain.ParseDayTab(key)
		if err != nil {
			return nil, fmt.Errorf("sample data: %w", err)
		}
		for _, s := range sessions {
			if seen[s.ID] {
				return nil, fmt.Errorf("sample data: duplicate session id %q", s.ID)
			}
			seen[s.ID] = true
			item, err := s.toItem(day, rooms)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}

	tt := domain.NewTimetable(items, nil)
	byDay := make(map[domain.DayTab][]domain.TimetableTimeGroupItems, 3)
	for _, day := range domain.AllDayTabs() {
		byDay[day] = tt.ForDay(day).TimeGroups()
	}
	return &Data{timetable: tt, byDay: byDay}, nil
}

func (s sessionSchema) toItem(day domain.DayTab, rooms map[string]domain.Room) (domain.TimetableItem, error) {
	start, err := time.Parse(time.RFC3339, s.StartsAt)
	if err != nil {
		return domain.TimetableItem{}, fmt.Errorf("session %s: parsing starts_at: %w", s.ID, err)
	}
	end, err := time.Parse(time.RFC3339, s.EndsAt)
	if err != nil {
		return domain.TimetableItem{}, fmt.Errorf("session %s: parsing ends_at: %w", s.ID, err)
	}
	room, ok := rooms[s.Room]
	if !ok {
		room = domain.Room{Name: s.Room}
	}
	item := domain.TimetableItem{
		ID:          domain.TimetableItemID(s.ID),
		Title:       s.Title,
		Day:         day,
		StartsAt:    start,
		EndsAt:      end,
		Room:        room,
		Language:    s.Language,
		Category:    s.Category,
		Description: s.Description,
	}
	for _, sp := range s.Speakers {
		item.Speakers = append(item.Speakers, domain.Speaker{ID: sp.ID, Name: sp.Name, Tagline: sp.Tagline})
	}
	return item, nil
}

var (
	loadOnce sync.Once
	loaded   *Data
	loadErr  error
)

// Load returns the embedded sample schedule, parsed once.
func Load() (*Data, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(sampleYAML)
	})
	return loaded, loadErr
}

// MustLoad is Load for callers that treat a broken embed as a programming error.
func MustLoad() *Data {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

// ForDay returns a copy of the time-grouped dataset bound to the given day tab.
func (d *Data) ForDay(day domain.DayTab) []domain.TimetableTimeGroupItems {
	return domain.CloneTimeGroups(d.byDay[day])
}

// WorkshopDay, Day1 and Day2 name the three datasets directly.
func (d *Data) WorkshopDay() []domain.TimetableTimeGroupItems { return d.ForDay(domain.DayWorkshop) }
func (d *Data) Day1() []domain.TimetableTimeGroupItems        { return d.ForDay(domain.Day1) }
func (d *Data) Day2() []domain.TimetableTimeGroupItems        { return d.ForDay(domain.Day2) }

// Items returns every sample session in schedule order, used to seed an
// empty database.
func (d *Data) Items() []domain.TimetableItem {
	out := make([]domain.TimetableItem, len(d.timetable.Items))
	copy(out, d.timetable.Items)
	return out
}
