// Package timetable is the state container behind the timetable screen.
package timetable

import (
	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/alexanderramin/confsched/internal/reducer"
)

// State is what the timetable screen renders.
type State struct {
	TimetableItems []domain.TimetableTimeGroupItems
	SelectedDay    domain.DayTab

	// source overrides the reducer's datasets once DatasetsReplaced is seen.
	source Datasets
}

// Action is the closed set of inputs the reducer accepts.
type Action interface {
	isTimetableAction()
}

// OnAppear is sent when the screen becomes visible.
type OnAppear struct{}

// SelectDay is sent when the user picks a day tab.
type SelectDay struct {
	Tab domain.DayTab
}

// TimetableItemTapped is sent when the user opens a session. Navigation is
// the host's job; the reducer leaves state alone.
type TimetableItemTapped struct {
	ID domain.TimetableItemID
}

// SearchTapped is sent when the user opens search.
type SearchTapped struct{}

// DatasetsReplaced is sent when a new schedule snapshot arrives. The selected
// day is kept and its list is re-read from the new datasets.
type DatasetsReplaced struct {
	Datasets Datasets
}

func (OnAppear) isTimetableAction()            {}
func (SelectDay) isTimetableAction()           {}
func (TimetableItemTapped) isTimetableAction() {}
func (SearchTapped) isTimetableAction()        {}
func (DatasetsReplaced) isTimetableAction()    {}

// Datasets supplies the time-grouped sessions for each day.
type Datasets interface {
	ForDay(day domain.DayTab) []domain.TimetableTimeGroupItems
}

// Reducer maps (State, Action) to the next State. The datasets given to
// NewReducer apply until a DatasetsReplaced action carries newer ones.
type Reducer struct {
	datasets Datasets
}

func NewReducer(datasets Datasets) Reducer {
	return Reducer{datasets: datasets}
}

// Reduce is pure: every selection replaces the list wholesale.
func (r Reducer) Reduce(state State, action Action) State {
	switch a := action.(type) {
	case OnAppear:
		state.SelectedDay = domain.DayWorkshop
		state.TimetableItems = r.source(state).ForDay(domain.DayWorkshop)
	case SelectDay:
		switch a.Tab {
		case domain.DayWorkshop, domain.Day1, domain.Day2:
			state.SelectedDay = a.Tab
			state.TimetableItems = r.source(state).ForDay(a.Tab)
		}
	case DatasetsReplaced:
		if a.Datasets == nil {
			break
		}
		state.source = a.Datasets
		state.TimetableItems = a.Datasets.ForDay(state.SelectedDay)
	case TimetableItemTapped, SearchTapped:
	}
	return state
}

func (r Reducer) source(state State) Datasets {
	if state.source != nil {
		return state.source
	}
	return r.datasets
}

// Store is the reducer store type used by the timetable screen.
type Store = reducer.Store[State, Action]

// NewStore creates a store over the given datasets, starting from initial.
func NewStore(datasets Datasets, initial State) *Store {
	return reducer.NewStore[State, Action](initial, NewReducer(datasets).Reduce)
}

// TimetableDatasets adapts a live Timetable snapshot into per-day datasets.
type TimetableDatasets struct {
	byDay map[domain.DayTab][]domain.TimetableTimeGroupItems
}

func DatasetsFrom(tt domain.Timetable) TimetableDatasets {
	byDay := make(map[domain.DayTab][]domain.TimetableTimeGroupItems, 3)
	for _, day := range domain.AllDayTabs() {
		byDay[day] = tt.ForDay(day).TimeGroups()
	}
	return TimetableDatasets{byDay: byDay}
}

// ForDay returns a copy, so callers may edit the result.
func (d TimetableDatasets) ForDay(day domain.DayTab) []domain.TimetableTimeGroupItems {
	return domain.CloneTimeGroups(d.byDay[day])
}
