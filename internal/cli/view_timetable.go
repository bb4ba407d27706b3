package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/confsched/internal/cli/formatter"
	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/alexanderramin/confsched/internal/sessions"
	"github.com/alexanderramin/confsched/internal/timetable"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// bookmarkToggledMsg reports the outcome of a toggle to every view so each
// can re-read the snapshot.
type bookmarkToggledMsg struct {
	id  domain.TimetableItemID
	err error
}

func (bookmarkToggledMsg) isStackMsg() {}

// toggleBookmarkCmd flips the bookmark off the update loop.
func toggleBookmarkCmd(ctx context.Context, app *App, id domain.TimetableItemID) tea.Cmd {
	return func() tea.Msg {
		err := app.Sessions.ToggleBookmark(ctx, id)
		return bookmarkToggledMsg{id: id, err: err}
	}
}

// reportToggle turns a failed toggle into a user message. Only the view
// that started the toggle calls it.
func reportToggle(app *App, msg bookmarkToggledMsg) {
	if msg.err == nil {
		return
	}
	app.logger().Warn("bookmark toggle failed", "item_id", string(msg.id), "error", msg.err)
	if errors.Is(msg.err, sessions.ErrNotFound) {
		app.messages().Emit("That session is no longer on the schedule.")
		return
	}
	app.messages().Emit("Could not update bookmark. Try again.")
}

// timetableView lists one day of sessions grouped by time slot.
type timetableView struct {
	state  *SharedState
	ctx    context.Context
	cancel context.CancelFunc

	store       *timetable.Store
	unsubscribe func()
	sub         *streamSub[domain.Timetable]
	cursor      int
	snack       snackbar

	// pending is the id of a toggle started from this view.
	pending domain.TimetableItemID
}

func newTimetableView(state *SharedState) *timetableView {
	ctx, cancel := context.WithCancel(state.Ctx)
	v := &timetableView{
		state:  state,
		ctx:    ctx,
		cancel: cancel,
		snack:  newSnackbar(state.App.messages()),
	}
	v.store = timetable.NewStore(timetable.DatasetsFrom(state.App.Sessions.Timetable()), timetable.State{})
	v.unsubscribe = v.store.Subscribe(v.clampCursor)
	v.sub = newStreamSub(ctx, state.App.Sessions.TimetableStream)
	return v
}

func (v *timetableView) ID() ViewID    { return ViewTimetable }
func (v *timetableView) Title() string { return "Timetable" }

func (v *timetableView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3/tab", "day")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bookmark")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
	}
}

func (v *timetableView) Init() tea.Cmd {
	v.store.Dispatch(timetable.OnAppear{})
	return tea.Batch(v.sub.start(), v.snack.check())
}

func (v *timetableView) Close() {
	v.unsubscribe()
	v.cancel()
}

// reload hands a new snapshot to the store; the selected day is kept.
func (v *timetableView) reload(tt domain.Timetable) {
	v.store.Dispatch(timetable.DatasetsReplaced{Datasets: timetable.DatasetsFrom(tt)})
}

func (v *timetableView) rows() []domain.TimetableItemWithBookmark {
	return flattenGroups(v.store.State().TimetableItems)
}

func flattenGroups(groups []domain.TimetableTimeGroupItems) []domain.TimetableItemWithBookmark {
	var out []domain.TimetableItemWithBookmark
	for _, g := range groups {
		out = append(out, g.Items...)
	}
	return out
}

// clampCursor observes the store and keeps the cursor on a row.
func (v *timetableView) clampCursor(s timetable.State) {
	n := len(flattenGroups(s.TimetableItems))
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *timetableView) selectDay(d domain.DayTab) {
	if d == v.store.State().SelectedDay {
		return
	}
	v.store.Dispatch(timetable.SelectDay{Tab: d})
	v.cursor = 0
}

func (v *timetableView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case streamValueMsg[domain.Timetable]:
		if msg.sub != v.sub {
			return v, nil
		}
		v.reload(msg.value)
		return v, tea.Batch(v.sub.received(), v.snack.check())

	case streamClosedMsg[domain.Timetable]:
		if msg.sub != v.sub {
			return v, nil
		}
		v.state.App.logger().Warn("timetable stream closed, resubscribing", "attempt", v.sub.attempt)
		return v, v.sub.closed()

	case streamRetryMsg[domain.Timetable]:
		if msg.sub != v.sub {
			return v, nil
		}
		return v, v.sub.retry()

	case bookmarkToggledMsg:
		if msg.id == v.pending {
			reportToggle(v.state.App, msg)
			v.pending = ""
		}
		v.reload(v.state.App.Sessions.Timetable())
		return v, v.snack.check()

	case snackbarExpiredMsg:
		return v, v.snack.update(msg)

	case tea.KeyMsg:
		cmd := v.handleKey(msg)
		return v, tea.Batch(cmd, v.snack.check())
	}
	return v, nil
}

func (v *timetableView) handleKey(msg tea.KeyMsg) tea.Cmd {
	rows := v.rows()
	day := v.store.State().SelectedDay
	tabs := domain.AllDayTabs()

	switch msg.String() {
	case "1", "2", "3":
		v.selectDay(tabs[int(msg.String()[0]-'1')])
	case "tab", "right", "l":
		v.selectDay(tabs[(int(day)+1)%len(tabs)])
	case "shift+tab", "left", "h":
		v.selectDay(tabs[(int(day)+len(tabs)-1)%len(tabs)])
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(rows)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(rows) {
			id := rows[v.cursor].Item.ID
			v.store.Dispatch(timetable.TimetableItemTapped{ID: id})
			return pushView(newSessionDetailView(v.state, id))
		}
	case "b":
		if v.cursor < len(rows) {
			v.pending = rows[v.cursor].Item.ID
			return toggleBookmarkCmd(v.ctx, v.state.App, v.pending)
		}
	case "/":
		v.store.Dispatch(timetable.SearchTapped{})
		return pushView(newSearchView(v.state))
	case "s":
		return pushView(newSettingsView(v.state, v.state.App.HideTopBar))
	case "x":
		v.snack.dismiss()
	}
	return nil
}

func (v *timetableView) View() string {
	st := v.store.State()

	var lines []string
	cursorLine := 0
	row := 0
	for _, g := range st.TimetableItems {
		lines = append(lines, "", "  "+formatter.StyleBlue.Render(formatter.TimeRange(g.StartsAt, g.EndsAt)))
		for _, entry := range g.Items {
			cursor := "  "
			title := formatter.StyleFg
			if row == v.cursor {
				cursor = formatter.StyleGreen.Render("▸ ")
				title = formatter.StyleBold
				cursorLine = len(lines)
			}
			lines = append(lines, fmt.Sprintf("  %s%s %s  %s",
				cursor,
				formatter.BookmarkMark(entry.Bookmarked),
				title.Render(formatter.PadRight(entry.Item.Title, 44)),
				formatter.Dim(entry.Item.Room.Name),
			))
			row++
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "", "  "+formatter.Dim("No sessions on this day."))
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.DayTabs(st.SelectedDay) + "\n")

	height := v.state.ContentHeight() - 2
	if v.snack.visible() {
		height -= 2
	}
	b.WriteString(strings.Join(window(lines, cursorLine, height), "\n"))

	if v.snack.visible() {
		b.WriteString("\n\n  " + v.snack.view(v.state.Width))
	}
	return b.String()
}

// window returns at most height lines of lines, keeping focus visible.
func window(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := focus - height/2
	start = max(0, min(start, len(lines)-height))
	return lines[start : start+height]
}
