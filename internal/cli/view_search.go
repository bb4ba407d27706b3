package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/confsched/internal/cli/formatter"
	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const searchLimit = 20

// searchView filters the current timetable snapshot by title, speaker,
// category or room.
type searchView struct {
	state  *SharedState
	input  textinput.Model
	cursor int
}

func newSearchView(state *SharedState) *searchView {
	ti := textinput.New()
	ti.Placeholder = "title, speaker, category, room"
	ti.Prompt = formatter.StyleYellow.Render("/ ")
	ti.CharLimit = 80
	ti.Focus()
	return &searchView{state: state, input: ti}
}

func (v *searchView) ID() ViewID    { return ViewSearch }
func (v *searchView) Title() string { return "Search" }

func (v *searchView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "move")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *searchView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *searchView) results() []domain.TimetableItemWithBookmark {
	tt := v.state.App.Sessions.Timetable()
	q := strings.ToLower(strings.TrimSpace(v.input.Value()))
	var out []domain.TimetableItemWithBookmark
	for _, it := range tt.Items {
		if q != "" && !matches(it, q) {
			continue
		}
		out = append(out, domain.TimetableItemWithBookmark{Item: it, Bookmarked: tt.IsBookmarked(it.ID)})
		if len(out) == searchLimit {
			break
		}
	}
	return out
}

func matches(it domain.TimetableItem, q string) bool {
	fields := append([]string{it.Title, it.Category, it.Room.Name}, it.SpeakerNames()...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func (v *searchView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch keyMsg.Type {
	case tea.KeyEsc:
		return v, requestBack()
	case tea.KeyUp:
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil
	case tea.KeyDown:
		if v.cursor < len(v.results())-1 {
			v.cursor++
		}
		return v, nil
	case tea.KeyEnter:
		res := v.results()
		if v.cursor < len(res) {
			return v, replaceView(newSessionDetailView(v.state, res[v.cursor].Item.ID))
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.cursor = 0
	return v, cmd
}

func (v *searchView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + v.input.View() + "\n\n")

	res := v.results()
	if len(res) == 0 {
		b.WriteString("  " + formatter.Dim("No matching sessions.") + "\n")
		return b.String()
	}
	for i, entry := range res {
		cursor := "  "
		title := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			title = formatter.StyleBold
		}
		b.WriteString(fmt.Sprintf("  %s%s %s  %s  %s\n",
			cursor,
			formatter.BookmarkMark(entry.Bookmarked),
			title.Render(formatter.PadRight(entry.Item.Title, 40)),
			formatter.Dim(entry.Item.Day.Label()),
			formatter.Dim(formatter.TimeRange(entry.Item.StartsAt, entry.Item.EndsAt)),
		))
	}
	return b.String()
}
