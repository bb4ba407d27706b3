package cli

import (
	"context"

	"github.com/alexanderramin/confsched/internal/cli/formatter"
	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// sessionDetailView shows one session and follows its bookmark state.
type sessionDetailView struct {
	state  *SharedState
	ctx    context.Context
	cancel context.CancelFunc

	id      domain.TimetableItemID
	entry   domain.TimetableItemWithBookmark
	found   bool
	sub     *streamSub[domain.TimetableItemWithBookmark]
	snack   snackbar
	pending bool
}

func newSessionDetailView(state *SharedState, id domain.TimetableItemID) *sessionDetailView {
	ctx, cancel := context.WithCancel(state.Ctx)
	v := &sessionDetailView{
		state:  state,
		ctx:    ctx,
		cancel: cancel,
		id:     id,
		snack:  newSnackbar(state.App.messages()),
	}
	v.entry, v.found = state.App.Sessions.TimetableItemWithBookmark(id)
	v.sub = newStreamSub(ctx, func(ctx context.Context) <-chan domain.TimetableItemWithBookmark {
		return state.App.Sessions.TimetableItemWithBookmarkStream(ctx, id)
	})
	return v
}

func (v *sessionDetailView) ID() ViewID { return ViewSessionDetail }

func (v *sessionDetailView) Title() string {
	if !v.found {
		return "Session"
	}
	return formatter.Truncate(v.entry.Item.Title, 32)
}

func (v *sessionDetailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bookmark")),
	}
}

func (v *sessionDetailView) Init() tea.Cmd {
	return tea.Batch(v.sub.start(), v.snack.check())
}

func (v *sessionDetailView) Close() {
	v.cancel()
}

func (v *sessionDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case streamValueMsg[domain.TimetableItemWithBookmark]:
		if msg.sub != v.sub {
			return v, nil
		}
		v.entry, v.found = msg.value, true
		return v, v.sub.received()

	case streamClosedMsg[domain.TimetableItemWithBookmark]:
		if msg.sub != v.sub {
			return v, nil
		}
		return v, v.sub.closed()

	case streamRetryMsg[domain.TimetableItemWithBookmark]:
		if msg.sub != v.sub {
			return v, nil
		}
		return v, v.sub.retry()

	case bookmarkToggledMsg:
		if msg.id != v.id {
			return v, nil
		}
		if v.pending {
			reportToggle(v.state.App, msg)
			v.pending = false
		}
		v.entry, v.found = v.state.App.Sessions.TimetableItemWithBookmark(v.id)
		return v, v.snack.check()

	case snackbarExpiredMsg:
		return v, v.snack.update(msg)

	case tea.KeyMsg:
		if msg.String() == "b" && v.found {
			v.pending = true
			return v, toggleBookmarkCmd(v.ctx, v.state.App, v.id)
		}
		return v, v.snack.check()
	}
	return v, nil
}

func (v *sessionDetailView) View() string {
	if !v.found {
		return "\n  " + formatter.StyleRed.Render("Session "+string(v.id)+" is not on the schedule.")
	}
	out := "\n" + formatter.RenderBox("", formatter.FormatSessionDetail(v.entry))
	if v.snack.visible() {
		out += "\n\n  " + v.snack.view(v.state.Width)
	}
	return out
}
