package cli

import (
	"context"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubView struct {
	id         ViewID
	title      string
	viewText   string
	shortHelp  []key.Binding
	initCmd    tea.Cmd
	updateCmd  tea.Cmd
	updateSeen []tea.Msg
	closed     bool
}

func (v *stubView) Init() tea.Cmd { return v.initCmd }

func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.updateSeen = append(v.updateSeen, msg)
	return v, v.updateCmd
}

func (v *stubView) View() string             { return v.viewText }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return v.shortHelp }
func (v *stubView) Title() string            { return v.title }
func (v *stubView) Close()                   { v.closed = true }

func newStubView(id ViewID, title, text string) *stubView {
	return &stubView{id: id, title: title, viewText: text}
}

// interceptingView counts back requests routed through HandleBack.
type interceptingView struct {
	*stubView
	handled int
}

func (v *interceptingView) HandleBack() tea.Cmd {
	v.handled++
	return requestBack()
}

type pingMsg struct{}

func (pingMsg) isStackMsg() {}

func newTestAppModel(t *testing.T) appModel {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return newAppModel(ctx, testApp(t))
}

func update(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	model, cmd := m.Update(msg)
	return model.(appModel), cmd
}

func TestNewAppModelStartsAtTimetable(t *testing.T) {
	m := newTestAppModel(t)

	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewTimetable, m.activeView().ID())
}

func TestAppModel_NavigationMessages(t *testing.T) {
	m := newTestAppModel(t)
	v2 := newStubView(ViewSessionDetail, "Session", "detail view")
	v3 := newStubView(ViewSearch, "Search", "search view")

	m, cmd := update(t, m, pushViewMsg{view: v2})
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, v2, m.activeView())

	m, cmd = update(t, m, replaceViewMsg{view: v3})
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, v3, m.activeView())
	assert.True(t, v2.closed, "replaced view is closed")

	m, cmd = update(t, m, popViewMsg{})
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 1)
	assert.True(t, v3.closed, "popped view is closed")
	assert.Equal(t, ViewTimetable, m.activeView().ID())
}

func TestAppModel_PopNeverRemovesRoot(t *testing.T) {
	m := newTestAppModel(t)

	m, _ = update(t, m, popViewMsg{})
	require.Len(t, m.viewStack, 1)

	_, cmd := update(t, m, backRequestedMsg{})
	assert.Nil(t, cmd, "back at the root is ignored")
}

func TestAppModel_RepeatedBackRequestsPopOnce(t *testing.T) {
	m := newTestAppModel(t)
	m, _ = update(t, m, pushViewMsg{view: newStubView(ViewSessionDetail, "A", "a")})
	m, _ = update(t, m, pushViewMsg{view: newStubView(ViewSessionDetail, "B", "b")})

	m, first := update(t, m, backRequestedMsg{})
	require.NotNil(t, first)
	m, second := update(t, m, backRequestedMsg{})
	assert.Nil(t, second, "second request while the pop is pending is dropped")

	_, ok := first().(popViewMsg)
	require.True(t, ok)
	m, _ = update(t, m, popViewMsg{})
	require.Len(t, m.viewStack, 2)

	_, again := update(t, m, backRequestedMsg{})
	assert.NotNil(t, again, "a new request is accepted once the pop lands")
}

func TestAppModel_EscUsesBackInterceptor(t *testing.T) {
	m := newTestAppModel(t)
	v := &interceptingView{stubView: newStubView(ViewSettings, "Settings", "settings")}
	m, _ = update(t, m, pushViewMsg{view: v})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, v.handled)
	_, ok := cmd().(backRequestedMsg)
	assert.True(t, ok)
}

func TestAppModel_StackMsgReachesEveryView(t *testing.T) {
	m := newTestAppModel(t)
	bottom := newStubView(ViewSessionDetail, "A", "a")
	top := newStubView(ViewSessionDetail, "B", "b")
	m.viewStack = []View{bottom, top}

	m, _ = update(t, m, pingMsg{})
	assert.Contains(t, bottom.updateSeen, tea.Msg(pingMsg{}))
	assert.Contains(t, top.updateSeen, tea.Msg(pingMsg{}))

	update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Len(t, bottom.updateSeen, 1, "keys go to the top view only")
	assert.Len(t, top.updateSeen, 2)
}

func TestAppModel_KeyHandling(t *testing.T) {
	t.Run("q quits from a plain view", func(t *testing.T) {
		m := newTestAppModel(t)
		m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
	})

	t.Run("q is typed into views that capture input", func(t *testing.T) {
		m := newTestAppModel(t)
		v := newStubView(ViewSearch, "Search", "search")
		m, _ = update(t, m, pushViewMsg{view: v})

		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		assert.False(t, m.quitting)
		require.Len(t, v.updateSeen, 1)
	})

	t.Run("ctrl+c always quits and closes views", func(t *testing.T) {
		m := newTestAppModel(t)
		v := newStubView(ViewSearch, "Search", "search")
		m, _ = update(t, m, pushViewMsg{view: v})

		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
		assert.True(t, m.quitting)
		assert.True(t, v.closed)
	})
}

func TestAppModel_WizardCompletePopsAndRunsNext(t *testing.T) {
	m := newTestAppModel(t)
	m, _ = update(t, m, pushViewMsg{view: newStubView(ViewForm, "Form", "form")})

	next := func() tea.Msg { return pingMsg{} }
	m, cmd := update(t, m, wizardCompleteMsg{nextCmd: next})
	require.Len(t, m.viewStack, 1)
	require.NotNil(t, cmd)
	assert.Equal(t, pingMsg{}, cmd())
}

func TestAppModel_ViewShowsBreadcrumbAndHints(t *testing.T) {
	m := newTestAppModel(t)
	m.state.Width, m.state.Height = 100, 30
	m, _ = update(t, m, pushViewMsg{view: newStubView(ViewSessionDetail, "Opening Keynote", "detail body")})

	out := m.View()
	assert.Contains(t, out, "confsched")
	assert.Contains(t, out, "Timetable › Opening Keynote")
	assert.Contains(t, out, "detail body")
	assert.Contains(t, out, "esc: back")
	assert.Contains(t, out, "q: quit")
}
