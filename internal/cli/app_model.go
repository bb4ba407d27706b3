package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/confsched/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI. It owns the view stack
// and the back-navigation guard.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	// navigating is set while a back request is in flight; further
	// requests are dropped until the pop lands.
	navigating bool
}

func newAppModel(ctx context.Context, app *App) appModel {
	state := &SharedState{App: app, Ctx: ctx}
	return appModel{
		state:     state,
		viewStack: []View{newTimetableView(state)},
	}
}

func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// popTop removes the top view, keeping the root.
func (m *appModel) popTop() {
	if len(m.viewStack) <= 1 {
		return
	}
	top := m.viewStack[len(m.viewStack)-1]
	if c, ok := top.(closer); ok {
		c.Close()
	}
	m.viewStack = m.viewStack[:len(m.viewStack)-1]
}

// requestBack starts one back navigation unless one is already pending.
func (m *appModel) requestBack() tea.Cmd {
	if m.navigating || len(m.viewStack) <= 1 {
		return nil
	}
	m.navigating = true
	return popView()
}

// closeAll releases every view's subscriptions.
func (m *appModel) closeAll() {
	for _, v := range m.viewStack {
		if c, ok := v.(closer); ok {
			c.Close()
		}
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case backRequestedMsg:
		return m, m.requestBack()

	case popViewMsg:
		m.popTop()
		m.navigating = false
		return m, nil

	case replaceViewMsg:
		if len(m.viewStack) > 0 {
			if c, ok := m.activeView().(closer); ok {
				c.Close()
			}
			m.viewStack[len(m.viewStack)-1] = msg.view
		} else {
			m.viewStack = append(m.viewStack, msg.view)
		}
		return m, msg.view.Init()

	case wizardCompleteMsg:
		m.popTop()
		return m, msg.nextCmd

	case stackMsg:
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.QuitMsg:
		m.quitting = true
		m.closeAll()
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		m.closeAll()
		return m, tea.Quit
	}

	// Views with their own text input get every key, including q and esc.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		m.closeAll()
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		if bi, ok := m.activeView().(backInterceptor); ok && !m.navigating {
			return m, bi.HandleBack()
		}
		return m, m.requestBack()
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height so the alt-screen renderer leaves no stale lines.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("confsched")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return title + breadcrumb + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if !viewCapturesInput(m.activeView()) {
		if len(m.viewStack) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		hints = append(hints, formatter.Dim("q: quit"))
	}

	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}

// viewCapturesInput reports whether the view owns a text input and must
// receive every key.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewSearch, ViewForm:
		return true
	}
	return false
}
