package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/confsched/internal/cli/formatter"
	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/alexanderramin/confsched/internal/settings"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type settingsLoadedMsg struct {
	err error
}

// settingsChangedMsg follows every handled settings event.
type settingsChangedMsg struct{}

// fontChosenMsg carries the font family picked in the wizard.
type fontChosenMsg struct {
	family string
}

type settingsRow int

const (
	rowFontFamily settingsRow = iota
	rowAnimation
	rowFallbackMode
	settingsRowCount
)

// settingsView renders the settings list: an accessibility section and a
// look-and-feel section inside a scrolling viewport, under a top bar that
// collapses once the list is scrolled.
type settingsView struct {
	state     *SharedState
	ctx       context.Context
	cancel    context.CancelFunc
	presenter *settings.Presenter

	hideTopBar bool
	vp         viewport.Model
	cursor     settingsRow
	loaded     bool
	err        error
	snack      snackbar

	// rowLines maps each row to its first line in the viewport content.
	rowLines [settingsRowCount]int

	backRequested bool
	fontChoice    string
}

func newSettingsView(state *SharedState, hideTopBar bool) *settingsView {
	ctx, cancel := context.WithCancel(state.Ctx)
	v := &settingsView{
		state:      state,
		ctx:        ctx,
		cancel:     cancel,
		hideTopBar: hideTopBar,
		snack:      newSnackbar(state.App.messages()),
	}
	v.presenter = settings.NewPresenter(state.App.Settings, state.App.messages(),
		settings.WithLogger(state.App.logger()),
		settings.WithBackHandler(func() { v.backRequested = true }),
	)
	v.vp = viewport.New(0, 0)
	v.vp.KeyMap = settingsViewportKeyMap()
	v.vp.MouseWheelEnabled = true
	return v
}

func (v *settingsView) ID() ViewID    { return ViewSettings }
func (v *settingsView) Title() string { return "Settings" }

func (v *settingsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "move")),
		key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "change")),
		key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
	}
}

func (v *settingsView) Init() tea.Cmd {
	p, ctx := v.presenter, v.ctx
	return tea.Batch(
		func() tea.Msg { return settingsLoadedMsg{err: p.Load(ctx)} },
		v.snack.check(),
	)
}

func (v *settingsView) Close() {
	v.cancel()
}

// HandleBack routes back navigation through the presenter.
func (v *settingsView) HandleBack() tea.Cmd {
	v.presenter.Handle(v.ctx, settings.BackRequested{})
	if !v.backRequested {
		return nil
	}
	v.backRequested = false
	return requestBack()
}

// handle applies ev on the update loop so the next key reads the new value,
// then persists it off the loop.
func (v *settingsView) handle(ev settings.Event) tea.Cmd {
	p, ctx := v.presenter, v.ctx
	p.Apply(ev)
	v.layout()
	return func() tea.Msg {
		p.Save(ctx, ev)
		return settingsChangedMsg{}
	}
}

func (v *settingsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.layout()
		return v, nil

	case settingsLoadedMsg:
		v.loaded = true
		v.err = msg.err
		v.layout()
		return v, nil

	case settingsChangedMsg:
		v.layout()
		return v, v.snack.check()

	case fontChosenMsg:
		f, err := domain.ParseFontFamily(msg.family)
		if err != nil {
			return v, nil
		}
		return v, v.handle(settings.SelectUseFontFamily{FontFamily: f})

	case snackbarExpiredMsg:
		cmd := v.snack.update(msg)
		v.layout()
		return v, cmd

	case tea.MouseMsg:
		return v, v.scroll(msg)

	case tea.KeyMsg:
		return v, tea.Batch(v.handleKey(msg), v.snack.check())
	}
	return v, nil
}

func (v *settingsView) handleKey(msg tea.KeyMsg) tea.Cmd {
	ui := v.presenter.UiState()
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
		v.layout()
		v.scrollToCursor()
	case "down", "j":
		if v.cursor < settingsRowCount-1 {
			v.cursor++
		}
		v.layout()
		v.scrollToCursor()
	case "enter", " ":
		if !v.loaded {
			return nil
		}
		switch v.cursor {
		case rowFontFamily:
			v.fontChoice = ""
			form := wizardSelectFontFamily(ui.UseFontFamily, &v.fontChoice)
			return startWizardCmd(v.state, "Font family", form, func() tea.Cmd {
				choice := v.fontChoice
				return func() tea.Msg { return fontChosenMsg{family: choice} }
			})
		case rowAnimation:
			return v.handle(settings.SelectEnableAnimation{Enabled: !ui.EnableAnimation})
		case rowFallbackMode:
			return v.handle(settings.SelectEnableFallbackMode{Enabled: !ui.EnableFallbackMode})
		}
	case "x":
		v.snack.dismiss()
		v.layout()
	default:
		return v.scroll(msg)
	}
	return nil
}

// scroll passes paging keys and the mouse wheel to the viewport.
func (v *settingsView) scroll(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	v.layout()
	return cmd
}

// scrollToCursor keeps the selected row inside the viewport.
func (v *settingsView) scrollToCursor() {
	line := v.rowLines[v.cursor]
	switch {
	case line < v.vp.YOffset:
		v.vp.SetYOffset(line)
	case line+1 >= v.vp.YOffset+v.vp.Height:
		v.vp.SetYOffset(line + 2 - v.vp.Height)
	}
}

// topBarCollapsed reports whether the list has scrolled past the top.
func (v *settingsView) topBarCollapsed() bool {
	return v.vp.YOffset > 0
}

func (v *settingsView) topBar() string {
	if v.hideTopBar {
		return ""
	}
	if v.topBarCollapsed() {
		return "  " + formatter.Bold("Settings")
	}
	return "\n" + indent(formatter.Header("Settings"), "  ") + "\n"
}

// layout rebuilds the viewport content and fits it to the space left by the
// top bar and snackbar.
func (v *settingsView) layout() {
	v.vp.Width = max(v.state.Width, 20)
	offset := v.vp.YOffset
	v.vp.SetContent(v.content())

	used := 0
	if bar := v.topBar(); bar != "" {
		used = strings.Count(bar, "\n") + 1
	}
	if v.snack.visible() {
		used += 2
	}
	v.vp.Height = max(v.state.ContentHeight()-used, 3)
	v.vp.SetYOffset(offset)
}

func (v *settingsView) content() string {
	ui := v.presenter.UiState()
	var lines []string

	row := func(r settingsRow, label, value, help string) {
		cursor := "  "
		style := formatter.StyleFg
		if r == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			style = formatter.StyleBold
		}
		v.rowLines[r] = len(lines)
		lines = append(lines,
			fmt.Sprintf("  %s%s %s", cursor, style.Render(formatter.PadRight(label, 24)), value),
			"      "+formatter.Dim(help),
		)
	}
	section := func(title string) {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "  "+formatter.StyleHeader.Render(strings.ToUpper(title)))
	}

	font := formatter.Dim("System default")
	if ui.UseFontFamily != nil {
		font = ui.UseFontFamily.DisplayName()
	}

	section("Accessibility")
	row(rowFontFamily, "Font family", font, "Display font for headings and the timetable")
	section("Look and feel")
	row(rowAnimation, "Enable animation", formatter.Toggle(ui.EnableAnimation), "Animate transitions between screens")
	row(rowFallbackMode, "Enable fallback mode", formatter.Toggle(ui.EnableFallbackMode), "Plain rendering for limited terminals")

	return strings.Join(lines, "\n")
}

func (v *settingsView) View() string {
	if !v.loaded {
		return "\n  " + formatter.Dim("Loading settings...")
	}

	var b strings.Builder
	if bar := v.topBar(); bar != "" {
		b.WriteString(bar + "\n")
	}
	if v.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n")
	}
	b.WriteString(v.vp.View())
	if v.snack.visible() {
		b.WriteString("\n\n  " + v.snack.view(v.state.Width))
	}
	return b.String()
}

// settingsViewportKeyMap leaves arrow keys to the row cursor.
func settingsViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
