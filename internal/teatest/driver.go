// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and returned Cmds are run to completion one by
// one. A Cmd that does not return within the driver's timeout is abandoned:
// stream waits, snackbar timers and cursor blinks all block, while message
// factories and SQLite writes return at once.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may run.
const MaxDrainDepth = 100

// DefaultCmdTimeout is how long a Cmd may block before it is abandoned.
const DefaultCmdTimeout = 10 * time.Millisecond

// Driver is a synchronous harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.QuitMsg has been produced. The runtime
	// normally swallows it, so the driver records it itself.
	Quitting bool

	cmdTimeout time.Duration
	// Dropped counts Cmds abandoned after the timeout.
	Dropped int
}

type Option func(*Driver)

// WithSize sends a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// WithCmdTimeout changes how long a Cmd may block. Raise it for models
// whose Cmds do real I/O.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) { d.cmdTimeout = timeout }
}

// New builds a Driver. Call DrainInit to run the model's Init Cmd.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send runs msg through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

// Resize sends a new terminal size.
func (d *Driver) Resize(w, h int) {
	d.T.Helper()
	d.Send(tea.WindowSizeMsg{Width: w, Height: h})
}

// ── keys ─────────────────────────────────────────────────────────────────────

func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

// PressKey sends a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// PressKeys sends each rune of keys as its own key event.
func (d *Driver) PressKeys(keys string) {
	d.T.Helper()
	for _, r := range keys {
		d.PressKey(r)
	}
}

// Type is PressKeys for text input.
func (d *Driver) Type(s string) {
	d.T.Helper()
	d.PressKeys(s)
}

func (d *Driver) press(t tea.KeyType) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: t})
}

func (d *Driver) PressEnter()     { d.T.Helper(); d.press(tea.KeyEnter) }
func (d *Driver) PressEsc()       { d.T.Helper(); d.press(tea.KeyEsc) }
func (d *Driver) PressCtrlC()     { d.T.Helper(); d.press(tea.KeyCtrlC) }
func (d *Driver) PressUp()        { d.T.Helper(); d.press(tea.KeyUp) }
func (d *Driver) PressDown()      { d.T.Helper(); d.press(tea.KeyDown) }
func (d *Driver) PressTab()       { d.T.Helper(); d.press(tea.KeyTab) }
func (d *Driver) PressShiftTab()  { d.T.Helper(); d.press(tea.KeyShiftTab) }
func (d *Driver) PressPgDown()    { d.T.Helper(); d.press(tea.KeyPgDown) }
func (d *Driver) PressPgUp()      { d.T.Helper(); d.press(tea.KeyPgUp) }
func (d *Driver) PressSpace()     { d.T.Helper(); d.press(tea.KeySpace) }
func (d *Driver) PressBackspace() { d.T.Helper(); d.press(tea.KeyBackspace) }

// ── output ───────────────────────────────────────────────────────────────────

// View returns the rendered model.
func (d *Driver) View() string {
	return d.Model.View()
}

// Contains reports whether the rendered output contains s.
func (d *Driver) Contains(s string) bool {
	return strings.Contains(d.View(), s)
}

// RequireContains fails the test unless the output contains s.
func (d *Driver) RequireContains(s string) {
	d.T.Helper()
	if !d.Contains(s) {
		d.T.Fatalf("view does not contain %q:\n%s", s, d.View())
	}
}

// RequireNotContains fails the test if the output contains s.
func (d *Driver) RequireNotContains(s string) {
	d.T.Helper()
	if d.Contains(s) {
		d.T.Fatalf("view unexpectedly contains %q:\n%s", s, d.View())
	}
}

// ── draining ─────────────────────────────────────────────────────────────────

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg, ok := d.run(cmd)
	if !ok {
		d.Dropped++
		return
	}
	if msg == nil || isCursorBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		updated, _ := d.Model.Update(msg)
		d.Model = updated
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drain(next, depth+1)
}

// run executes cmd, giving up after the driver's timeout.
func (d *Driver) run(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(d.cmdTimeout):
		return nil, false
	}
}

// isCursorBlink matches the unexported blink messages of bubbles/cursor,
// which chain into timer Cmds.
func isCursorBlink(msg tea.Msg) bool {
	name := strings.ToLower(fmt.Sprintf("%T", msg))
	return strings.Contains(name, "blink")
}
