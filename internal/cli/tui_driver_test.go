package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/confsched/internal/teatest"
)

// tuiCmdTimeout covers SQLite writes issued from view Cmds.
const tuiCmdTimeout = 100 * time.Millisecond

// TestDriver wraps teatest.Driver with access to the appModel's view stack.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for app at 120x40 and drains Init.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	m := newAppModel(ctx, app)
	d := teatest.New(t, m, teatest.WithSize(120, 40), teatest.WithCmdTimeout(tuiCmdTimeout))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveView returns the top view on the stack.
func (d *TestDriver) ActiveView() View {
	m := d.appModel()
	return m.activeView()
}

// ActiveViewID returns the ViewID of the top view, or -1 for an empty stack.
func (d *TestDriver) ActiveViewID() ViewID {
	v := d.ActiveView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// ViewStackIDs returns the stack bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting checks both the model flag and the driver's QuitMsg record.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// Timetable returns the root timetable view.
func (d *TestDriver) Timetable() *timetableView {
	return d.appModel().viewStack[0].(*timetableView)
}
