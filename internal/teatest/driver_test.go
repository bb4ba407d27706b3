package teatest

import (
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type incMsg struct{}

type counter struct {
	n      int
	width  int
	keys   string
	closed bool
}

func (c counter) Init() tea.Cmd {
	return func() tea.Msg { return incMsg{} }
}

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case incMsg:
		c.n++
	case tea.QuitMsg:
		c.closed = true
	case tea.KeyMsg:
		switch msg.String() {
		case "+":
			return c, tea.Batch(
				func() tea.Msg { return incMsg{} },
				func() tea.Msg { return incMsg{} },
			)
		case "w":
			return c, tea.Tick(time.Hour, func(time.Time) tea.Msg { return incMsg{} })
		case "q":
			return c, tea.Quit
		default:
			c.keys += msg.String()
		}
	}
	return c, nil
}

func (c counter) View() string {
	return "count=" + strconv.Itoa(c.n)
}

func TestDriver_DrainInitAndBatch(t *testing.T) {
	d := New(t, counter{}, WithSize(80, 24))
	d.DrainInit()
	assert.Equal(t, 1, d.Model.(counter).n)
	assert.Equal(t, 80, d.Model.(counter).width)

	d.PressKey('+')
	assert.True(t, d.Contains("count=3"))
}

func TestDriver_BlockingCmdIsDropped(t *testing.T) {
	d := New(t, counter{}, WithCmdTimeout(5*time.Millisecond))
	d.PressKey('w')

	assert.Equal(t, 0, d.Model.(counter).n)
	assert.Equal(t, 1, d.Dropped)
}

func TestDriver_QuitStopsFurtherInput(t *testing.T) {
	d := New(t, counter{})
	d.PressKey('q')
	assert.True(t, d.Quitting)
	assert.True(t, d.Model.(counter).closed)

	d.PressKey('+')
	assert.Equal(t, 0, d.Model.(counter).n)
}

func TestDriver_PressKeys(t *testing.T) {
	d := New(t, counter{})
	d.PressKeys("abc")
	d.PressTab()
	assert.Equal(t, "abctab", d.Model.(counter).keys)
	d.RequireNotContains("count=1")
}
