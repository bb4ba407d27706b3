package cli

import (
	"time"

	"github.com/alexanderramin/confsched/internal/cli/formatter"
	"github.com/alexanderramin/confsched/internal/usermessage"
	tea "github.com/charmbracelet/bubbletea"
)

const snackbarTimeout = 4 * time.Second

// snackbarExpiredMsg hides the message with the given id.
type snackbarExpiredMsg struct {
	id string
}

func (snackbarExpiredMsg) isStackMsg() {}

// snackbar shows the holder's pending message. A message is acknowledged
// as soon as it is picked up, so it is displayed exactly once even when
// several views share the holder.
type snackbar struct {
	holder  *usermessage.Holder
	current *usermessage.Message
	timeout time.Duration
}

func newSnackbar(holder *usermessage.Holder) snackbar {
	return snackbar{holder: holder, timeout: snackbarTimeout}
}

// check picks up a pending message if nothing is showing and schedules its
// dismissal.
func (s *snackbar) check() tea.Cmd {
	if s.current != nil || s.holder == nil {
		return nil
	}
	msg, ok := s.holder.Current()
	if !ok {
		return nil
	}
	s.holder.MessageShown(msg.ID)
	s.current = &msg
	id := msg.ID
	return tea.Tick(s.timeout, func(time.Time) tea.Msg {
		return snackbarExpiredMsg{id: id}
	})
}

// update handles expiry and then looks for the next message.
func (s *snackbar) update(msg tea.Msg) tea.Cmd {
	if exp, ok := msg.(snackbarExpiredMsg); ok && s.current != nil && s.current.ID == exp.id {
		s.current = nil
	}
	return s.check()
}

// dismiss hides the current message early.
func (s *snackbar) dismiss() {
	s.current = nil
}

func (s *snackbar) visible() bool {
	return s.current != nil
}

func (s *snackbar) view(width int) string {
	if s.current == nil {
		return ""
	}
	text := formatter.Truncate(s.current.Text, max(width-4, 10))
	return formatter.StyleSnackbar.Render(text)
}
