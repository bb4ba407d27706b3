package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewTimetable ViewID = iota
	ViewSessionDetail
	ViewSearch
	ViewSettings
	ViewForm
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// closer is implemented by views that hold subscriptions. Close runs when
// the view leaves the stack.
type closer interface {
	Close()
}

// backInterceptor lets a view route a back request through its own
// presenter. The returned Cmd should eventually produce backRequestedMsg.
type backInterceptor interface {
	HandleBack() tea.Cmd
}

// stackMsg is delivered to every view on the stack, not just the top one.
type stackMsg interface {
	isStackMsg()
}
