package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view. Views should send backRequestedMsg
// instead so repeated requests collapse into one pop.
type popViewMsg struct{}

type replaceViewMsg struct {
	view View
}

// backRequestedMsg asks the app to navigate back once.
type backRequestedMsg struct{}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel pops the wizard view, then runs nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

func requestBack() tea.Cmd {
	return func() tea.Msg { return backRequestedMsg{} }
}
