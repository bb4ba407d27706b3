package cli

import "context"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Ctx is cancelled when the TUI exits. Views derive their own
	// subscription contexts from it.
	Ctx context.Context

	Width  int
	Height int
}

// ContentHeight returns the rows left for view content after the header
// (title + separator) and status bar (separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
