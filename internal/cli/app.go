package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/alexanderramin/confsched/internal/repository"
	"github.com/alexanderramin/confsched/internal/sessions"
	"github.com/alexanderramin/confsched/internal/usermessage"
)

// SessionStore is the sessions repository plus the write operations the
// CLI needs for import and scripted bookmarking.
type SessionStore interface {
	sessions.Repository
	Refresh(ctx context.Context) error
	ReplaceTimetable(ctx context.Context, items []domain.TimetableItem) error
	SetBookmark(ctx context.Context, id domain.TimetableItemID, on bool) error
}

// App holds everything commands and views need.
type App struct {
	Sessions SessionStore
	Settings repository.SettingsRepo
	Messages *usermessage.Holder
	Logger   *slog.Logger

	// HideTopBar omits the settings screen's top bar.
	HideTopBar bool

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// Now is the clock used for export timestamps.
	Now func() time.Time
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

func (a *App) messages() *usermessage.Holder {
	if a.Messages == nil {
		a.Messages = usermessage.NewHolder()
	}
	return a.Messages
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
