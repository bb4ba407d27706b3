// Package sessions exposes the conference schedule and bookmarks to screens
// as replay-latest streams plus snapshot reads.
package sessions

import (
	"context"
	"errors"

	"github.com/alexanderramin/confsched/internal/domain"
)

var (
	// ErrNotFound is returned for an unknown session id.
	ErrNotFound = errors.New("session not found")
	// ErrStoreFailure wraps a storage error. Nothing was committed, so the
	// call may be retried.
	ErrStoreFailure = errors.New("session store failure")
)

// Repository is the read/write surface a screen needs.
type Repository interface {
	// TimetableStream yields the current timetable, then every change, until
	// ctx is done.
	TimetableStream(ctx context.Context) <-chan domain.Timetable
	// TimetableItemWithBookmarkStream yields the session and its bookmark flag
	// on every change. Nothing is emitted while the id is unknown.
	TimetableItemWithBookmarkStream(ctx context.Context, id domain.TimetableItemID) <-chan domain.TimetableItemWithBookmark
	// Timetable returns the latest known timetable without touching storage.
	Timetable() domain.Timetable
	// TimetableItemWithBookmark returns the latest known pair, or false.
	TimetableItemWithBookmark(id domain.TimetableItemID) (domain.TimetableItemWithBookmark, bool)
	ToggleBookmark(ctx context.Context, id domain.TimetableItemID) error
}
