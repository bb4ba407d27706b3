package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/confsched/internal/domain"
)

// ErrNotFound is returned (wrapped) when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type TimetableItemRepo interface {
	List(ctx context.Context) ([]domain.TimetableItem, error)
	GetByID(ctx context.Context, id domain.TimetableItemID) (*domain.TimetableItem, error)
	Count(ctx context.Context) (int, error)
	// ReplaceAll swaps the whole schedule. Callers should run it in a tx.
	ReplaceAll(ctx context.Context, items []domain.TimetableItem) error
}

type BookmarkRepo interface {
	List(ctx context.Context) (map[domain.TimetableItemID]bool, error)
	IsBookmarked(ctx context.Context, id domain.TimetableItemID) (bool, error)
	Set(ctx context.Context, id domain.TimetableItemID, on bool) error
}

type SettingsRepo interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, s *domain.Settings) error
}
