package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexanderramin/confsched/internal/db"
	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/alexanderramin/confsched/internal/repository"
	"github.com/alexanderramin/confsched/internal/stream"
)

// Store implements Repository on top of the SQLite repositories. Reads are
// served from the last published timetable; writes go through a unit of
// work and publish the result.
type Store struct {
	items     repository.TimetableItemRepo
	bookmarks repository.BookmarkRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
	publisher *stream.Publisher[domain.Timetable]

	// writeMu serializes bookmark writes so the last toggle wins.
	writeMu sync.Mutex
}

var _ Repository = (*Store)(nil)

// Option configures a Store.
type Option func(*storeOptions)

type storeOptions struct {
	observers []UseCaseObserver
	gauge     func(n int)
}

// WithObserver adds a use-case observer.
func WithObserver(o UseCaseObserver) Option {
	return func(opts *storeOptions) { opts.observers = append(opts.observers, o) }
}

// WithSubscriberGauge reports the number of open timetable subscriptions.
func WithSubscriberGauge(fn func(n int)) Option {
	return func(opts *storeOptions) { opts.gauge = fn }
}

func NewStore(items repository.TimetableItemRepo, bookmarks repository.BookmarkRepo, uow db.UnitOfWork, opts ...Option) *Store {
	var o storeOptions
	for _, opt := range opts {
		opt(&o)
	}
	var pubOpts []stream.Option[domain.Timetable]
	if o.gauge != nil {
		pubOpts = append(pubOpts, stream.WithSubscriberGauge[domain.Timetable](o.gauge))
	}
	return &Store{
		items:     items,
		bookmarks: bookmarks,
		uow:       uow,
		observer:  MultiObserver(o.observers...),
		publisher: stream.NewPublisher(pubOpts...),
	}
}

// Refresh reloads the timetable from storage and publishes it. It holds the
// write lock so a concurrent write cannot be overwritten by an older load.
func (s *Store) Refresh(ctx context.Context) error {
	return s.observe(ctx, "refresh", nil, func() error {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		tt, err := s.load(ctx)
		if err != nil {
			return err
		}
		s.publisher.Publish(tt)
		return nil
	})
}

// SeedIfEmpty stores items only when no schedule exists yet. Reports whether
// it seeded.
func (s *Store) SeedIfEmpty(ctx context.Context, items []domain.TimetableItem) (bool, error) {
	n, err := s.items.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	if n > 0 {
		return false, s.Refresh(ctx)
	}
	return true, s.ReplaceTimetable(ctx, items)
}

// ReplaceTimetable swaps the stored schedule atomically and publishes it.
// Bookmarks are kept, including those for sessions no longer listed.
func (s *Store) ReplaceTimetable(ctx context.Context, items []domain.TimetableItem) error {
	fields := map[string]any{"items": len(items)}
	return s.observe(ctx, "replace_timetable", fields, func() error {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()

		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteTimetableItemRepo(tx).ReplaceAll(ctx, items)
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStoreFailure, err)
		}
		tt, err := s.load(ctx)
		if err != nil {
			return err
		}
		s.publisher.Publish(tt)
		return nil
	})
}

// SetBookmark sets the bookmark flag for id. Repeating a call is harmless.
func (s *Store) SetBookmark(ctx context.Context, id domain.TimetableItemID, on bool) error {
	fields := map[string]any{"item_id": string(id), "bookmarked": on}
	return s.observe(ctx, "set_bookmark", fields, func() error {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		return s.writeBookmark(ctx, id, func(bool) bool { return on })
	})
}

// ToggleBookmark flips the stored flag for id and publishes the change.
// Unknown ids return ErrNotFound; storage errors return ErrStoreFailure.
func (s *Store) ToggleBookmark(ctx context.Context, id domain.TimetableItemID) error {
	fields := map[string]any{"item_id": string(id)}
	return s.observe(ctx, "toggle_bookmark", fields, func() error {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		return s.writeBookmark(ctx, id, func(current bool) bool { return !current })
	})
}

// writeBookmark must run with writeMu held.
func (s *Store) writeBookmark(ctx context.Context, id domain.TimetableItemID, next func(current bool) bool) error {
	var target bool
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteTimetableItemRepo(tx).GetByID(ctx, id); err != nil {
			return err
		}
		marks := repository.NewSQLiteBookmarkRepo(tx)
		current, err := marks.IsBookmarked(ctx, id)
		if err != nil {
			return err
		}
		target = next(current)
		return marks.Set(ctx, id, target)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}

	latest, ok := s.publisher.Latest()
	if !ok {
		tt, err := s.load(ctx)
		if err != nil {
			return err
		}
		s.publisher.Publish(tt)
		return nil
	}
	s.publisher.Publish(latest.WithBookmark(id, target))
	return nil
}

func (s *Store) load(ctx context.Context) (domain.Timetable, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return domain.Timetable{}, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	marks, err := s.bookmarks.List(ctx)
	if err != nil {
		return domain.Timetable{}, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	return domain.NewTimetable(items, marks), nil
}

func (s *Store) TimetableStream(ctx context.Context) <-chan domain.Timetable {
	return s.publisher.Subscribe(ctx)
}

func (s *Store) TimetableItemWithBookmarkStream(ctx context.Context, id domain.TimetableItemID) <-chan domain.TimetableItemWithBookmark {
	src := s.publisher.Subscribe(ctx)
	out := make(chan domain.TimetableItemWithBookmark)
	go func() {
		defer close(out)
		for tt := range src {
			pair, ok := tt.ItemWithBookmark(id)
			if !ok {
				continue
			}
			select {
			case out <- pair:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (s *Store) Timetable() domain.Timetable {
	tt, _ := s.publisher.Latest()
	return tt
}

func (s *Store) TimetableItemWithBookmark(id domain.TimetableItemID) (domain.TimetableItemWithBookmark, bool) {
	return s.Timetable().ItemWithBookmark(id)
}

// Close ends every open stream.
func (s *Store) Close() {
	s.publisher.Close()
}
