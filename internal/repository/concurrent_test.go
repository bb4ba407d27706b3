package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/confsched/internal/db"
	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/alexanderramin/confsched/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB opens a file-backed database so every pooled
// connection sees the same data under WAL.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

func schedule(n int, prefix string) []domain.TimetableItem {
	items := make([]domain.TimetableItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, testutil.NewTestItem(fmt.Sprintf("%s %d", prefix, i),
			testutil.WithID(fmt.Sprintf("s-%02d", i)),
			testutil.WithSlot(9+i%8, 0, 40),
			testutil.WithSpeakers("Speaker "+prefix)))
	}
	return items
}

// Readers must see either the old or the new schedule, never a mix.
func TestConcurrentAccess_ReadDuringReplace(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	uow := db.NewSQLiteUnitOfWork(database)
	repo := NewSQLiteTimetableItemRepo(database)

	require.NoError(t, repo.ReplaceAll(ctx, schedule(10, "old")))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for round := 0; round < 10; round++ {
			prefix := "old"
			if round%2 == 0 {
				prefix = "new"
			}
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				return NewSQLiteTimetableItemRepo(tx).ReplaceAll(ctx, schedule(10, prefix))
			})
			if err != nil {
				t.Errorf("writer round %d: %v", round, err)
				return
			}
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				items, err := repo.List(ctx)
				if err != nil {
					t.Errorf("reader %d: list: %v", reader, err)
					return
				}
				if len(items) != 10 {
					t.Errorf("reader %d: saw %d items", reader, len(items))
					return
				}
				prefix := items[0].Title[:3]
				for _, it := range items {
					if it.Title[:3] != prefix {
						t.Errorf("reader %d: mixed schedule %q and %q", reader, prefix, it.Title)
						return
					}
				}
			}
		}(r)
	}

	wg.Wait()
}

func TestConcurrentAccess_BookmarkWrites(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteBookmarkRepo(database)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(writer int) {
			defer wg.Done()
			id := domain.TimetableItemID(fmt.Sprintf("s-%02d", writer))
			for i := 0; i < 5; i++ {
				if err := repo.Set(ctx, id, i%2 == 0); err != nil {
					t.Errorf("writer %d: set: %v", writer, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	marks, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, marks, 8, "each writer ends on a set bookmark")
}
