package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/confsched/internal/db"
	"github.com/alexanderramin/confsched/internal/domain"
)

// SQLiteBookmarkRepo stores the set of bookmarked session ids.
type SQLiteBookmarkRepo struct {
	db db.DBTX
}

func NewSQLiteBookmarkRepo(conn db.DBTX) *SQLiteBookmarkRepo {
	return &SQLiteBookmarkRepo{db: conn}
}

func (r *SQLiteBookmarkRepo) List(ctx context.Context) (map[domain.TimetableItemID]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT item_id FROM bookmarks`)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.TimetableItemID]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning bookmark row: %w", err)
		}
		out[domain.TimetableItemID(id)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookmarks: %w", err)
	}
	return out, nil
}

func (r *SQLiteBookmarkRepo) IsBookmarked(ctx context.Context, id domain.TimetableItemID) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookmarks WHERE item_id = ?`, string(id)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("reading bookmark %s: %w", id, err)
	}
	return n > 0, nil
}

// Set is idempotent: setting the current value again changes nothing.
func (r *SQLiteBookmarkRepo) Set(ctx context.Context, id domain.TimetableItemID, on bool) error {
	var err error
	if on {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO bookmarks (item_id, created_at) VALUES (?, ?) ON CONFLICT(item_id) DO NOTHING`,
			string(id), nowUTC())
	} else {
		_, err = r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE item_id = ?`, string(id))
	}
	if err != nil {
		return fmt.Errorf("setting bookmark %s: %w", id, err)
	}
	return nil
}
