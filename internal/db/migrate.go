package db

import (
	"database/sql"
	"fmt"
	"strings"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS timetable_items (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		day         INTEGER NOT NULL CHECK(day IN (0, 1, 2)),
		starts_at   TEXT NOT NULL,
		ends_at     TEXT NOT NULL,
		room_name   TEXT NOT NULL DEFAULT '',
		room_sort   INTEGER NOT NULL DEFAULT 0,
		language    TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_timetable_items_day ON timetable_items(day, starts_at)`,

	`CREATE TABLE IF NOT EXISTS speakers (
		id      TEXT PRIMARY KEY,
		name    TEXT NOT NULL,
		tagline TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS timetable_item_speakers (
		item_id     TEXT NOT NULL REFERENCES timetable_items(id) ON DELETE CASCADE,
		speaker_id  TEXT NOT NULL REFERENCES speakers(id) ON DELETE CASCADE,
		order_index INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (item_id, speaker_id)
	)`,

	// Bookmarks outlive schedule re-imports, so no foreign key to items.
	`CREATE TABLE IF NOT EXISTS bookmarks (
		item_id    TEXT PRIMARY KEY,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS settings (
		id                   TEXT PRIMARY KEY CHECK(id = 'default'),
		font_family          TEXT,
		enable_animation     INTEGER NOT NULL DEFAULT 1,
		enable_fallback_mode INTEGER NOT NULL DEFAULT 0,
		updated_at           TEXT NOT NULL
	)`,
}

// Migrate applies every schema statement. Statements are idempotent so the
// whole list runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
