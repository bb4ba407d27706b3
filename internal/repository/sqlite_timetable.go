package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/confsched/internal/db"
	"github.com/alexanderramin/confsched/internal/domain"
)

// SQLiteTimetableItemRepo implements TimetableItemRepo using SQLite.
type SQLiteTimetableItemRepo struct {
	db db.DBTX
}

func NewSQLiteTimetableItemRepo(conn db.DBTX) *SQLiteTimetableItemRepo {
	return &SQLiteTimetableItemRepo{db: conn}
}

const itemColumns = `id, title, day, starts_at, ends_at, room_name, room_sort, language, category, description`

func (r *SQLiteTimetableItemRepo) List(ctx context.Context) ([]domain.TimetableItem, error) {
	query := `SELECT ` + itemColumns + ` FROM timetable_items ORDER BY starts_at, room_sort, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing timetable items: %w", err)
	}
	items, err := r.scanItems(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	speakers, err := r.speakersByItem(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Speakers = speakers[items[i].ID]
	}
	return items, nil
}

func (r *SQLiteTimetableItemRepo) GetByID(ctx context.Context, id domain.TimetableItemID) (*domain.TimetableItem, error) {
	query := `SELECT ` + itemColumns + ` FROM timetable_items WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, string(id))

	var raw itemRow
	if err := raw.scan(row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("timetable item %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning timetable item: %w", err)
	}
	item, err := raw.toDomain()
	if err != nil {
		return nil, err
	}

	speakers, err := r.speakersFor(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Speakers = speakers
	return &item, nil
}

func (r *SQLiteTimetableItemRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM timetable_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting timetable items: %w", err)
	}
	return n, nil
}

func (r *SQLiteTimetableItemRepo) ReplaceAll(ctx context.Context, items []domain.TimetableItem) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM timetable_items`); err != nil {
		return fmt.Errorf("clearing timetable items: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM speakers`); err != nil {
		return fmt.Errorf("clearing speakers: %w", err)
	}

	for _, item := range items {
		_, err := r.db.ExecContext(ctx, `INSERT INTO timetable_items (`+itemColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(item.ID),
			item.Title,
			int(item.Day),
			formatTime(item.StartsAt),
			formatTime(item.EndsAt),
			item.Room.Name,
			item.Room.SortOrder,
			item.Language,
			item.Category,
			item.Description,
		)
		if err != nil {
			return fmt.Errorf("inserting timetable item %s: %w", item.ID, err)
		}

		for i, sp := range item.Speakers {
			if _, err := r.db.ExecContext(ctx,
				`INSERT INTO speakers (id, name, tagline) VALUES (?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET name = excluded.name, tagline = excluded.tagline`,
				sp.ID, sp.Name, sp.Tagline,
			); err != nil {
				return fmt.Errorf("upserting speaker %s: %w", sp.ID, err)
			}
			if _, err := r.db.ExecContext(ctx,
				`INSERT INTO timetable_item_speakers (item_id, speaker_id, order_index) VALUES (?, ?, ?)
				ON CONFLICT(item_id, speaker_id) DO NOTHING`,
				string(item.ID), sp.ID, i,
			); err != nil {
				return fmt.Errorf("linking speaker %s to %s: %w", sp.ID, item.ID, err)
			}
		}
	}
	return nil
}

func (r *SQLiteTimetableItemRepo) speakersByItem(ctx context.Context) (map[domain.TimetableItemID][]domain.Speaker, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT l.item_id, s.id, s.name, s.tagline
		FROM timetable_item_speakers l
		JOIN speakers s ON s.id = l.speaker_id
		ORDER BY l.item_id, l.order_index`)
	if err != nil {
		return nil, fmt.Errorf("listing speakers: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.TimetableItemID][]domain.Speaker)
	for rows.Next() {
		var itemID string
		var sp domain.Speaker
		if err := rows.Scan(&itemID, &sp.ID, &sp.Name, &sp.Tagline); err != nil {
			return nil, fmt.Errorf("scanning speaker row: %w", err)
		}
		id := domain.TimetableItemID(itemID)
		out[id] = append(out[id], sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating speakers: %w", err)
	}
	return out, nil
}

func (r *SQLiteTimetableItemRepo) speakersFor(ctx context.Context, id domain.TimetableItemID) ([]domain.Speaker, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT s.id, s.name, s.tagline
		FROM timetable_item_speakers l
		JOIN speakers s ON s.id = l.speaker_id
		WHERE l.item_id = ?
		ORDER BY l.order_index`, string(id))
	if err != nil {
		return nil, fmt.Errorf("listing speakers for %s: %w", id, err)
	}
	defer rows.Close()

	var out []domain.Speaker
	for rows.Next() {
		var sp domain.Speaker
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Tagline); err != nil {
			return nil, fmt.Errorf("scanning speaker row: %w", err)
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// itemRow holds raw column values before time parsing.
type itemRow struct {
	id, title, startsAt, endsAt, roomName, language, category, description string
	day, roomSort                                                         int
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *itemRow) scan(s scanner) error {
	return s.Scan(&r.id, &r.title, &r.day, &r.startsAt, &r.endsAt,
		&r.roomName, &r.roomSort, &r.language, &r.category, &r.description)
}

func (r *itemRow) toDomain() (domain.TimetableItem, error) {
	start, err := parseTime(r.startsAt)
	if err != nil {
		return domain.TimetableItem{}, fmt.Errorf("parsing starts_at for %s: %w", r.id, err)
	}
	end, err := parseTime(r.endsAt)
	if err != nil {
		return domain.TimetableItem{}, fmt.Errorf("parsing ends_at for %s: %w", r.id, err)
	}
	return domain.TimetableItem{
		ID:          domain.TimetableItemID(r.id),
		Title:       r.title,
		Day:         domain.DayTab(r.day),
		StartsAt:    start,
		EndsAt:      end,
		Room:        domain.Room{Name: r.roomName, SortOrder: r.roomSort},
		Language:    r.language,
		Category:    r.category,
		Description: r.description,
	}, nil
}

func (r *SQLiteTimetableItemRepo) scanItems(rows *sql.Rows) ([]domain.TimetableItem, error) {
	var items []domain.TimetableItem
	for rows.Next() {
		var raw itemRow
		if err := raw.scan(rows); err != nil {
			return nil, fmt.Errorf("scanning timetable item row: %w", err)
		}
		item, err := raw.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timetable items: %w", err)
	}
	return items, nil
}
