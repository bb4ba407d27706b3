package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/confsched/internal/db"
	"github.com/alexanderramin/confsched/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo as a single 'default' row.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	query := `SELECT font_family, enable_animation, enable_fallback_mode
		FROM settings WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var font sql.NullString
	var animation, fallback int
	if err := row.Scan(&font, &animation, &fallback); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning settings: %w", err)
	}

	s := &domain.Settings{
		EnableAnimation:    intToBool(animation),
		EnableFallbackMode: intToBool(fallback),
	}
	if name := stringOrEmpty(font); name != "" {
		f, err := domain.ParseFontFamily(name)
		if err != nil {
			return nil, fmt.Errorf("settings: %w", err)
		}
		s.UseFontFamily = &f
	}
	return s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.Settings) error {
	var font string
	if s.UseFontFamily != nil {
		font = string(*s.UseFontFamily)
	}
	query := `INSERT OR REPLACE INTO settings (id, font_family, enable_animation, enable_fallback_mode, updated_at)
		VALUES ('default', ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		nullableString(font),
		boolToInt(s.EnableAnimation),
		boolToInt(s.EnableFallbackMode),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting settings: %w", err)
	}
	return nil
}
