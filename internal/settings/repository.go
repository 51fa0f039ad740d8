package settings

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

var ErrSettingNotFound = errors.New("setting not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, key string) (*Setting, error) {
	query := `
		SELECT key, value, updated_at
		FROM settings
		WHERE key = $1
	`

	var s Setting
	if err := r.db.GetContext(ctx, &s, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}

	return &s, nil
}

func (r *repository) Upsert(ctx context.Context, key string, value types.JSONText) (*Setting, error) {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING key, value, updated_at
	`

	var s Setting
	if err := r.db.GetContext(ctx, &s, query, key, value); err != nil {
		return nil, err
	}

	return &s, nil
}
