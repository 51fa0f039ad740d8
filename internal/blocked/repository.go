package blocked

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/williandsn10/asbarberpro/internal/schedule"
)

var ErrBlockedTimeNotFound = errors.New("blocked time not found")

const blockedColumns = `id, date, is_full_day, start_time, end_time, reason, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *BlockedTime) (*BlockedTime, error) {
	query := `
		INSERT INTO blocked_times (date, is_full_day, start_time, end_time, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + blockedColumns

	var out BlockedTime
	err := r.db.GetContext(ctx, &out, query, b.BlockedDate, b.IsFullDay, b.StartTime, b.EndTime, b.Reason)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) Update(ctx context.Context, b *BlockedTime) (*BlockedTime, error) {
	query := `
		UPDATE blocked_times
		SET date = $2, is_full_day = $3, start_time = $4, end_time = $5, reason = $6
		WHERE id = $1
		RETURNING ` + blockedColumns

	var out BlockedTime
	err := r.db.GetContext(ctx, &out, query, b.ID, b.BlockedDate, b.IsFullDay, b.StartTime, b.EndTime, b.Reason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockedTimeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blocked_times WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBlockedTimeNotFound
	}
	return nil
}

func (r *repository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blocked_times`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*BlockedTime, error) {
	query := `SELECT ` + blockedColumns + ` FROM blocked_times WHERE id = $1`

	var out BlockedTime
	err := r.db.GetContext(ctx, &out, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockedTimeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) ListByDate(ctx context.Context, date schedule.Date) ([]BlockedTime, error) {
	query := `
		SELECT ` + blockedColumns + `
		FROM blocked_times
		WHERE date = $1
		ORDER BY is_full_day DESC, start_time
	`

	out := []BlockedTime{}
	if err := r.db.SelectContext(ctx, &out, query, date); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) List(ctx context.Context, from, to *schedule.Date) ([]BlockedTime, error) {
	query := `
		SELECT ` + blockedColumns + `
		FROM blocked_times
		WHERE ($1::date IS NULL OR date >= $1::date)
		  AND ($2::date IS NULL OR date <= $2::date)
		ORDER BY date, is_full_day DESC, start_time
	`

	out := []BlockedTime{}
	if err := r.db.SelectContext(ctx, &out, query, from, to); err != nil {
		return nil, err
	}
	return out, nil
}
