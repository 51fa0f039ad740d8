package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/williandsn10/asbarberpro/internal/db"
)

const serviceColumns = `id, name, description, price_cents, duration_minutes, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req ServiceRequest) (*Service, error) {
	query := `
		INSERT INTO services (name, description, price_cents, duration_minutes)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + serviceColumns

	var s Service
	if err := r.db.GetContext(ctx, &s, query, req.Name, req.Description, req.PriceCents, req.DurationMinutes); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, req ServiceRequest) (*Service, error) {
	query := `
		UPDATE services
		SET name = $2, description = $3, price_cents = $4, duration_minutes = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + serviceColumns

	var s Service
	err := r.db.GetContext(ctx, &s, query, id, req.Name, req.Description, req.PriceCents, req.DurationMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrServiceInUse
		}
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// DeleteAll fails with ErrServiceInUse while any appointment references a
// service; nothing is deleted in that case.
func (r *repository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services`)
	if db.IsForeignKeyViolation(err) {
		return 0, ErrServiceInUse
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	var s Service
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context) ([]Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY name`

	out := []Service{}
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, err
	}
	return out, nil
}
