package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/williandsn10/asbarberpro/internal/db"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, name, email, phone, password_hash, role, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(conn *sqlx.DB) Repository {
	return &repository{db: conn}
}

func (r *repository) Create(ctx context.Context, u *User) (*User, error) {
	query := `
		INSERT INTO users (name, email, phone, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	var out User
	err := r.db.GetContext(ctx, &out, query, u.Name, u.Email, u.Phone, u.PasswordHash, u.Role)
	if db.IsUniqueViolation(err) {
		return nil, ErrEmailExists
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return r.getOne(ctx, query, email)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`, email)
}

func (r *repository) List(ctx context.Context, role string) ([]User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.phone, u.password_hash, u.role, u.created_at, u.updated_at,
			MAX(a.appointment_date) FILTER (WHERE a.status = 'completed') AS last_visit
		FROM users u
		LEFT JOIN appointments a ON a.client_id = u.id
		WHERE ($1 = '' OR u.role = $1)
		GROUP BY u.id
		ORDER BY u.name
	`

	out := []User{}
	if err := r.db.SelectContext(ctx, &out, query, role); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*User, error) {
	query := `
		UPDATE users SET role = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	return r.getOne(ctx, query, id, role)
}

func (r *repository) UpdateProfile(ctx context.Context, id uuid.UUID, name string, email, phone *string) (*User, error) {
	query := `
		UPDATE users SET name = $2, email = $3, phone = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := r.getOne(ctx, query, id, name, email, phone)
	if db.IsUniqueViolation(err) {
		return nil, ErrEmailExists
	}
	return u, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) getOne(ctx context.Context, query string, args ...interface{}) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
