package user

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// List returns users ordered by name; an empty role lists everyone.
	List(ctx context.Context, role string) ([]User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name string, email, phone *string) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
