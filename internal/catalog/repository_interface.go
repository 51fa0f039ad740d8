package catalog

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, req ServiceRequest) (*Service, error)
	Update(ctx context.Context, id uuid.UUID, req ServiceRequest) (*Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	List(ctx context.Context) ([]Service, error)
}
