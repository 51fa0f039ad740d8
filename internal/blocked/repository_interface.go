package blocked

import (
	"context"

	"github.com/google/uuid"

	"github.com/williandsn10/asbarberpro/internal/schedule"
)

type Repository interface {
	Create(ctx context.Context, b *BlockedTime) (*BlockedTime, error)
	Update(ctx context.Context, b *BlockedTime) (*BlockedTime, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BlockedTime, error)
	ListByDate(ctx context.Context, date schedule.Date) ([]BlockedTime, error)
	// List returns blocks between from and to inclusive; a nil bound is open.
	List(ctx context.Context, from, to *schedule.Date) ([]BlockedTime, error)
}
