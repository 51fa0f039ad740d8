package settings

import (
	"context"

	"github.com/jmoiron/sqlx/types"
)

type Repository interface {
	Get(ctx context.Context, key string) (*Setting, error)
	Upsert(ctx context.Context, key string, value types.JSONText) (*Setting, error)
}
