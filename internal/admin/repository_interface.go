package admin

import "context"

type Repository interface {
	Reset(ctx context.Context) (ResetResponse, error)
}
