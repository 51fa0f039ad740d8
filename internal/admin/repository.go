package admin

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/williandsn10/asbarberpro/internal/db"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(conn *sqlx.DB) Repository {
	return &repository{db: conn}
}

// Reset clears bookings and shop data in one transaction. Appointments go
// first because they reference services. Users and settings survive.
func (r *repository) Reset(ctx context.Context) (ResetResponse, error) {
	var out ResetResponse
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		steps := []struct {
			query string
			count *int64
		}{
			{`DELETE FROM appointments`, &out.Appointments},
			{`DELETE FROM blocked_times`, &out.BlockedTimes},
			{`DELETE FROM services`, &out.Services},
		}
		for _, step := range steps {
			res, err := tx.ExecContext(ctx, step.query)
			if err != nil {
				return err
			}
			if *step.count, err = res.RowsAffected(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ResetResponse{}, err
	}
	return out, nil
}
