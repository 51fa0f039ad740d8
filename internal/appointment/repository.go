package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/williandsn10/asbarberpro/internal/db"
	"github.com/williandsn10/asbarberpro/internal/schedule"
)

var (
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrSlotNoLongerAvailable = errors.New("slot no longer available")
	// ErrStatusChanged means the row left the expected status before the update ran.
	ErrStatusChanged = errors.New("appointment status changed concurrently")
)

const appointmentColumns = `id, client_id, service_id, appointment_date, appointment_time, status, notes, reminder_sent_at, created_at, updated_at`

const detailsSelect = `
	SELECT
		a.id, a.client_id, a.service_id, a.appointment_date, a.appointment_time,
		a.status, a.notes, a.reminder_sent_at, a.created_at, a.updated_at,
		u.name AS client_name,
		u.email AS client_email,
		u.phone AS client_phone,
		s.name AS service_name,
		s.duration_minutes AS service_duration_minutes,
		s.price_cents AS service_price_cents
	FROM appointments a
	JOIN users u ON a.client_id = u.id
	JOIN services s ON a.service_id = s.id`

type repository struct {
	db *sqlx.DB
}

func NewRepository(conn *sqlx.DB) Repository {
	return &repository{db: conn}
}

// slotLockKey names the advisory lock serialising bookings of one slot.
func slotLockKey(date schedule.Date, t schedule.Clock) string {
	return fmt.Sprintf("appointment:%s:%s", date, t)
}

func (r *repository) CreateIfSlotFree(ctx context.Context, a *Appointment) (*Appointment, error) {
	var out Appointment
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`,
			slotLockKey(a.AppointmentDate, a.AppointmentTime)); err != nil {
			return fmt.Errorf("lock slot: %w", err)
		}

		taken, err := db.Exists(ctx, tx, `
			SELECT EXISTS(
				SELECT 1 FROM appointments
				WHERE appointment_date = $1 AND appointment_time = $2 AND status <> 'cancelled'
			)`, a.AppointmentDate, a.AppointmentTime)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotNoLongerAvailable
		}

		query := `
			INSERT INTO appointments (client_id, service_id, appointment_date, appointment_time, status, notes)
			VALUES ($1, $2, $3, $4, 'pending', $5)
			RETURNING ` + appointmentColumns
		return tx.GetContext(ctx, &out, query, a.ClientID, a.ServiceID, a.AppointmentDate, a.AppointmentTime, a.Notes)
	})
	if db.IsUniqueViolation(err) {
		return nil, ErrSlotNoLongerAvailable
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	var a Appointment
	err := r.db.GetContext(ctx, &a, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetDetails(ctx context.Context, id uuid.UUID) (*AppointmentWithDetails, error) {
	var d AppointmentWithDetails
	err := r.db.GetContext(ctx, &d, detailsSelect+` WHERE a.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) ListActiveByDate(ctx context.Context, date schedule.Date) ([]Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE appointment_date = $1 AND status <> 'cancelled'
		ORDER BY appointment_time`

	list := []Appointment{}
	if err := r.db.SelectContext(ctx, &list, query, date); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) ListByDate(ctx context.Context, date schedule.Date) ([]AppointmentWithDetails, error) {
	list := []AppointmentWithDetails{}
	err := r.db.SelectContext(ctx, &list, detailsSelect+`
		WHERE a.appointment_date = $1
		ORDER BY a.appointment_time, a.created_at`, date)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]AppointmentWithDetails, error) {
	list := []AppointmentWithDetails{}
	err := r.db.SelectContext(ctx, &list, detailsSelect+`
		WHERE a.client_id = $1
		ORDER BY a.appointment_date DESC, a.appointment_time DESC`, clientID)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, from []string) (*Appointment, error) {
	query := `
		UPDATE appointments
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
		RETURNING ` + appointmentColumns

	var a Appointment
	err := r.db.GetContext(ctx, &a, query, id, status, pq.Array(from))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusChanged
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListDueReminders returns scheduled appointments on date that have not been reminded yet.
func (r *repository) ListDueReminders(ctx context.Context, date schedule.Date) ([]AppointmentWithDetails, error) {
	list := []AppointmentWithDetails{}
	err := r.db.SelectContext(ctx, &list, detailsSelect+`
		WHERE a.appointment_date = $1 AND a.status = 'scheduled' AND a.reminder_sent_at IS NULL
		ORDER BY a.appointment_time`, date)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE appointments SET reminder_sent_at = NOW() WHERE id = $1`, id)
	return err
}
