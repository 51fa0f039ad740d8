package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/williandsn10/asbarberpro/internal/schedule"
)

type Repository interface {
	// CreateIfSlotFree inserts a pending appointment unless a live one already
	// holds the same date and time, in which case it returns ErrSlotNoLongerAvailable.
	CreateIfSlotFree(ctx context.Context, a *Appointment) (*Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	GetDetails(ctx context.Context, id uuid.UUID) (*AppointmentWithDetails, error)
	ListActiveByDate(ctx context.Context, date schedule.Date) ([]Appointment, error)
	ListByDate(ctx context.Context, date schedule.Date) ([]AppointmentWithDetails, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]AppointmentWithDetails, error)
	// UpdateStatus moves the appointment to status only while it is in one of from.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, from []string) (*Appointment, error)
	DeleteAll(ctx context.Context) (int64, error)
	ListDueReminders(ctx context.Context, date schedule.Date) ([]AppointmentWithDetails, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) error
}
