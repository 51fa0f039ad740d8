package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/williandsn10/asbarberpro/internal/schedule"
)

const (
	StatusPending   = "pending"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Appointment struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	ClientID        uuid.UUID      `db:"client_id" json:"client_id"`
	ServiceID       uuid.UUID      `db:"service_id" json:"service_id"`
	AppointmentDate schedule.Date  `db:"appointment_date" json:"appointment_date" swaggertype:"string" example:"2025-06-02"`
	AppointmentTime schedule.Clock `db:"appointment_time" json:"appointment_time" swaggertype:"string" example:"09:30"`
	Status          string         `db:"status" json:"status" example:"pending"`
	Notes           *string        `db:"notes" json:"notes,omitempty"`
	ReminderSentAt  *time.Time     `db:"reminder_sent_at" json:"-"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// Booked is the appointment as the slot filter sees it.
func (a Appointment) Booked() schedule.Booked {
	return schedule.Booked{
		Time:      a.AppointmentTime,
		Cancelled: a.Status == StatusCancelled,
	}
}

// StartsAt places the appointment in the shop's time zone.
func (a Appointment) StartsAt(loc *time.Location) time.Time {
	return a.AppointmentDate.At(a.AppointmentTime, loc)
}

type AppointmentWithDetails struct {
	Appointment
	ClientName      string  `db:"client_name" json:"client_name"`
	ClientEmail     *string `db:"client_email" json:"client_email,omitempty"`
	ClientPhone     *string `db:"client_phone" json:"client_phone,omitempty"`
	ServiceName     string  `db:"service_name" json:"service_name"`
	ServiceDuration int     `db:"service_duration_minutes" json:"service_duration_minutes"`
	ServicePrice    int64   `db:"service_price_cents" json:"service_price_cents"`
}

func (d AppointmentWithDetails) ClientEmailAddress() string {
	if d.ClientEmail == nil {
		return ""
	}
	return *d.ClientEmail
}

type BookRequest struct {
	ServiceID string  `json:"service_id" binding:"required,uuid" example:"5b1c1b0e-5c1f-4c1e-9a53-3b0f4d7c2a10"`
	Date      string  `json:"date" binding:"required" example:"2025-06-02"`
	Time      string  `json:"time" binding:"required" example:"09:30"`
	Notes     *string `json:"notes" binding:"omitempty,max=500" example:"Degradê baixo"`
}

// AdminBookRequest is a manual entry made by staff on behalf of a client.
type AdminBookRequest struct {
	ClientID string `json:"client_id" binding:"required,uuid" example:"1f6e5f1a-4f8d-4d8b-9a53-0b0f4d7c2a10"`
	BookRequest
}

type AvailabilityResponse struct {
	Date  string           `json:"date" example:"2025-06-02"`
	Slots []schedule.Clock `json:"slots" swaggertype:"array,string" example:"08:00,08:30"`
}

// Event is the payload published on appointment changes.
type Event struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	ClientID      uuid.UUID `json:"client_id"`
	ServiceID     uuid.UUID `json:"service_id"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func newEvent(a *Appointment, now time.Time) Event {
	return Event{
		AppointmentID: a.ID,
		ClientID:      a.ClientID,
		ServiceID:     a.ServiceID,
		Date:          a.AppointmentDate.String(),
		Time:          a.AppointmentTime.String(),
		Status:        a.Status,
		OccurredAt:    now,
	}
}
