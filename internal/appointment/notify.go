package appointment

import (
	"context"
	"time"

	"github.com/williandsn10/asbarberpro/internal/events"
	"github.com/williandsn10/asbarberpro/internal/logger"
	"github.com/williandsn10/asbarberpro/internal/user"
)

type Mailer interface {
	SendNewAppointment(ctx context.Context, to, adminName, clientName, serviceName string, when time.Time) error
	SendStatusChanged(ctx context.Context, to, name, serviceName, status string, when time.Time) error
	SendReminder(ctx context.Context, to, name, serviceName string, when time.Time) error
}

type AdminDirectory interface {
	Admins(ctx context.Context) ([]user.User, error)
}

// Notifier fans appointment changes out to email and the event bus.
// Created and StatusChanged only log failures.
type Notifier interface {
	Created(ctx context.Context, d *AppointmentWithDetails)
	StatusChanged(ctx context.Context, d *AppointmentWithDetails, emailClient bool)
	Reminder(ctx context.Context, d *AppointmentWithDetails) error
}

type notifier struct {
	mailer    Mailer
	publisher events.Publisher
	admins    AdminDirectory
	loc       *time.Location
	now       func() time.Time
}

func NewNotifier(mailer Mailer, publisher events.Publisher, admins AdminDirectory, loc *time.Location) Notifier {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &notifier{
		mailer:    mailer,
		publisher: publisher,
		admins:    admins,
		loc:       loc,
		now:       time.Now,
	}
}

func (n *notifier) Created(ctx context.Context, d *AppointmentWithDetails) {
	n.publish(ctx, events.AppointmentCreated, &d.Appointment)

	admins, err := n.admins.Admins(ctx)
	if err != nil {
		logger.Error("failed to load admins for notification", "appointment_id", d.ID.String(), "error", err)
		return
	}

	when := d.StartsAt(n.loc)
	for _, a := range admins {
		if a.Email == nil {
			continue
		}
		if err := n.mailer.SendNewAppointment(ctx, *a.Email, a.Name, d.ClientName, d.ServiceName, when); err != nil {
			logger.Warn("failed to notify admin", "admin_id", a.ID.String(), "error", err)
		}
	}
}

func (n *notifier) StatusChanged(ctx context.Context, d *AppointmentWithDetails, emailClient bool) {
	n.publish(ctx, events.AppointmentStatusChanged, &d.Appointment)

	if !emailClient || d.ClientEmail == nil {
		return
	}
	err := n.mailer.SendStatusChanged(ctx, *d.ClientEmail, d.ClientName, d.ServiceName, d.Status, d.StartsAt(n.loc))
	if err != nil {
		logger.Warn("failed to notify client", "appointment_id", d.ID.String(), "error", err)
	}
}

func (n *notifier) Reminder(ctx context.Context, d *AppointmentWithDetails) error {
	return n.mailer.SendReminder(ctx, d.ClientEmailAddress(), d.ClientName, d.ServiceName, d.StartsAt(n.loc))
}

func (n *notifier) publish(ctx context.Context, key string, a *Appointment) {
	if err := n.publisher.Publish(ctx, key, newEvent(a, n.now())); err != nil {
		logger.Warn("failed to publish event", "routing_key", key, "appointment_id", a.ID.String(), "error", err)
	}
}
