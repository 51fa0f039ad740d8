package appointment

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/williandsn10/asbarberpro/internal/auth"
	"github.com/williandsn10/asbarberpro/internal/catalog"
	"github.com/williandsn10/asbarberpro/internal/logger"
	"github.com/williandsn10/asbarberpro/internal/metrics"
	"github.com/williandsn10/asbarberpro/internal/obs"
	"github.com/williandsn10/asbarberpro/internal/schedule"
	"github.com/williandsn10/asbarberpro/internal/user"
)

var (
	ErrInvalidSlot       = errors.New("invalid date or time")
	ErrSlotInPast        = errors.New("slot is in the past")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotOwner          = errors.New("appointment belongs to another client")
	ErrNotAClient        = errors.New("appointments can only be booked for clients")
)

type ServiceLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
}

type UserDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type Service interface {
	Availability(ctx context.Context, date schedule.Date) ([]schedule.Clock, error)
	Book(ctx context.Context, clientID uuid.UUID, req BookRequest) (*Appointment, error)
	AdminBook(ctx context.Context, req AdminBookRequest) (*Appointment, error)

	ListForClient(ctx context.Context, clientID uuid.UUID) ([]AppointmentWithDetails, error)
	ListByDate(ctx context.Context, date schedule.Date) ([]AppointmentWithDetails, error)

	// ClientCancel cancels one of the client's own pending or scheduled appointments.
	ClientCancel(ctx context.Context, clientID, id uuid.UUID) (*Appointment, error)
	Accept(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Complete(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Reject(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID) (*Appointment, error)

	DeleteAll(ctx context.Context) (int64, error)
	// SendReminders emails clients booked for tomorrow and returns how many were sent.
	SendReminders(ctx context.Context) (int, error)
}

type service struct {
	repo         Repository
	availability *Availability
	services     ServiceLookup
	users        UserDirectory
	notifier     Notifier
	loc          *time.Location
	now          func() time.Time
}

func NewService(
	repo Repository,
	availability *Availability,
	services ServiceLookup,
	users UserDirectory,
	notifier Notifier,
	loc *time.Location,
) Service {
	return &service{
		repo:         repo,
		availability: availability,
		services:     services,
		users:        users,
		notifier:     notifier,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *service) Availability(ctx context.Context, date schedule.Date) ([]schedule.Clock, error) {
	return s.availability.Slots(ctx, date)
}

func (s *service) Book(ctx context.Context, clientID uuid.UUID, req BookRequest) (*Appointment, error) {
	return s.book(ctx, clientID, req)
}

func (s *service) AdminBook(ctx context.Context, req AdminBookRequest) (*Appointment, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: client_id", ErrInvalidSlot)
	}

	client, err := s.users.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.Role != auth.RoleClient {
		return nil, ErrNotAClient
	}

	return s.book(ctx, clientID, req.BookRequest)
}

// book re-checks the requested time against the live schedule and inserts it
// only if no one took the slot in the meantime.
func (s *service) book(ctx context.Context, clientID uuid.UUID, req BookRequest) (*Appointment, error) {
	ctx, span := obs.Tracer("appointment").Start(ctx, "appointment.book")
	defer span.End()

	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSlot, err)
	}
	at, err := schedule.ParseClock(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSlot, err)
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: service_id", ErrInvalidSlot)
	}
	span.SetAttributes(attribute.String("date", date.String()), attribute.String("time", at.String()))

	if date.At(at, s.loc).Before(s.now()) {
		return nil, ErrSlotInPast
	}

	if _, err := s.services.Get(ctx, serviceID); err != nil {
		return nil, err
	}

	slots, err := s.availability.Slots(ctx, date)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(slots, at) {
		metrics.RecordBookingConflict()
		return nil, ErrSlotNoLongerAvailable
	}

	created, err := s.repo.CreateIfSlotFree(ctx, &Appointment{
		ClientID:        clientID,
		ServiceID:       serviceID,
		AppointmentDate: date,
		AppointmentTime: at,
		Notes:           trimmed(req.Notes),
	})
	if errors.Is(err, ErrSlotNoLongerAvailable) {
		metrics.RecordBookingConflict()
		logger.Info("booking lost the slot race", "date", date.String(), "time", at.String())
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	metrics.RecordAppointment(StatusPending)
	logger.Info("appointment booked",
		"appointment_id", created.ID.String(),
		"client_id", clientID.String(),
		"date", date.String(),
		"time", at.String(),
	)

	if d, err := s.repo.GetDetails(ctx, created.ID); err != nil {
		logger.Warn("skipping new appointment notification", "appointment_id", created.ID.String(), "error", err)
	} else {
		s.notifier.Created(ctx, d)
	}

	return created, nil
}

func (s *service) ListForClient(ctx context.Context, clientID uuid.UUID) ([]AppointmentWithDetails, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *service) ListByDate(ctx context.Context, date schedule.Date) ([]AppointmentWithDetails, error) {
	return s.repo.ListByDate(ctx, date)
}

func (s *service) ClientCancel(ctx context.Context, clientID, id uuid.UUID) (*Appointment, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.ClientID != clientID {
		return nil, ErrNotOwner
	}
	return s.move(ctx, current, StatusCancelled, false, StatusPending, StatusScheduled)
}

func (s *service) Accept(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, StatusScheduled, StatusPending)
}

func (s *service) Complete(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, StatusCompleted, StatusScheduled)
}

func (s *service) Reject(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, StatusCancelled, StatusPending)
}

func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, StatusCancelled, StatusPending, StatusScheduled)
}

func (s *service) transition(ctx context.Context, id uuid.UUID, to string, from ...string) (*Appointment, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.move(ctx, current, to, true, from...)
}

func (s *service) move(ctx context.Context, current *Appointment, to string, emailClient bool, from ...string) (*Appointment, error) {
	if !slices.Contains(from, current.Status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, to)
	}

	updated, err := s.repo.UpdateStatus(ctx, current.ID, to, from)
	if errors.Is(err, ErrStatusChanged) {
		return nil, fmt.Errorf("%w: %s changed concurrently", ErrInvalidTransition, current.Status)
	}
	if err != nil {
		return nil, err
	}

	metrics.RecordAppointment(to)
	logger.Info("appointment status changed",
		"appointment_id", updated.ID.String(),
		"from", current.Status,
		"to", to,
	)

	if d, err := s.repo.GetDetails(ctx, updated.ID); err != nil {
		logger.Warn("skipping status notification", "appointment_id", updated.ID.String(), "error", err)
	} else {
		s.notifier.StatusChanged(ctx, d, emailClient)
	}

	return updated, nil
}

func (s *service) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	logger.Warn("all appointments deleted", "count", n)
	return n, nil
}

func (s *service) SendReminders(ctx context.Context) (int, error) {
	tomorrow := schedule.DateOf(s.now().In(s.loc)).AddDays(1)

	due, err := s.repo.ListDueReminders(ctx, tomorrow)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		d := &due[i]
		if err := s.notifier.Reminder(ctx, d); err != nil {
			logger.Warn("reminder not queued", "appointment_id", d.ID.String(), "error", err)
			continue
		}
		if err := s.repo.MarkReminderSent(ctx, d.ID); err != nil {
			logger.Error("failed to mark reminder sent", "appointment_id", d.ID.String(), "error", err)
			continue
		}
		metrics.RecordReminder()
		sent++
	}

	logger.Info("reminders processed", "date", tomorrow.String(), "due", len(due), "sent", sent)
	return sent, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
