package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/williandsn10/asbarberpro/internal/catalog"
	"github.com/williandsn10/asbarberpro/internal/schedule"
	"github.com/williandsn10/asbarberpro/internal/user"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateIfSlotFree(ctx context.Context, a *Appointment) (*Appointment, error) {
	args := m.Called(ctx, a)
	out, _ := args.Get(0).(*Appointment)
	return out, args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*Appointment)
	return out, args.Error(1)
}

func (m *MockRepository) GetDetails(ctx context.Context, id uuid.UUID) (*AppointmentWithDetails, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*AppointmentWithDetails)
	return out, args.Error(1)
}

func (m *MockRepository) ListActiveByDate(ctx context.Context, date schedule.Date) ([]Appointment, error) {
	args := m.Called(ctx, date)
	out, _ := args.Get(0).([]Appointment)
	return out, args.Error(1)
}

func (m *MockRepository) ListByDate(ctx context.Context, date schedule.Date) ([]AppointmentWithDetails, error) {
	args := m.Called(ctx, date)
	out, _ := args.Get(0).([]AppointmentWithDetails)
	return out, args.Error(1)
}

func (m *MockRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]AppointmentWithDetails, error) {
	args := m.Called(ctx, clientID)
	out, _ := args.Get(0).([]AppointmentWithDetails)
	return out, args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, from []string) (*Appointment, error) {
	args := m.Called(ctx, id, status, from)
	out, _ := args.Get(0).(*Appointment)
	return out, args.Error(1)
}

func (m *MockRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListDueReminders(ctx context.Context, date schedule.Date) ([]AppointmentWithDetails, error) {
	args := m.Called(ctx, date)
	out, _ := args.Get(0).([]AppointmentWithDetails)
	return out, args.Error(1)
}

func (m *MockRepository) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// fakeSource serves fixed schedule inputs; a non-nil error field fails that read.
type fakeSource struct {
	hours     *schedule.WorkingHours
	closed    schedule.ClosedDays
	blocks    []schedule.Block
	hoursErr  error
	closedErr error
	blocksErr error
}

func (f *fakeSource) WorkingHours(context.Context) (*schedule.WorkingHours, error) {
	return f.hours, f.hoursErr
}

func (f *fakeSource) ClosedDays(context.Context) (schedule.ClosedDays, error) {
	return f.closed, f.closedErr
}

func (f *fakeSource) BlocksOn(context.Context, schedule.Date) ([]schedule.Block, error) {
	return f.blocks, f.blocksErr
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Created(ctx context.Context, d *AppointmentWithDetails) {
	m.Called(ctx, d)
}

func (m *MockNotifier) StatusChanged(ctx context.Context, d *AppointmentWithDetails, emailClient bool) {
	m.Called(ctx, d, emailClient)
}

func (m *MockNotifier) Reminder(ctx context.Context, d *AppointmentWithDetails) error {
	return m.Called(ctx, d).Error(0)
}

type fakeServices map[uuid.UUID]*catalog.Service

func (f fakeServices) Get(_ context.Context, id uuid.UUID) (*catalog.Service, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, catalog.ErrServiceNotFound
}

type fakeUsers struct {
	users  map[uuid.UUID]*user.User
	admins []user.User
	err    error
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUsers) Admins(context.Context) ([]user.User, error) {
	return f.admins, f.err
}

type sentMail struct {
	kind, to, name string
	when           time.Time
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendNewAppointment(_ context.Context, to, adminName, _, _ string, when time.Time) error {
	f.sent = append(f.sent, sentMail{kind: "new", to: to, name: adminName, when: when})
	return f.err
}

func (f *fakeMailer) SendStatusChanged(_ context.Context, to, name, _, _ string, when time.Time) error {
	f.sent = append(f.sent, sentMail{kind: "status", to: to, name: name, when: when})
	return f.err
}

func (f *fakeMailer) SendReminder(_ context.Context, to, name, _ string, when time.Time) error {
	f.sent = append(f.sent, sentMail{kind: "reminder", to: to, name: name, when: when})
	return f.err
}

type published struct {
	key     string
	payload any
}

type fakePublisher struct {
	events []published
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, key string, payload any) error {
	f.events = append(f.events, published{key: key, payload: payload})
	return f.err
}

func (f *fakePublisher) Close() error { return nil }
