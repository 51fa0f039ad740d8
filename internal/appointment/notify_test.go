package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williandsn10/asbarberpro/internal/events"
	"github.com/williandsn10/asbarberpro/internal/schedule"
	"github.com/williandsn10/asbarberpro/internal/user"
)

func strPtr(s string) *string { return &s }

func sampleDetails() *AppointmentWithDetails {
	return &AppointmentWithDetails{
		Appointment: Appointment{
			ID:              uuid.New(),
			ClientID:        uuid.New(),
			AppointmentDate: monday,
			AppointmentTime: schedule.MustParseClock("09:30"),
			Status:          StatusPending,
		},
		ClientName:  "Carlos",
		ClientEmail: strPtr("carlos@example.com"),
		ServiceName: "Haircut",
	}
}

func TestNotifier_Created(t *testing.T) {
	mailer := &fakeMailer{}
	pub := &fakePublisher{}
	admins := &fakeUsers{admins: []user.User{
		{ID: uuid.New(), Name: "Ana", Email: strPtr("ana@example.com")},
		{ID: uuid.New(), Name: "No Email"},
	}}
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	d := sampleDetails()
	NewNotifier(mailer, pub, admins, loc).Created(context.Background(), d)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.AppointmentCreated, pub.events[0].key)
	ev := pub.events[0].payload.(Event)
	assert.Equal(t, d.ID, ev.AppointmentID)
	assert.Equal(t, "2025-06-02", ev.Date)
	assert.Equal(t, "09:30", ev.Time)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ana@example.com", mailer.sent[0].to)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 30, 0, 0, loc), mailer.sent[0].when)
}

func TestNotifier_CreatedSurvivesFailures(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	admins := &fakeUsers{err: errors.New("db down")}
	mailer := &fakeMailer{}

	assert.NotPanics(t, func() {
		NewNotifier(mailer, pub, admins, time.UTC).Created(context.Background(), sampleDetails())
	})
	assert.Empty(t, mailer.sent)
}

func TestNotifier_StatusChanged(t *testing.T) {
	t.Run("emails the client", func(t *testing.T) {
		mailer := &fakeMailer{}
		pub := &fakePublisher{}
		d := sampleDetails()
		d.Status = StatusScheduled

		NewNotifier(mailer, pub, &fakeUsers{}, time.UTC).StatusChanged(context.Background(), d, true)

		require.Len(t, pub.events, 1)
		assert.Equal(t, events.AppointmentStatusChanged, pub.events[0].key)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "status", mailer.sent[0].kind)
		assert.Equal(t, "carlos@example.com", mailer.sent[0].to)
	})

	t.Run("client cancelled it themselves", func(t *testing.T) {
		mailer := &fakeMailer{}
		NewNotifier(mailer, &fakePublisher{}, &fakeUsers{}, time.UTC).StatusChanged(context.Background(), sampleDetails(), false)
		assert.Empty(t, mailer.sent)
	})

	t.Run("walk-in without email", func(t *testing.T) {
		mailer := &fakeMailer{}
		d := sampleDetails()
		d.ClientEmail = nil
		NewNotifier(mailer, nil, &fakeUsers{}, time.UTC).StatusChanged(context.Background(), d, true)
		assert.Empty(t, mailer.sent)
	})
}

func TestNotifier_Reminder(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("queue full")}
	err := NewNotifier(mailer, nil, &fakeUsers{}, time.UTC).Reminder(context.Background(), sampleDetails())
	assert.Error(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "reminder", mailer.sent[0].kind)
}
