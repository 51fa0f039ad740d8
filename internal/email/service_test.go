package email

import (
	"context"
	"errors"
	"net/smtp"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williandsn10/asbarberpro/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestService(rdb *redis.Client, sendErr error) (*Service, *[]sentMail) {
	var sent []sentMail
	svc := New(rdb, Config{
		From:     "noreply@asbarberpro.com",
		FromName: "AS Barber Pro",
		SMTPHost: "smtp.test.com",
		SMTPPort: "587",
		SMTPUser: "test@example.com",
		SMTPPass: "password",
	})
	svc.retryDelay = 0
	svc.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return sendErr
	}
	return svc, &sent
}

func TestSend(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*`).SetVal(1)

	svc, _ := newTestService(db, nil)

	err := svc.Send(ctx, TypeReminder, "user@example.com", "User", "Hello", "Test body")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_NoRecipientIsSkipped(t *testing.T) {
	db, mock := redismock.NewClientMock()

	svc, _ := newTestService(db, nil)

	err := svc.Send(context.Background(), TypeReminder, "", "Walk-in", "Hello", "Test body")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_CustomQueue(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.Regexp().ExpectLPush("barber:emails", `.*`).SetVal(1)

	svc := New(db, Config{Queue: "barber:emails"})
	err := svc.Send(context.Background(), TypeReminder, "user@example.com", "User", "Hello", "Body")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendNewAppointment(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.Regexp().ExpectLPush("emails", `.*new_appointment.*Carlos.*`).SetVal(1)

	svc, _ := newTestService(db, nil)

	when := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	err := svc.SendNewAppointment(context.Background(), "admin@example.com", "Ana", "Carlos", "Haircut", when)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendStatusChanged(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.Regexp().ExpectLPush("emails", `.*status_changed.*`).SetVal(1)

	svc, _ := newTestService(db, nil)

	err := svc.SendStatusChanged(context.Background(), "user@example.com", "User", "Beard", "scheduled", time.Now())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendReminder(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.Regexp().ExpectLPush("emails", `.*reminder.*`).SetVal(1)

	svc, _ := newTestService(db, nil)

	err := svc.SendReminder(context.Background(), "user@example.com", "User", "Haircut", time.Now().Add(24*time.Hour))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendError(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.Regexp().ExpectLPush("emails", `.*`).SetErr(assert.AnError)

	svc, _ := newTestService(db, nil)

	err := svc.Send(context.Background(), TypeReminder, "user@example.com", "User", "Hello", "Test body")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliver_Success(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc, sent := newTestService(db, nil)

	svc.deliver(context.Background(), Job{Type: TypeReminder, To: "user@example.com", Subject: "Hi", Body: "Body"})

	require.Len(t, *sent, 1)
	mail := (*sent)[0]
	assert.Equal(t, "smtp.test.com:587", mail.addr)
	assert.Equal(t, []string{"user@example.com"}, mail.to)
	assert.Contains(t, mail.msg, "From: AS Barber Pro <noreply@asbarberpro.com>")
	assert.Contains(t, mail.msg, "Subject: Hi")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliver_RetriesThenFails(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc, _ := newTestService(db, errors.New("smtp down"))

	mock.Regexp().ExpectLPush("emails", `.*"tries":1.*`).SetVal(1)
	svc.deliver(context.Background(), Job{Type: TypeReminder, To: "user@example.com"})

	mock.Regexp().ExpectLPush("emails:failed", `.*smtp down.*`).SetVal(1)
	svc.deliver(context.Background(), Job{Type: TypeReminder, To: "user@example.com", Tries: maxTries - 1})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.ExpectLLen("emails").SetVal(5)

	svc, _ := newTestService(db, nil)

	assert.Equal(t, int64(5), svc.QueueLength(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueLengthError(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.ExpectLLen("emails").SetErr(assert.AnError)

	svc, _ := newTestService(db, nil)

	assert.Equal(t, int64(0), svc.QueueLength(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
