package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/williandsn10/asbarberpro/internal/logger"
	"github.com/williandsn10/asbarberpro/internal/metrics"
)

const (
	DefaultQueue = "emails"
	maxTries     = 3

	TypeNewAppointment = "new_appointment"
	TypeStatusChanged  = "status_changed"
	TypeReminder       = "reminder"
)

type Job struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Config struct {
	From     string
	FromName string
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	Queue    string
}

// SendFunc delivers one message; it matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Service struct {
	redis      *redis.Client
	cfg        Config
	send       SendFunc
	retryDelay time.Duration
	now        func() time.Time
}

func New(rdb *redis.Client, cfg Config) *Service {
	if cfg.Queue == "" {
		cfg.Queue = DefaultQueue
	}
	return &Service{
		redis:      rdb,
		cfg:        cfg,
		send:       smtp.SendMail,
		retryDelay: 5 * time.Second,
		now:        time.Now,
	}
}

func (s *Service) failedQueue() string {
	return s.cfg.Queue + ":failed"
}

// Send queues a message; delivery happens in Start.
func (s *Service) Send(ctx context.Context, emailType, to, name, subject, body string) error {
	if to == "" {
		logger.Debug("email skipped, no recipient", "type", emailType, "name", name)
		return nil
	}

	job := Job{
		Type:    emailType,
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Created: s.now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}

	if err := s.redis.LPush(ctx, s.cfg.Queue, string(data)).Err(); err != nil {
		metrics.RecordEmail(emailType, "queue_failed")
		logger.Error("failed to queue email", "to", to, "type", emailType, "error", err)
		return err
	}

	metrics.RecordEmail(emailType, "queued")
	logger.Info("email queued", "to", to, "type", emailType)
	return nil
}

// Start drains the queue until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("email worker started", "queue", s.cfg.Queue)

	for {
		select {
		case <-ctx.Done():
			logger.Info("email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, s.cfg.Queue).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Error("bad email payload", "error", err)
		return
	}

	s.deliver(ctx, job)
	metrics.SetEmailQueueLength(s.QueueLength(ctx))
}

func (s *Service) deliver(ctx context.Context, job Job) {
	job.Tries++
	logger.Debug("sending email", "to", job.To, "attempt", job.Tries)

	if err := s.sendNow(job); err != nil {
		logger.Warn("email delivery failed", "to", job.To, "attempt", job.Tries, "error", err)

		if job.Tries < maxTries {
			s.requeue(ctx, job)
			return
		}
		metrics.RecordEmail(job.Type, "failed")
		s.saveFailed(ctx, job, err)
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Info("email sent", "to", job.To, "type", job.Type)
}

func (s *Service) requeue(ctx context.Context, job Job) {
	if s.retryDelay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(s.retryDelay):
		}
	}

	data, _ := json.Marshal(job)
	// a cancelled ctx must not lose the job
	if err := s.redis.LPush(context.WithoutCancel(ctx), s.cfg.Queue, string(data)).Err(); err != nil {
		logger.Error("failed to requeue email", "to", job.To, "error", err)
	}
}

func (s *Service) sendNow(job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n"
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.cfg.SMTPUser != "" && s.cfg.SMTPPass != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	return s.send(addr, auth, s.cfg.From, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(ctx context.Context, job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  s.now(),
	}
	data, _ := json.Marshal(failed)
	if pushErr := s.redis.LPush(context.WithoutCancel(ctx), s.failedQueue(), string(data)).Err(); pushErr != nil {
		logger.Error("failed to store failed email", "to", job.To, "error", pushErr)
		return
	}
	logger.Error("email moved to failed queue", "to", job.To, "tries", job.Tries)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, s.cfg.Queue).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}
