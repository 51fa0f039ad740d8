package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/williandsn10/asbarberpro/internal/logger"
)

// ReminderSender queues reminders for tomorrow's appointments.
type ReminderSender interface {
	SendReminders(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	sender  ReminderSender
	timeout time.Duration
}

// NewScheduler registers the reminder run on spec, a five-field cron expression
// evaluated in loc.
func NewScheduler(spec string, loc *time.Location, sender ReminderSender) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cronLogger{}), cron.SkipIfStillRunning(cronLogger{}))),
		sender:  sender,
		timeout: 5 * time.Minute,
	}

	if _, err := s.cron.AddFunc(spec, s.RunReminders); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("job scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		logger.Warn("job scheduler stop timed out")
	}
}

func (s *Scheduler) RunReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	sent, err := s.sender.SendReminders(ctx)
	if err != nil {
		logger.Error("reminder job failed", "error", err)
		return
	}
	logger.Debug("reminder job finished", "sent", sent)
}

// cronLogger routes cron's own messages to the package logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
