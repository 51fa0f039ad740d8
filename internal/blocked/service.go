package blocked

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/williandsn10/asbarberpro/internal/logger"
	"github.com/williandsn10/asbarberpro/internal/schedule"
)

var (
	ErrInvalidBlockedTime = errors.New("invalid blocked time")
	ErrInvalidRange       = errors.New("invalid date range")
)

type Service interface {
	Create(ctx context.Context, req BlockedTimeRequest) (*BlockedTime, error)
	Update(ctx context.Context, id uuid.UUID, req BlockedTimeRequest) (*BlockedTime, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	List(ctx context.Context, from, to *schedule.Date) ([]BlockedTime, error)
	// BlocksOn returns the exclusion inputs for a single date.
	BlocksOn(ctx context.Context, date schedule.Date) ([]schedule.Block, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req BlockedTimeRequest) (*BlockedTime, error) {
	b, err := fromRequest(req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}

	logger.Info("blocked time created", "id", created.ID.String(), "date", created.BlockedDate.String(), "full_day", created.IsFullDay)
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req BlockedTimeRequest) (*BlockedTime, error) {
	b, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	b.ID = id

	return s.repo.Update(ctx, b)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	logger.Warn("all blocked times deleted", "count", n)
	return n, nil
}

func (s *service) List(ctx context.Context, from, to *schedule.Date) ([]BlockedTime, error) {
	if from != nil && to != nil && to.Before(from.Time) {
		return nil, fmt.Errorf("%w: to %s is before from %s", ErrInvalidRange, to, from)
	}
	return s.repo.List(ctx, from, to)
}

func (s *service) BlocksOn(ctx context.Context, date schedule.Date) ([]schedule.Block, error) {
	rows, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	blocks := make([]schedule.Block, 0, len(rows))
	for _, b := range rows {
		blocks = append(blocks, b.Block())
	}
	return blocks, nil
}

// fromRequest validates a request; full-day blocks drop any time range.
func fromRequest(req BlockedTimeRequest) (*BlockedTime, error) {
	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBlockedTime, err)
	}

	b := &BlockedTime{
		BlockedDate: date,
		IsFullDay:   req.IsFullDay,
		Reason:      trimmed(req.Reason),
	}
	if req.IsFullDay {
		return b, nil
	}

	if req.StartTime == nil || req.EndTime == nil {
		return nil, fmt.Errorf("%w: start_time and end_time are required unless is_full_day", ErrInvalidBlockedTime)
	}
	start, err := schedule.ParseClock(*req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start_time: %w", ErrInvalidBlockedTime, err)
	}
	end, err := schedule.ParseClock(*req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end_time: %w", ErrInvalidBlockedTime, err)
	}
	if start >= end {
		return nil, fmt.Errorf("%w: start_time %s must be before end_time %s", ErrInvalidBlockedTime, start, end)
	}

	b.StartTime = &start
	b.EndTime = &end
	return b, nil
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
