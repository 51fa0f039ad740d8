package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/williandsn10/asbarberpro/internal/logger"
)

type Service interface {
	Reset(ctx context.Context, actorID uuid.UUID) (ResetResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Reset(ctx context.Context, actorID uuid.UUID) (ResetResponse, error) {
	out, err := s.repo.Reset(ctx)
	if err != nil {
		return ResetResponse{}, err
	}

	logger.Warn("shop data reset",
		"actor_id", actorID.String(),
		"appointments", out.Appointments,
		"blocked_times", out.BlockedTimes,
		"services", out.Services,
	)
	return out, nil
}
