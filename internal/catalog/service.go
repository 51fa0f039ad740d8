package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/williandsn10/asbarberpro/internal/logger"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrServiceInUse    = errors.New("service has appointments")
	ErrServiceInvalid  = errors.New("invalid service")
)

type Catalog interface {
	Create(ctx context.Context, req ServiceRequest) (*Service, error)
	Update(ctx context.Context, id uuid.UUID, req ServiceRequest) (*Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	Get(ctx context.Context, id uuid.UUID) (*Service, error)
	List(ctx context.Context) ([]Service, error)
}

type catalog struct {
	repo Repository
}

func NewCatalog(repo Repository) Catalog {
	return &catalog{repo: repo}
}

func (c *catalog) Create(ctx context.Context, req ServiceRequest) (*Service, error) {
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}

	s, err := c.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Info("service created", "service_id", s.ID.String(), "name", s.Name)
	return s, nil
}

func (c *catalog) Update(ctx context.Context, id uuid.UUID, req ServiceRequest) (*Service, error) {
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}
	return c.repo.Update(ctx, id, req)
}

func (c *catalog) Delete(ctx context.Context, id uuid.UUID) error {
	return c.repo.Delete(ctx, id)
}

func (c *catalog) DeleteAll(ctx context.Context) (int64, error) {
	n, err := c.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	logger.Warn("all services deleted", "count", n)
	return n, nil
}

func (c *catalog) Get(ctx context.Context, id uuid.UUID) (*Service, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *catalog) List(ctx context.Context) ([]Service, error) {
	return c.repo.List(ctx)
}

func normalize(req ServiceRequest) (ServiceRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return req, fmt.Errorf("%w: name is required", ErrServiceInvalid)
	}
	if req.PriceCents < 0 {
		return req, fmt.Errorf("%w: price must not be negative", ErrServiceInvalid)
	}
	if req.DurationMinutes <= 0 {
		return req, fmt.Errorf("%w: duration must be positive", ErrServiceInvalid)
	}
	if req.Description != nil {
		d := strings.TrimSpace(*req.Description)
		if d == "" {
			req.Description = nil
		} else {
			req.Description = &d
		}
	}
	return req, nil
}
