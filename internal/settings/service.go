package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx/types"

	"github.com/williandsn10/asbarberpro/internal/api"
	"github.com/williandsn10/asbarberpro/internal/logger"
	"github.com/williandsn10/asbarberpro/internal/metrics"
	"github.com/williandsn10/asbarberpro/internal/schedule"
)

var ErrInvalidSettings = errors.New("invalid settings")

type Service interface {
	// WorkingHours returns the stored hours, or nil when none were saved.
	WorkingHours(ctx context.Context) (*schedule.WorkingHours, error)
	// EffectiveWorkingHours resolves stored hours against the defaults.
	EffectiveWorkingHours(ctx context.Context) (hours schedule.WorkingHours, isDefault bool, err error)
	UpdateWorkingHours(ctx context.Context, req UpdateWorkingHoursRequest) (schedule.WorkingHours, error)
	ClosedDays(ctx context.Context) (schedule.ClosedDays, error)
	UpdateClosedDays(ctx context.Context, req UpdateClosedDaysRequest) (schedule.ClosedDays, error)
}

type service struct {
	repo  Repository
	cache *Cache
}

// NewService builds the settings service. cache may be nil.
func NewService(repo Repository, cache *Cache) Service {
	return &service{
		repo:  repo,
		cache: cache,
	}
}

func (s *service) WorkingHours(ctx context.Context) (*schedule.WorkingHours, error) {
	raw, err := s.load(ctx, KeyWorkingHours)
	if errors.Is(err, ErrSettingNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.parseWorkingHours(raw)
}

func (s *service) EffectiveWorkingHours(ctx context.Context) (schedule.WorkingHours, bool, error) {
	stored, err := s.WorkingHours(ctx)
	if err != nil {
		return schedule.WorkingHours{}, false, err
	}
	return schedule.ResolveWorkingHours(stored), stored == nil, nil
}

func (s *service) UpdateWorkingHours(ctx context.Context, req UpdateWorkingHoursRequest) (schedule.WorkingHours, error) {
	opening, err := schedule.ParseClock(req.OpeningTime)
	if err != nil {
		return schedule.WorkingHours{}, fmt.Errorf("%w: opening_time: %w", ErrInvalidSettings, err)
	}
	closing, err := schedule.ParseClock(req.ClosingTime)
	if err != nil {
		return schedule.WorkingHours{}, fmt.Errorf("%w: closing_time: %w", ErrInvalidSettings, err)
	}
	if !allowedInterval(req.SlotInterval) {
		return schedule.WorkingHours{}, fmt.Errorf("%w: slot_interval %d not allowed", ErrInvalidSettings, req.SlotInterval)
	}

	hours := schedule.WorkingHours{OpeningTime: opening, ClosingTime: closing, SlotInterval: req.SlotInterval}
	if err := hours.Validate(); err != nil {
		return schedule.WorkingHours{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	value, err := json.Marshal(hours)
	if err != nil {
		return schedule.WorkingHours{}, err
	}
	if err := s.store(ctx, KeyWorkingHours, value); err != nil {
		return schedule.WorkingHours{}, err
	}

	logger.Info("working hours updated", "opening", opening.String(), "closing", closing.String(), "interval", req.SlotInterval)
	return hours, nil
}

func (s *service) ClosedDays(ctx context.Context) (schedule.ClosedDays, error) {
	raw, err := s.load(ctx, KeyClosedDays)
	if errors.Is(err, ErrSettingNotFound) {
		return schedule.ClosedDays{}, nil
	}
	if err != nil {
		return nil, err
	}

	var days []int
	if err := api.DecodeStrict(raw, &days); err != nil {
		return nil, fmt.Errorf("%w: closed_days: %v", schedule.ErrConfiguration, err)
	}
	return schedule.NewClosedDays(days...)
}

func (s *service) UpdateClosedDays(ctx context.Context, req UpdateClosedDaysRequest) (schedule.ClosedDays, error) {
	days, err := schedule.NewClosedDays(req.Days...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	value, err := json.Marshal(days.Ints())
	if err != nil {
		return nil, err
	}
	if err := s.store(ctx, KeyClosedDays, value); err != nil {
		return nil, err
	}

	logger.Info("closed days updated", "days", days.Ints())
	return days, nil
}

// parseWorkingHours decodes the stored document without correcting it.
func (s *service) parseWorkingHours(raw types.JSONText) (*schedule.WorkingHours, error) {
	var doc workingHoursDoc
	if err := api.DecodeStrict(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: working_hours: %v", schedule.ErrConfiguration, err)
	}
	if errs := api.ValidateStruct(doc); len(errs) > 0 {
		return nil, fmt.Errorf("%w: working_hours: %s", schedule.ErrConfiguration, errs[0].Message)
	}

	opening, err := schedule.ParseClock(*doc.OpeningTime)
	if err != nil {
		return nil, fmt.Errorf("%w: working_hours.opening_time: %v", schedule.ErrConfiguration, err)
	}
	closing, err := schedule.ParseClock(*doc.ClosingTime)
	if err != nil {
		return nil, fmt.Errorf("%w: working_hours.closing_time: %v", schedule.ErrConfiguration, err)
	}

	return &schedule.WorkingHours{
		OpeningTime:  opening,
		ClosingTime:  closing,
		SlotInterval: *doc.SlotInterval,
	}, nil
}

func (s *service) load(ctx context.Context, key string) (types.JSONText, error) {
	if s.cache != nil {
		val, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.RecordSettingsCache("error")
			logger.Warn("settings cache read failed", "key", key, "error", err)
		case ok:
			metrics.RecordSettingsCache("hit")
			return val, nil
		default:
			metrics.RecordSettingsCache("miss")
		}
	}

	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Fill(ctx, key, setting.Value); err != nil {
			logger.Warn("settings cache write failed", "key", key, "error", err)
		}
	}
	return setting.Value, nil
}

// store saves the value and writes it through to the cache. If the write
// fails the key is dropped instead.
func (s *service) store(ctx context.Context, key string, value []byte) error {
	saved, err := s.repo.Upsert(ctx, key, types.JSONText(value))
	if err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}

	if err := s.cache.Set(ctx, key, saved.Value); err != nil {
		logger.Warn("settings cache write failed", "key", key, "error", err)
		if err := s.cache.Invalidate(ctx, key); err != nil {
			logger.Warn("settings cache invalidation failed", "key", key, "error", err)
		}
	}
	return nil
}

func allowedInterval(minutes int) bool {
	for _, m := range AllowedSlotIntervals {
		if m == minutes {
			return true
		}
	}
	return false
}
