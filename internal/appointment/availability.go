package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/williandsn10/asbarberpro/internal/logger"
	"github.com/williandsn10/asbarberpro/internal/metrics"
	"github.com/williandsn10/asbarberpro/internal/obs"
	"github.com/williandsn10/asbarberpro/internal/schedule"
)

// ErrDataUnavailable means an input to the slot computation could not be read.
// The computation fails as a whole; it never proceeds without exclusions.
var ErrDataUnavailable = errors.New("schedule data unavailable")

type SettingsReader interface {
	// WorkingHours returns nil when no hours were saved.
	WorkingHours(ctx context.Context) (*schedule.WorkingHours, error)
	ClosedDays(ctx context.Context) (schedule.ClosedDays, error)
}

type BlockReader interface {
	BlocksOn(ctx context.Context, date schedule.Date) ([]schedule.Block, error)
}

// ScheduleSource supplies the admin-managed inputs of the slot computation.
type ScheduleSource interface {
	SettingsReader
	BlockReader
}

type scheduleSource struct {
	SettingsReader
	BlockReader
}

func NewScheduleSource(settings SettingsReader, blocks BlockReader) ScheduleSource {
	return scheduleSource{SettingsReader: settings, BlockReader: blocks}
}

// Availability fetches the inputs for a date and runs the slot engine over them.
type Availability struct {
	source ScheduleSource
	repo   Repository
}

func NewAvailability(source ScheduleSource, repo Repository) *Availability {
	return &Availability{source: source, repo: repo}
}

func (a *Availability) Slots(ctx context.Context, date schedule.Date) ([]schedule.Clock, error) {
	ctx, span := obs.Tracer("appointment").Start(ctx, "availability.slots")
	defer span.End()
	span.SetAttributes(attribute.String("date", date.String()))

	start := time.Now()
	slots, err := a.compute(ctx, date)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		metrics.RecordAvailability("ok", elapsed)
		span.SetAttributes(attribute.Int("slots", len(slots)))
	case errors.Is(err, schedule.ErrConfiguration):
		metrics.RecordAvailability("misconfigured", elapsed)
		logger.Warn("working hours misconfigured", "date", date.String(), "error", err)
		span.SetStatus(codes.Error, err.Error())
	default:
		metrics.RecordAvailability("unavailable", elapsed)
		logger.Error("availability inputs unavailable", "date", date.String(), "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return slots, err
}

func (a *Availability) compute(ctx context.Context, date schedule.Date) ([]schedule.Clock, error) {
	hours, err := a.source.WorkingHours(ctx)
	if err != nil {
		return nil, unavailable("working hours", err)
	}

	closed, err := a.source.ClosedDays(ctx)
	if err != nil {
		return nil, unavailable("closed days", err)
	}

	blocks, err := a.source.BlocksOn(ctx, date)
	if err != nil {
		return nil, unavailable("blocked times", err)
	}

	active, err := a.repo.ListActiveByDate(ctx, date)
	if err != nil {
		return nil, unavailable("appointments", err)
	}

	booked := make([]schedule.Booked, 0, len(active))
	for _, ap := range active {
		booked = append(booked, ap.Booked())
	}

	return schedule.AvailableSlots(schedule.Input{
		Date:       date,
		Hours:      hours,
		ClosedDays: closed,
		Blocks:     blocks,
		Booked:     booked,
	})
}

// unavailable wraps a fetch failure. A stored payload that does not parse is a
// configuration problem, not an outage, and keeps its own error.
func unavailable(what string, err error) error {
	if errors.Is(err, schedule.ErrConfiguration) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrDataUnavailable, what, err)
}
