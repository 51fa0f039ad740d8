package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrConfiguration marks business-hours settings that cannot produce a schedule.
var ErrConfiguration = errors.New("invalid schedule configuration")

type WorkingHours struct {
	OpeningTime  Clock `json:"opening_time"`
	ClosingTime  Clock `json:"closing_time"`
	SlotInterval int   `json:"slot_interval"`
}

// DefaultWorkingHours applies until an admin saves working hours for the first time.
var DefaultWorkingHours = WorkingHours{
	OpeningTime:  NewClock(8, 0),
	ClosingTime:  NewClock(19, 0),
	SlotInterval: 30,
}

// ResolveWorkingHours returns the stored hours, or the defaults when nothing is stored.
// Stored values are returned as-is, even when they fail Validate.
func ResolveWorkingHours(stored *WorkingHours) WorkingHours {
	if stored == nil {
		return DefaultWorkingHours
	}
	return *stored
}

func (h WorkingHours) Validate() error {
	if !h.OpeningTime.Valid() || !h.ClosingTime.Valid() {
		return fmt.Errorf("%w: times must be within a single day", ErrConfiguration)
	}
	if h.OpeningTime >= h.ClosingTime {
		return fmt.Errorf("%w: opening time %s must be before closing time %s",
			ErrConfiguration, h.OpeningTime, h.ClosingTime)
	}
	if h.SlotInterval <= 0 {
		return fmt.Errorf("%w: slot interval must be positive, got %d", ErrConfiguration, h.SlotInterval)
	}
	return nil
}

// ClosedDays lists the weekdays on which the shop never opens.
type ClosedDays []time.Weekday

// NewClosedDays validates weekday numbers (0 = Sunday) and returns them sorted without duplicates.
func NewClosedDays(days ...int) (ClosedDays, error) {
	seen := make(map[int]bool, len(days))
	out := make(ClosedDays, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("%w: weekday %d out of range 0..6", ErrConfiguration, d)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, time.Weekday(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (c ClosedDays) Contains(day time.Weekday) bool {
	for _, d := range c {
		if d == day {
			return true
		}
	}
	return false
}

// Ints returns the weekdays as plain numbers, 0 = Sunday.
func (c ClosedDays) Ints() []int {
	out := make([]int, len(c))
	for i, d := range c {
		out[i] = int(d)
	}
	return out
}
