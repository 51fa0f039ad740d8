package schedule

import "time"

// Block is the part of an admin blocked period the filter needs.
type Block struct {
	IsFullDay bool
	StartTime *Clock
	EndTime   *Clock
}

// Covers reports whether slot falls inside the block. Ranged blocks are
// half-open: the start is blocked, the end is bookable again. A ranged block
// missing either bound covers nothing.
func (b Block) Covers(slot Clock) bool {
	if b.IsFullDay {
		return true
	}
	if b.StartTime == nil || b.EndTime == nil {
		return false
	}
	return *b.StartTime <= slot && slot < *b.EndTime
}

// Booked is an existing appointment start time on the day being filtered.
type Booked struct {
	Time      Clock
	Cancelled bool
}

// FilterAvailable removes the candidates that cannot be booked on date.
// A closed weekday or a full-day block empties the day; otherwise slots inside
// a ranged block or matching the start time of a live appointment are dropped.
// Candidate order is preserved.
func FilterAvailable(candidates []Clock, date time.Time, closed ClosedDays, blocks []Block, booked []Booked) []Clock {
	if closed.Contains(date.Weekday()) {
		return []Clock{}
	}
	for _, b := range blocks {
		if b.IsFullDay {
			return []Clock{}
		}
	}

	taken := make(map[Clock]bool, len(booked))
	for _, a := range booked {
		if !a.Cancelled {
			taken[a.Time] = true
		}
	}

	available := make([]Clock, 0, len(candidates))
	for _, slot := range candidates {
		if taken[slot] || blockedAt(blocks, slot) {
			continue
		}
		available = append(available, slot)
	}
	return available
}

func blockedAt(blocks []Block, slot Clock) bool {
	for _, b := range blocks {
		if b.Covers(slot) {
			return true
		}
	}
	return false
}

// Input is everything one availability computation needs, already fetched.
type Input struct {
	Date       Date
	Hours      *WorkingHours
	ClosedDays ClosedDays
	Blocks     []Block
	Booked     []Booked
}

// AvailableSlots resolves the working hours, generates the day's candidates and
// filters them. Misconfigured hours yield ErrConfiguration, never a slot list.
func AvailableSlots(in Input) ([]Clock, error) {
	hours := ResolveWorkingHours(in.Hours)
	if err := hours.Validate(); err != nil {
		return nil, err
	}

	candidates := GenerateSlots(hours.OpeningTime, hours.ClosingTime, hours.SlotInterval)
	return FilterAvailable(candidates, in.Date.Time, in.ClosedDays, in.Blocks, in.Booked), nil
}
