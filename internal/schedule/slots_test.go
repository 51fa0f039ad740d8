package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clocks(values ...string) []Clock {
	out := make([]Clock, 0, len(values))
	for _, v := range values {
		out = append(out, MustParseClock(v))
	}
	return out
}

func TestGenerateSlots_MorningWindow(t *testing.T) {
	got := GenerateSlots(MustParseClock("08:00"), MustParseClock("12:00"), 30)

	assert.Equal(t, clocks("08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30"), got)
	assert.NotContains(t, got, MustParseClock("12:00"))
}

func TestGenerateSlots_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		opening  string
		closing  string
		interval int
		want     []Clock
	}{
		{name: "interval equals window", opening: "08:00", closing: "09:00", interval: 60, want: clocks("08:00")},
		{name: "interval larger than window", opening: "08:00", closing: "08:20", interval: 45, want: clocks("08:00")},
		{name: "uneven last slot", opening: "08:00", closing: "09:10", interval: 30, want: clocks("08:00", "08:30", "09:00")},
		{name: "opening equals closing", opening: "10:00", closing: "10:00", interval: 30, want: []Clock{}},
		{name: "opening after closing", opening: "19:00", closing: "08:00", interval: 30, want: []Clock{}},
		{name: "zero interval", opening: "08:00", closing: "19:00", interval: 0, want: []Clock{}},
		{name: "negative interval", opening: "08:00", closing: "19:00", interval: -15, want: []Clock{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSlots(MustParseClock(tt.opening), MustParseClock(tt.closing), tt.interval)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateSlots_BoundsAndCount(t *testing.T) {
	for opening := Clock(0); opening < minutesPerDay; opening += 95 {
		for closing := opening + 1; closing < minutesPerDay; closing += 131 {
			for _, interval := range []int{1, 7, 15, 30, 45, 60, 90, 720} {
				slots := GenerateSlots(opening, closing, interval)

				window := int(closing - opening)
				want := window / interval
				if window%interval != 0 {
					want++
				}
				if !assert.Len(t, slots, want, "opening=%s closing=%s interval=%d", opening, closing, interval) {
					return
				}

				for i, s := range slots {
					assert.True(t, opening <= s && s < closing, "slot %s outside [%s,%s)", s, opening, closing)
					if i > 0 {
						assert.Equal(t, Clock(interval), s-slots[i-1])
					}
				}
			}
		}
	}
}

func TestGenerateSlots_Restartable(t *testing.T) {
	first := GenerateSlots(NewClock(8, 0), NewClock(19, 0), 30)
	second := GenerateSlots(NewClock(8, 0), NewClock(19, 0), 30)

	assert.Equal(t, first, second)
	assert.Len(t, first, 22)
}
