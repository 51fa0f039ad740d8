package schedule

// GenerateSlots lists the offerable start times from opening up to, but never
// including, closing. The result is empty when the window is empty or the
// interval is not positive.
func GenerateSlots(opening, closing Clock, interval int) []Clock {
	if interval <= 0 || opening >= closing {
		return []Clock{}
	}

	slots := make([]Clock, 0, (int(closing-opening)+interval-1)/interval)
	for s := opening; s < closing; s = s.Add(interval) {
		slots = append(slots, s)
	}
	return slots
}
