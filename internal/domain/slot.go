package domain

import "time"

// Slot is a bookable candidate interval; it is derived and never persisted
type Slot struct {
	Start time.Time
	End   time.Time
}

// Interval returns the slot as an interval
func (s Slot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}
