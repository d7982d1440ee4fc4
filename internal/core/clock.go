package core

import "time"

// Clock supplies wall time and the zone that defines month boundaries.
// The zero value uses time.Now in UTC.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func (c Clock) Time() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now()
}

// CurrentMonth is the month containing Time() in Location.
func (c Clock) CurrentMonth() Month {
	return CurrentMonth(c.Time(), c.Location)
}

// FixedClock always reports t. Useful for tests and reports.
func FixedClock(t time.Time, loc *time.Location) Clock {
	return Clock{Now: func() time.Time { return t }, Location: loc}
}
