package calendar

import "time"

// Policy decides which dates may be selected for an attendance entry.
type Policy struct {
	ExcludeWeekends bool
	DisableFuture   bool
	Weekend         [2]time.Weekday
	// Now defaults to time.Now. Only its calendar date is used.
	Now func() time.Time
}

// DefaultPolicy: Friday/Saturday weekend, no future dates.
func DefaultPolicy() Policy {
	return Policy{
		ExcludeWeekends: true,
		DisableFuture:   true,
		Weekend:         [2]time.Weekday{time.Friday, time.Saturday},
		Now:             time.Now,
	}
}

// DateOnly drops the time of day and normalises to UTC, keeping the wall-clock date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (p Policy) Today() time.Time {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return DateOnly(now())
}

func (p Policy) IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == p.Weekend[0] || wd == p.Weekend[1]
}

func (p Policy) IsFuture(t time.Time) bool {
	return DateOnly(t).After(p.Today())
}

func (p Policy) IsDisabled(t time.Time) bool {
	if p.ExcludeWeekends && p.IsWeekend(t) {
		return true
	}
	if p.DisableFuture && p.IsFuture(t) {
		return true
	}
	return false
}

// NearestValid clamps future dates to today, then walks back over weekend days.
// Applying it to its own result returns the same date.
func (p Policy) NearestValid(t time.Time) time.Time {
	d := DateOnly(t)
	if today := p.Today(); p.DisableFuture && d.After(today) {
		d = today
	}
	for p.ExcludeWeekends && p.IsWeekend(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}
