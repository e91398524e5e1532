package domain

import "time"

// DayLayout is the wire format for calendar dates.
const DayLayout = "2006-01-02"

// Day truncates t to its calendar date at midnight UTC. Dates are compared
// as days everywhere in the booking rules, never as instants.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// Overlaps reports whether [aStart, aEnd] and [bStart, bEnd] share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// Period is an inclusive range of days. A zero bound is open.
type Period struct {
	From time.Time
	To   time.Time
}

// Trailing is the inclusive period of d's whole days ending on now's day:
// 30 days ending 2025-05-15 start on 2025-04-16. A d under one day still
// covers today.
func Trailing(now time.Time, d time.Duration) Period {
	to := Day(now)
	if d < 24*time.Hour {
		return Period{From: to, To: to}
	}
	return Period{From: Day(to.Add(-d + 24*time.Hour)), To: to}
}

func (p Period) Contains(t time.Time) bool {
	t = Day(t)
	if !p.From.IsZero() && t.Before(Day(p.From)) {
		return false
	}
	if !p.To.IsZero() && t.After(Day(p.To)) {
		return false
	}
	return true
}
