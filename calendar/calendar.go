// Package calendar provides holiday calendars and business-day adjustment.
//
// A Calendar is an immutable holiday set; callers construct calendars at the
// call site and pass them explicitly. There is no process-wide default
// calendar or registry.
package calendar

import (
	"fmt"
	"time"
)

// dateKey formats a date for holiday-set membership, ignoring any time component.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Calendar is an immutable set of holiday dates. The zero value is a
// weekend-only calendar.
type Calendar struct {
	holidays map[string]struct{}
}

// New builds a Calendar from the given holiday dates.
func New(holidays ...time.Time) Calendar {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[dateKey(h)] = struct{}{}
	}
	return Calendar{holidays: set}
}

// IsHoliday reports whether t is in the calendar's holiday set.
func (c Calendar) IsHoliday(t time.Time) bool {
	_, ok := c.holidays[dateKey(t)]
	return ok
}

// IsBusinessDay checks weekends and the holiday set.
func (c Calendar) IsBusinessDay(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !c.IsHoliday(t)
}

// Roll selects a business-day adjustment convention.
type Roll string

const (
	Following         Roll = "Following"
	ModifiedFollowing Roll = "ModifiedFollowing"
	Preceding         Roll = "Preceding"
)

// maxAdjustDays bounds the business-day search. A calendar with no business
// day inside this window is considered malformed.
const maxAdjustDays = 14

// InvalidCalendarError is returned when no business day exists within the
// adjustment search window, signaling a malformed calendar.
type InvalidCalendarError struct {
	Date time.Time
	Roll Roll
}

func (e *InvalidCalendarError) Error() string {
	return fmt.Sprintf("calendar: no business day within %d days of %s under %s",
		maxAdjustDays, e.Date.Format("2006-01-02"), e.Roll)
}

// Adjust rolls t to a business day under the given convention.
//
// Following advances one day at a time; Preceding retreats; ModifiedFollowing
// applies Following, but falls back to Preceding from the original date when
// the result crosses into the next calendar month. The search is bounded and
// fails with *InvalidCalendarError rather than looping forever.
func (c Calendar) Adjust(t time.Time, roll Roll) (time.Time, error) {
	switch roll {
	case Following:
		return c.roll(t, 1, roll)
	case Preceding:
		return c.roll(t, -1, roll)
	case ModifiedFollowing:
		adjusted, err := c.roll(t, 1, roll)
		if err != nil {
			return time.Time{}, err
		}
		if adjusted.Month() != t.Month() {
			return c.roll(t, -1, roll)
		}
		return adjusted, nil
	default:
		return time.Time{}, fmt.Errorf("calendar: unknown roll convention %q", roll)
	}
}

func (c Calendar) roll(t time.Time, step int, roll Roll) (time.Time, error) {
	d := t
	for i := 0; i <= maxAdjustDays; i++ {
		if c.IsBusinessDay(d) {
			return d, nil
		}
		d = d.AddDate(0, 0, step)
	}
	return time.Time{}, &InvalidCalendarError{Date: t, Roll: roll}
}

// AddBusinessDays advances n business days (n can be negative).
func (c Calendar) AddBusinessDays(t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if c.IsBusinessDay(t) {
			n -= step
		}
	}
	return t
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func (c Calendar) LastBusinessDayOfMonth(t time.Time) time.Time {
	nextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return c.AddBusinessDays(nextMonth, -1)
}
