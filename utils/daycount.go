package utils

import "time"

// DayCount selects a day count convention for year fraction computation.
type DayCount string

const (
	Act365    DayCount = "ACT/365F"
	Act360    DayCount = "ACT/360"
	Thirty360 DayCount = "30/360"
)

// DaysBetween returns the number of whole calendar days from start to end.
//
// Both arguments are normalized to midnight UTC first, so the count is exact
// integer arithmetic regardless of any time-of-day component on the inputs.
func DaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s) / (24 * time.Hour))
}

// YearFraction computes the year fraction between two dates under the given
// day count convention. The day count is computed in exact integer days
// before dividing, so repeated accrual periods do not accumulate
// floating-point drift.
//
// Supported conventions: ACT/365F, ACT/360, 30/360 (US bond basis: start day
// 31 is clipped to 30; the end day is clipped only when the start day already
// clipped to 30). Unknown conventions fall back to ACT/365F.
func YearFraction(start, end time.Time, convention DayCount) float64 {
	switch convention {
	case Act360:
		return float64(DaysBetween(start, end)) / 360.0
	case Thirty360:
		d1 := start.Day()
		d2 := end.Day()
		if d1 == 31 {
			d1 = 30
		}
		if d2 == 31 && d1 == 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default:
		return float64(DaysBetween(start, end)) / 365.0
	}
}
