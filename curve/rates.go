package curve

import (
	"math"
	"time"

	"github.com/quantive/filib/utils"
)

// ZeroRate extracts the spot rate implied by the curve's discount factor at
// the target date. freq 0 returns the continuously compounded rate,
// r = −ln(DF)/t; freq n > 0 returns the discretely compounded equivalent.
// The rate is 0 when the target date is on or before the reference date.
func ZeroRate(crv DiscountCurve, target time.Time, dayCount utils.DayCount, freq int) (float64, error) {
	if crv == nil {
		return 0, ErrNilCurve
	}
	t := utils.YearFraction(crv.ReferenceDate(), target, dayCount)
	if t <= 0 {
		return 0, nil
	}
	df := crv.DF(target)
	if freq == 0 {
		return -math.Log(df) / t, nil
	}
	f := float64(freq)
	return f * (math.Pow(df, -1.0/(f*t)) - 1.0), nil
}

// ForwardRate returns the rate implied between two future dates by the ratio
// of their discount factors. freq 0 returns the continuously compounded
// forward, ln(DF(start)/DF(end))/τ; freq n > 0 returns the simple forward,
// (DF(start)/DF(end) − 1)/τ. The compounding convention is always explicit.
func ForwardRate(crv DiscountCurve, start, end time.Time, dayCount utils.DayCount, freq int) (float64, error) {
	if crv == nil {
		return 0, ErrNilCurve
	}
	tau := utils.YearFraction(start, end, dayCount)
	if tau <= 0 {
		return 0, nil
	}
	ratio := crv.DF(start) / crv.DF(end)
	if freq == 0 {
		return math.Log(ratio) / tau, nil
	}
	return (ratio - 1.0) / tau, nil
}
