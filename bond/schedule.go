package bond

import (
	"time"

	"github.com/quantive/filib/utils"
)

// periodBoundaries walks coupon dates backward from maturity in FreqMonths
// steps and returns the unadjusted period boundaries in ascending order,
// starting at StartDate and ending at MaturityDate.
//
// Generating backward is a fixed choice: when the tenor is not an exact
// multiple of the frequency, the resulting short stub is always the first
// period of the schedule.
func (b FixedRateBond) periodBoundaries() ([]time.Time, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	var reversed []time.Time
	for i := 0; ; i++ {
		d := utils.AddMonth(b.MaturityDate, -i*b.FreqMonths)
		if !d.After(b.StartDate) {
			break
		}
		reversed = append(reversed, d)
	}

	boundaries := make([]time.Time, 0, len(reversed)+1)
	boundaries = append(boundaries, b.StartDate)
	for i := len(reversed) - 1; i >= 0; i-- {
		boundaries = append(boundaries, reversed[i])
	}
	return boundaries, nil
}

// Cashflows generates the bond's coupon and redemption flows.
//
// Each period pays FaceValue × CouponRate × YearFraction over the unadjusted
// period boundaries; payment dates are the period end dates rolled to
// business days. The final flow combines the last coupon with the principal.
// Identical inputs always produce an identical sequence.
func (b FixedRateBond) Cashflows() ([]Cashflow, error) {
	boundaries, err := b.periodBoundaries()
	if err != nil {
		return nil, err
	}

	flows := make([]Cashflow, 0, len(boundaries)-1)
	for i := 1; i < len(boundaries); i++ {
		periodStart := boundaries[i-1]
		periodEnd := boundaries[i]

		payDate, err := b.Calendar.Adjust(periodEnd, b.Roll)
		if err != nil {
			return nil, err
		}

		cf := Cashflow{
			Date:   payDate,
			Coupon: b.FaceValue * b.CouponRate * utils.YearFraction(periodStart, periodEnd, b.DayCount),
		}
		if i == len(boundaries)-1 {
			cf.Principal = b.FaceValue
		}
		flows = append(flows, cf)
	}
	return flows, nil
}

// AccruedInterest returns the coupon accrued from the last unadjusted coupon
// date on or before the valuation date up to the valuation date. It is zero
// before issue, on coupon dates, and at or after maturity.
func (b FixedRateBond) AccruedInterest(valuationDate time.Time) (float64, error) {
	boundaries, err := b.periodBoundaries()
	if err != nil {
		return 0, err
	}
	if !valuationDate.After(b.StartDate) || !b.MaturityDate.After(valuationDate) {
		return 0, nil
	}

	periodStart := boundaries[0]
	for _, d := range boundaries[1:] {
		if d.After(valuationDate) {
			break
		}
		periodStart = d
	}
	if periodStart.Equal(valuationDate) {
		return 0, nil
	}
	return b.FaceValue * b.CouponRate * utils.YearFraction(periodStart, valuationDate, b.DayCount), nil
}
