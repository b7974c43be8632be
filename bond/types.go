// Package bond defines coupon-bearing instruments and their deterministic
// cash-flow schedules.
package bond

import (
	"time"

	"github.com/quantive/filib/calendar"
	"github.com/quantive/filib/numerics"
	"github.com/quantive/filib/utils"
)

// Cashflow is a single dated cash payment.
//
// Amounts are in currency units (e.g., EUR), not price-per-100. The final
// flow of a bond schedule carries the principal alongside its coupon.
type Cashflow struct {
	Date      time.Time
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// FixedRateBond is an immutable fixed-coupon bond definition. Construct it
// once at the call site; schedules and accruals are recomputed on demand
// from these fields, never cached.
type FixedRateBond struct {
	// FaceValue is the notional repaid at maturity, in currency units.
	FaceValue float64
	// CouponRate is the annual coupon as a decimal (0.05 == 5%).
	CouponRate float64
	// StartDate is the issue (interest accrual start) date.
	StartDate time.Time
	// MaturityDate is the final redemption date. Must be after StartDate.
	MaturityDate time.Time
	// FreqMonths is the coupon period length in months (12 = annual).
	FreqMonths int
	// DayCount governs coupon accrual.
	DayCount utils.DayCount
	// Calendar and Roll adjust payment dates to business days. Adjustment
	// moves payment timing only; accrual is measured on unadjusted dates.
	Calendar calendar.Calendar
	Roll     calendar.Roll
}

// Validate checks the structural invariants of the bond definition.
func (b FixedRateBond) Validate() error {
	if !b.MaturityDate.After(b.StartDate) {
		return &numerics.DomainError{Op: "bond", Reason: "maturity date must be after start date"}
	}
	if b.FreqMonths <= 0 {
		return &numerics.DomainError{Op: "bond", Reason: "payment frequency months must be positive"}
	}
	return nil
}

// Maturity returns the bond's maturity date.
func (b FixedRateBond) Maturity() time.Time { return b.MaturityDate }

// DayCountConvention returns the bond's accrual day count.
func (b FixedRateBond) DayCountConvention() utils.DayCount { return b.DayCount }
