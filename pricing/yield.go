package pricing

import (
	"time"

	"github.com/quantive/filib/curve"
	"github.com/quantive/filib/numerics"
)

// yieldGuess starts the solver mid-range; coupon-bond price functions are
// monotone in yield, so Newton converges from here for any sane market price.
const yieldGuess = 0.05

// ImpliedYield solves for the flat rate y such that discounting the
// instrument on a flat curve at y (compounded per freq; 0 = continuous)
// reproduces the market dirty price.
//
// Solver failures (*numerics.ConvergenceError, *numerics.
// SingularDerivativeError) propagate unchanged: they are the instrument-level
// manifestation of numerical failure and are never swallowed. A matured
// instrument has no price function left to invert, so the valuation date
// must precede maturity or *ValuationDateError is returned.
func ImpliedYield(inst Instrument, marketPrice float64, valuationDate time.Time, freq int) (float64, error) {
	if inst == nil {
		return 0, ErrNilInstrument
	}
	if !inst.Maturity().After(valuationDate) {
		return 0, &ValuationDateError{ValuationDate: valuationDate, Maturity: inst.Maturity()}
	}

	var priceErr error
	objective := func(y float64) float64 {
		flat := curve.NewFlat(valuationDate, y, freq, inst.DayCountConvention())
		pv, err := PriceInstrument(inst, flat, valuationDate)
		if err != nil && priceErr == nil {
			priceErr = err
		}
		return pv - marketPrice
	}

	y, err := numerics.NewtonSolve(objective, yieldGuess, 0, 0)
	if priceErr != nil {
		return 0, priceErr
	}
	if err != nil {
		return 0, err
	}
	return y, nil
}
