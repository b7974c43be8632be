package pricing

import (
	"time"

	"github.com/quantive/filib/curve"
)

// DefaultBump is the curve perturbation used when callers pass a
// non-positive bump size: one basis point.
//
// The bump is a numerical tradeoff, not a validated bound. A much larger
// bump degrades the central-difference accuracy of duration and convexity; a
// much smaller one amplifies floating-point cancellation.
const DefaultBump = 1e-4

// Metrics are the price sensitivities of one instrument under parallel
// curve shifts.
type Metrics struct {
	// Price is the unshifted dirty present value.
	Price float64
	// Duration is the modified duration, −(1/P)·dP/dy.
	Duration float64
	// Convexity is (1/P)·d²P/dy².
	Convexity float64
	// DV01 is the price change for a one basis point rate rise (positive
	// for a long bond position).
	DV01 float64
}

// CalculateRiskMetrics revalues the instrument on the base curve and on
// parallel shifts of ±bump, and derives duration, convexity and DV01 by
// central differences. The base curve is never mutated. A zero base price
// (e.g., a matured instrument) yields all-zero metrics.
func CalculateRiskMetrics(inst Instrument, crv curve.DiscountCurve, valuationDate time.Time, bump float64) (Metrics, error) {
	if bump <= 0 {
		bump = DefaultBump
	}

	p0, err := PriceInstrument(inst, crv, valuationDate)
	if err != nil {
		return Metrics{}, err
	}
	if p0 == 0 {
		return Metrics{}, nil
	}

	pUp, err := PriceInstrument(inst, curve.Shift(crv, bump), valuationDate)
	if err != nil {
		return Metrics{}, err
	}
	pDown, err := PriceInstrument(inst, curve.Shift(crv, -bump), valuationDate)
	if err != nil {
		return Metrics{}, err
	}

	duration := -(pUp - pDown) / (2 * p0 * bump)
	convexity := (pUp - 2*p0 + pDown) / (p0 * bump * bump)

	return Metrics{
		Price:     p0,
		Duration:  duration,
		Convexity: convexity,
		DV01:      duration * p0 * 1e-4,
	}, nil
}
