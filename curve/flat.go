package curve

import (
	"math"
	"time"

	"github.com/quantive/filib/utils"
)

// flatCurve discounts every date at a single rate.
type flatCurve struct {
	ref  time.Time
	rate float64
	freq int
	dc   utils.DayCount
}

// NewFlat builds a curve with one rate at every maturity.
//
// freq is the compounding frequency per year: 0 means continuous compounding,
// DF(t) = exp(−r·t); n > 0 means discrete compounding, DF(t) = (1 + r/n)^(−n·t).
func NewFlat(referenceDate time.Time, rate float64, freq int, dayCount utils.DayCount) DiscountCurve {
	return &flatCurve{ref: referenceDate, rate: rate, freq: freq, dc: dayCount}
}

func (c *flatCurve) DF(t time.Time) float64 {
	x := utils.YearFraction(c.ref, t, c.dc)
	if x <= 0 {
		return 1.0
	}
	return 1.0 / CompoundFactor(c.rate, x, c.freq)
}

func (c *flatCurve) ReferenceDate() time.Time { return c.ref }

// CompoundFactor is the growth multiplier of a unit amount over t years.
//
// freq 0 selects continuous compounding, exp(r·t); freq n > 0 selects
// discrete compounding, (1 + r/n)^(n·t).
func CompoundFactor(rate, t float64, freq int) float64 {
	if freq == 0 {
		return math.Exp(rate * t)
	}
	f := float64(freq)
	return math.Pow(1.0+rate/f, f*t)
}
