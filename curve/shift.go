package curve

import (
	"math"
	"time"

	"github.com/quantive/filib/utils"
)

// shiftedCurve composes a parallel zero-rate shift over a base curve.
type shiftedCurve struct {
	base  DiscountCurve
	delta float64
}

// Shift returns a new curve whose continuously compounded zero rates equal
// the base curve's shifted by delta at every date: DF'(d) = DF(d)·exp(−δ·t).
// The base curve is never mutated; shifted curves compose freely.
//
// The shift time axis is ACT/365F, the standard convention for curve time
// regardless of the legs being discounted.
func Shift(base DiscountCurve, delta float64) DiscountCurve {
	return &shiftedCurve{base: base, delta: delta}
}

func (c *shiftedCurve) DF(t time.Time) float64 {
	x := utils.YearFraction(c.base.ReferenceDate(), t, utils.Act365)
	if x <= 0 {
		return 1.0
	}
	return c.base.DF(t) * math.Exp(-c.delta*x)
}

func (c *shiftedCurve) ReferenceDate() time.Time { return c.base.ReferenceDate() }
