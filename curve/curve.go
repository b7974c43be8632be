// Package curve models a discount curve as a pure mapping from date to
// discount factor. Curves carry no mutable state: shifted or derived curves
// are new values composed over the base, and evaluating a curve twice with
// the same date always returns the same factor.
package curve

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/quantive/filib/numerics"
	"github.com/quantive/filib/utils"
)

// ErrNilCurve is returned when a required curve argument is nil.
var ErrNilCurve = errors.New("curve: nil curve")

// DiscountCurve provides discount factors for valuation.
//
// DF(referenceDate) is 1 by construction, and factors for dates on or after
// the reference date are positive and at most 1 for non-negative rates.
type DiscountCurve interface {
	DF(t time.Time) float64
	ReferenceDate() time.Time
}

// Interpolation selects how discount factors are interpolated between pillars.
type Interpolation string

const (
	Linear    Interpolation = "linear"
	LogLinear Interpolation = "log-linear"
)

// Pillar is a reference point on a discount curve.
type Pillar struct {
	Date time.Time
	DF   float64
}

// pillarCurve interpolates discount factors over a fixed time axis.
type pillarCurve struct {
	ref    time.Time
	points []numerics.Point
	method Interpolation
	dc     utils.DayCount
}

// NewFromDiscountFactors builds a curve from pillar discount factors.
//
// Pillars are sorted by date; the time axis is the year fraction from the
// reference date under dayCount. A node (t=0, DF=1) is prepended when the
// first pillar lies after the reference date, so DF(referenceDate) == 1 holds
// by construction and factors between the reference date and the first pillar
// are interpolated rather than flat. Outside the pillar range the boundary
// factor is returned unchanged (flat extrapolation).
//
// Fails with *numerics.DomainError when fewer than 2 pillars are given, when
// pillar dates coincide, or when a factor is not positive.
func NewFromDiscountFactors(referenceDate time.Time, pillars []Pillar, method Interpolation, dayCount utils.DayCount) (DiscountCurve, error) {
	if method != Linear && method != LogLinear {
		return nil, fmt.Errorf("curve: unknown interpolation method %q", method)
	}
	if len(pillars) < 2 {
		return nil, &numerics.DomainError{
			Op:     "curve construction",
			Reason: fmt.Sprintf("need at least 2 pillars, got %d", len(pillars)),
		}
	}

	sorted := make([]Pillar, len(pillars))
	copy(sorted, pillars)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	points := make([]numerics.Point, 0, len(sorted)+1)
	for _, p := range sorted {
		if p.DF <= 0 {
			return nil, &numerics.DomainError{
				Op:     "curve construction",
				Reason: fmt.Sprintf("discount factor must be positive at %s, got %g", p.Date.Format("2006-01-02"), p.DF),
			}
		}
		points = append(points, numerics.Point{
			X: utils.YearFraction(referenceDate, p.Date, dayCount),
			Y: p.DF,
		})
	}
	if len(points) > 0 && points[0].X > 0 {
		points = append([]numerics.Point{{X: 0, Y: 1}}, points...)
	}

	// Validate once here so DF never has to report an error per evaluation.
	if _, err := interpolateDF(points, method, 0); err != nil {
		return nil, err
	}

	return &pillarCurve{ref: referenceDate, points: points, method: method, dc: dayCount}, nil
}

func interpolateDF(points []numerics.Point, method Interpolation, x float64) (float64, error) {
	if method == Linear {
		return numerics.Linear(points, x)
	}
	return numerics.LogLinear(points, x)
}

func (c *pillarCurve) DF(t time.Time) float64 {
	x := utils.YearFraction(c.ref, t, c.dc)
	if x <= 0 {
		return 1.0
	}
	df, _ := interpolateDF(c.points, c.method, x)
	return df
}

func (c *pillarCurve) ReferenceDate() time.Time { return c.ref }
