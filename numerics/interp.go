// Package numerics provides the scalar numerical kernels used across the
// library: interpolation, central-difference differentiation, Newton-Raphson
// root finding and descriptive statistics.
//
// All functions are pure: they hold no state between calls and never mutate
// their inputs.
package numerics

import (
	"fmt"
	"math"
)

// Point is an (x, y) interpolation node.
type Point struct {
	X float64
	Y float64
}

// DomainError is returned when numeric input is malformed (too few
// interpolation points, non-increasing abscissas, non-positive values where
// a logarithm is required, empty data sets).
type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("numerics: %s: %s", e.Op, e.Reason)
}

func validatePoints(op string, points []Point) error {
	if len(points) < 2 {
		return &DomainError{Op: op, Reason: fmt.Sprintf("need at least 2 points, got %d", len(points))}
	}
	for i := 1; i < len(points); i++ {
		if points[i].X <= points[i-1].X {
			return &DomainError{
				Op:     op,
				Reason: fmt.Sprintf("x values must be strictly increasing (x[%d]=%g, x[%d]=%g)", i-1, points[i-1].X, i, points[i].X),
			}
		}
	}
	return nil
}

// Linear interpolates y at x over nodes with strictly increasing X.
//
// Outside [points[0].X, points[n-1].X] the boundary value is returned
// unchanged (flat extrapolation).
func Linear(points []Point, x float64) (float64, error) {
	if err := validatePoints("linear interpolation", points); err != nil {
		return 0, err
	}
	return interpolate(points, x), nil
}

// LogLinear interpolates ln(y) linearly and exponentiates the result. All Y
// values must be positive. Used for discount factors: positivity is
// preserved and forward rates are constant between nodes.
//
// The extrapolation policy is the same flat rule as Linear.
func LogLinear(points []Point, x float64) (float64, error) {
	if err := validatePoints("log-linear interpolation", points); err != nil {
		return 0, err
	}
	logged := make([]Point, len(points))
	for i, p := range points {
		if p.Y <= 0 {
			return 0, &DomainError{
				Op:     "log-linear interpolation",
				Reason: fmt.Sprintf("y values must be positive (y[%d]=%g)", i, p.Y),
			}
		}
		logged[i] = Point{X: p.X, Y: math.Log(p.Y)}
	}
	return math.Exp(interpolate(logged, x)), nil
}

// interpolate assumes points are validated.
func interpolate(points []Point, x float64) float64 {
	n := len(points)
	if x <= points[0].X {
		return points[0].Y
	}
	if x >= points[n-1].X {
		return points[n-1].Y
	}

	// Binary search for the first node with X >= x.
	lo, hi := 0, n-1
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if points[mid].X < x {
			lo = mid
		} else {
			hi = mid
		}
	}

	p0, p1 := points[lo], points[hi]
	slope := (p1.Y - p0.Y) / (p1.X - p0.X)
	return p0.Y + slope*(x-p0.X)
}
