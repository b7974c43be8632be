package numerics

import (
	"fmt"
	"math"
)

const (
	// DefaultStep is the central-difference step used when callers pass a
	// non-positive step size.
	DefaultStep = 1e-5

	// DefaultTolerance and DefaultMaxIterations back NewtonSolve when the
	// caller passes non-positive values.
	DefaultTolerance     = 1e-7
	DefaultMaxIterations = 100

	// derivativeFloor guards the Newton step against division by a
	// near-zero slope.
	derivativeFloor = 1e-12
)

// ConvergenceError is returned when NewtonSolve exhausts its iteration bound
// without meeting the convergence criterion. The solver never returns a
// best-effort root silently.
type ConvergenceError struct {
	Iterations int
	LastX      float64
	LastF      float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("numerics: newton solve did not converge after %d iterations (x=%g, f(x)=%g)",
		e.Iterations, e.LastX, e.LastF)
}

// SingularDerivativeError is returned when the estimated derivative is too
// close to zero for a Newton step to proceed.
type SingularDerivativeError struct {
	X     float64
	Slope float64
}

func (e *SingularDerivativeError) Error() string {
	return fmt.Sprintf("numerics: newton solve hit a near-zero derivative at x=%g (f'=%g)", e.X, e.Slope)
}

// Derivative estimates f'(x) by central difference, (f(x+h) − f(x−h)) / 2h.
//
// A non-positive step selects DefaultStep. Callers computing risk
// sensitivities should pick the step explicitly to balance truncation
// against floating-point cancellation.
func Derivative(f func(float64) float64, x, step float64) float64 {
	h := step
	if h <= 0 {
		h = DefaultStep
	}
	return (f(x+h) - f(x-h)) / (2 * h)
}

// NewtonSolve finds a root of f by Newton-Raphson iteration, estimating the
// derivative by central difference at every step.
//
// Convergence is declared when |f(x)| < tol or |x_{n+1} − x_n| < tol.
// Non-positive tol or maxIter select DefaultTolerance / DefaultMaxIterations.
// Failure modes are explicit: *SingularDerivativeError when the slope is too
// close to zero, *ConvergenceError when the iteration bound is exhausted.
func NewtonSolve(f func(float64) float64, guess, tol float64, maxIter int) (float64, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	x := guess
	fx := f(x)
	for i := 0; i < maxIter; i++ {
		if math.Abs(fx) < tol {
			return x, nil
		}

		slope := Derivative(f, x, 0)
		if math.Abs(slope) < derivativeFloor {
			return 0, &SingularDerivativeError{X: x, Slope: slope}
		}

		next := x - fx/slope
		if math.Abs(next-x) < tol {
			return next, nil
		}
		x = next
		fx = f(x)
	}

	return 0, &ConvergenceError{Iterations: maxIter, LastX: x, LastF: fx}
}
