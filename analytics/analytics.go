// Package analytics computes performance metrics over price and return
// series: returns, drawdown, Sharpe ratio and historical value-at-risk.
package analytics

import (
	"math"

	"github.com/quantive/filib/numerics"
)

// SimpleReturns computes discrete returns (P_t − P_{t−1}) / P_{t−1}. The
// result has len(prices)−1 entries; fewer than two prices yield nil.
func SimpleReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		out = append(out, (prices[i]-prices[i-1])/prices[i-1])
	}
	return out
}

// LogReturns computes continuously compounded returns ln(P_t / P_{t−1}).
func LogReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		out = append(out, math.Log(prices[i]/prices[i-1]))
	}
	return out
}

// MaxDrawdown returns the largest peak-to-trough loss of a price series as a
// positive decimal (0.20 == a 20% drop). It is 0 when prices never fall.
func MaxDrawdown(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	peak := prices[0]
	var maxDD float64
	for _, p := range prices {
		if p > peak {
			peak = p
			continue
		}
		if dd := (peak - p) / peak; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// SharpeRatio is the per-period excess return over its standard deviation.
func SharpeRatio(returns []float64, riskFree float64) (float64, error) {
	mu, err := numerics.Mean(returns)
	if err != nil {
		return 0, err
	}
	sd, err := numerics.StdDev(returns)
	if err != nil {
		return 0, err
	}
	if sd == 0 {
		return 0, &numerics.DomainError{Op: "sharpe ratio", Reason: "returns have zero variance"}
	}
	return (mu - riskFree) / sd, nil
}

// HistoricalVaR returns the value-at-risk at the given confidence level
// (e.g., 0.95) as a positive loss fraction, read off the empirical return
// distribution.
func HistoricalVaR(returns []float64, confidence float64) (float64, error) {
	if confidence <= 0 || confidence >= 1 {
		return 0, &numerics.DomainError{Op: "historical var", Reason: "confidence must be in (0, 1)"}
	}
	q, err := numerics.Percentile(returns, 1-confidence)
	if err != nil {
		return 0, err
	}
	return -q, nil
}
