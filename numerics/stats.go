package numerics

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of data.
func Mean(data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, &DomainError{Op: "mean", Reason: "empty data set"}
	}
	var sum float64
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data)), nil
}

// Variance returns the sample variance of data (Bessel's correction, N−1).
func Variance(data []float64) (float64, error) {
	n := len(data)
	if n < 2 {
		return 0, &DomainError{Op: "variance", Reason: "need at least 2 data points"}
	}
	mu, _ := Mean(data)
	var sumSq float64
	for _, v := range data {
		d := v - mu
		sumSq += d * d
	}
	return sumSq / float64(n-1), nil
}

// StdDev returns the sample standard deviation of data.
func StdDev(data []float64) (float64, error) {
	v, err := Variance(data)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// Percentile returns the p-th percentile (0 <= p <= 1) of data using linear
// interpolation between order statistics. The input slice is not mutated.
func Percentile(data []float64, p float64) (float64, error) {
	if len(data) == 0 {
		return 0, &DomainError{Op: "percentile", Reason: "empty data set"}
	}
	if p < 0 || p > 1 {
		return 0, &DomainError{Op: "percentile", Reason: "p must be in [0, 1]"}
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	k := float64(len(sorted)-1) * p
	f := math.Floor(k)
	c := math.Ceil(k)
	if f == c {
		return sorted[int(k)], nil
	}
	d0 := sorted[int(f)]
	d1 := sorted[int(c)]
	return d0 + (d1-d0)*(k-f), nil
}
