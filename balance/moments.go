package balance

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Undefined is the sentinel for a statistic that cannot be computed.
var Undefined = math.NaN()

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v float64) bool { return math.IsNaN(v) }

func mean(x []float64) float64 {
	if len(x) == 0 {
		return Undefined
	}

	return stat.Mean(x, nil)
}

// variance is the unbiased (n−1) sample variance.
func variance(x []float64) float64 {
	if len(x) < 2 {
		return Undefined
	}

	return stat.Variance(x, nil)
}

func std(x []float64) float64 {
	v := variance(x)
	if IsUndefined(v) {
		return Undefined
	}

	return math.Sqrt(v)
}

// ratio divides num by den, Undefined when either is undefined or den is zero.
func ratio(num, den float64) float64 {
	if IsUndefined(num) || IsUndefined(den) || den == 0 {
		return Undefined
	}

	return num / den
}

// ks is the two-sample Kolmogorov–Smirnov statistic of x and y.
// gonum requires sorted samples, so both are sorted on copies.
func ks(x, y []float64) float64 {
	if len(x) == 0 || len(y) == 0 {
		return Undefined
	}
	xs := append([]float64(nil), x...)
	ys := append([]float64(nil), y...)
	sort.Float64s(xs)
	sort.Float64s(ys)

	return stat.KolmogorovSmirnov(xs, nil, ys, nil)
}
