package distance_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/causalmatch/distance"
	"github.com/katalvlaran/causalmatch/matrix"
)

// randomRows builds an n×p matrix with a fixed seed, outside the timer.
func randomRows(b *testing.B, seed int64, n, p int) *matrix.Dense {
	b.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n*p)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	m, err := matrix.NewDenseFrom(n, p, data)
	if err != nil {
		b.Fatal(err)
	}

	return m
}

func BenchmarkCompute_Euclidean_300x600x8(b *testing.B) {
	tm, cm := randomRows(b, 1, 300, 8), randomRows(b, 2, 600, 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := distance.Compute(tm, cm, distance.Euclidean); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompute_Mahalanobis_300x600x8(b *testing.B) {
	tm, cm := randomRows(b, 1, 300, 8), randomRows(b, 2, 600, 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := distance.Compute(tm, cm, distance.Mahalanobis); err != nil {
			b.Fatal(err)
		}
	}
}
