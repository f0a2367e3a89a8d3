package matching

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteForce returns the minimum assignment cost over all injective maps
// from n rows into m columns.
func bruteForce(cost [][]float64, n, m int) float64 {
	best := math.Inf(1)
	used := make([]bool, m)
	var rec func(i int, acc float64)
	rec = func(i int, acc float64) {
		if acc >= best {
			return
		}
		if i == n {
			best = acc
			return
		}
		for j := 0; j < m; j++ {
			if used[j] {
				continue
			}
			used[j] = true
			rec(i+1, acc+cost[i][j])
			used[j] = false
		}
	}
	rec(0, 0)

	return best
}

func TestHungarian_MatchesBruteForce(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(5)
		m := n + rng.Intn(3)
		cost := make([][]float64, n)
		for i := range cost {
			cost[i] = make([]float64, m)
			for j := range cost[i] {
				cost[i][j] = float64(rng.Intn(20)) + rng.Float64()
			}
		}

		assign := hungarian(cost, n, m)
		require.Len(t, assign, n)
		seen := make(map[int]bool, n)
		var total float64
		for i, j := range assign {
			require.False(t, seen[j], "column %d assigned twice", j)
			seen[j] = true
			total += cost[i][j]
		}
		assert.InDelta(t, bruteForce(cost, n, m), total, 1e-9, "trial %d", trial)
	}
}

func TestHungarian_Classic(t *testing.T) {
	t.Parallel()
	cost := [][]float64{
		{4, 1, 3},
		{2, 0, 5},
		{3, 2, 2},
	}
	assign := hungarian(cost, 3, 3)
	assert.Equal(t, []int{1, 0, 2}, assign)
}
