package matching

import "math"

// hungarian solves the rectangular minimum-cost assignment for an n×m cost
// matrix with n <= m and returns, for every row, its assigned column.
//
// Kuhn–Munkres with row/column potentials: each of the n phases grows an
// alternating tree from a free row via Dijkstra-like relaxation over reduced
// costs, then augments along the shortest path.
//
// Complexity: O(n²·m) time, O(m) extra memory per phase.
func hungarian(cost [][]float64, n, m int) []int {
	// 1-indexed; column 0 is the virtual root of each phase.
	u := make([]float64, n+1)
	v := make([]float64, m+1)
	p := make([]int, m+1)   // p[j]: row currently assigned to column j
	way := make([]int, m+1) // predecessor column on the shortest path
	minv := make([]float64, m+1)
	used := make([]bool, m+1)

	var i, j, i0, j0, j1 int
	var delta, cur float64
	for i = 1; i <= n; i++ {
		p[0] = i
		j0 = 0
		for j = 0; j <= m; j++ {
			minv[j] = math.Inf(1)
			used[j] = false
		}
		for {
			used[j0] = true
			i0 = p[j0]
			delta = math.Inf(1)
			j1 = 0
			for j = 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur = cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j = 0; j <= m; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		// augment
		for j0 != 0 {
			j1 = way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	assign := make([]int, n)
	for j = 1; j <= m; j++ {
		if p[j] != 0 {
			assign[p[j]-1] = j - 1
		}
	}

	return assign
}
