package matching

import (
	"sort"

	"github.com/katalvlaran/causalmatch/covariate"
	"github.com/katalvlaran/causalmatch/distance"
)

// candidate is a control column with its distance to the current treated row.
type candidate struct {
	col  int
	dist float64
}

// nearest returns the k candidates with the smallest distance, ordered by
// (distance, control id). cols lists the eligible columns; fewer than k
// eligible columns yields all of them.
func nearest(t *distance.Table, row []float64, cols []int, k int) []candidate {
	cs := make([]candidate, len(cols))
	for i, j := range cols {
		cs[i] = candidate{col: j, dist: row[j]}
	}
	sort.SliceStable(cs, func(a, b int) bool {
		if cs[a].dist != cs[b].dist {
			return cs[a].dist < cs[b].dist
		}

		return t.ControlID(cs[a].col) < t.ControlID(cs[b].col)
	})
	if len(cs) > k {
		cs = cs[:k]
	}

	return cs
}

// pairOf converts selected candidates into a MatchedPair for treated row i.
func pairOf(t *distance.Table, i int, cs []candidate) MatchedPair {
	p := MatchedPair{
		Treated:   t.TreatedID(i),
		Controls:  make([]covariate.UnitID, len(cs)),
		Distances: make([]float64, len(cs)),
	}
	for n, c := range cs {
		p.Controls[n] = t.ControlID(c.col)
		p.Distances[n] = c.dist
	}

	return p
}
