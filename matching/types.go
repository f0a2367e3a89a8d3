package matching

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/causalmatch/covariate"
	"github.com/katalvlaran/causalmatch/distance"
)

// Method names a matching algorithm.
type Method int

const (
	// MethodGreedy is nearest-neighbour matching in treated dataset order.
	MethodGreedy Method = iota
	// MethodOptimal minimises total distance (k=1) or takes global k-nearest (k>1).
	MethodOptimal
)

// String returns "greedy" or "optimal".
func (m Method) String() string {
	switch m {
	case MethodGreedy:
		return "greedy"
	case MethodOptimal:
		return "optimal"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps "greedy" or "optimal" (case-insensitive) to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "greedy":
		return MethodGreedy, nil
	case "optimal":
		return MethodOptimal, nil
	default:
		return 0, fmt.Errorf("ParseMethod %q: %w", s, ErrUnknownMethod)
	}
}

// MatchedPair is one treated unit and its matched controls, nearest first.
// Distances[i] is the distance to Controls[i].
type MatchedPair struct {
	Treated   covariate.UnitID
	Controls  []covariate.UnitID
	Distances []float64
}

// Total returns the sum of the pair's distances.
func (p MatchedPair) Total() float64 {
	var s float64
	for _, d := range p.Distances {
		s += d
	}

	return s
}

func (p MatchedPair) clone() MatchedPair {
	return MatchedPair{
		Treated:   p.Treated,
		Controls:  append([]covariate.UnitID(nil), p.Controls...),
		Distances: append([]float64(nil), p.Distances...),
	}
}

// Result is the immutable outcome of a matching run. Pairs are ordered by the
// treated unit's position in the dataset.
type Result struct {
	method          Method
	metric          distance.Metric
	k               int
	withReplacement bool
	pairs           []MatchedPair
	unmatched       []covariate.UnitID
}

// Method returns the algorithm that produced the result.
func (r *Result) Method() Method { return r.method }

// Metric returns the distance metric used.
func (r *Result) Metric() distance.Metric { return r.metric }

// K returns the requested number of controls per treated unit.
func (r *Result) K() int { return r.k }

// WithReplacement reports whether controls could be reused.
func (r *Result) WithReplacement() bool { return r.withReplacement }

// Len returns the number of matched pairs.
func (r *Result) Len() int { return len(r.pairs) }

// Pairs returns a deep copy of the matched pairs.
func (r *Result) Pairs() []MatchedPair {
	out := make([]MatchedPair, len(r.pairs))
	for i, p := range r.pairs {
		out[i] = p.clone()
	}

	return out
}

// Pair returns a copy of pair i.
func (r *Result) Pair(i int) MatchedPair { return r.pairs[i].clone() }

// Unmatched returns the treated units that received no controls, in dataset order.
func (r *Result) Unmatched() []covariate.UnitID {
	return append([]covariate.UnitID(nil), r.unmatched...)
}

// Complete reports whether every treated unit was matched.
func (r *Result) Complete() bool { return len(r.unmatched) == 0 }

// TotalDistance sums the distances over all pairs.
func (r *Result) TotalDistance() float64 {
	var s float64
	for _, p := range r.pairs {
		s += p.Total()
	}

	return s
}

// ControlIDs returns every matched control in pair order, repeats included.
func (r *Result) ControlIDs() []covariate.UnitID {
	var out []covariate.UnitID
	for _, p := range r.pairs {
		out = append(out, p.Controls...)
	}

	return out
}

// String renders one line per pair followed by one line per unmatched unit:
//
//	0 -> 2 (1)
//	1 -> 3,4 (1, 2.5)
//	5 -> unmatched
func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "method=%s metric=%s k=%d replacement=%t\n", r.method, r.metric, r.k, r.withReplacement)
	for _, p := range r.pairs {
		ids := make([]string, len(p.Controls))
		ds := make([]string, len(p.Distances))
		for i := range p.Controls {
			ids[i] = string(p.Controls[i])
			ds[i] = fmt.Sprintf("%.6g", p.Distances[i])
		}
		fmt.Fprintf(&b, "%s -> %s (%s)\n", p.Treated, strings.Join(ids, ","), strings.Join(ds, ", "))
	}
	for _, id := range r.unmatched {
		fmt.Fprintf(&b, "%s -> unmatched\n", id)
	}

	return b.String()
}
