package balance

import (
	"fmt"

	"github.com/katalvlaran/causalmatch/covariate"
	"github.com/katalvlaran/causalmatch/matching"
	"github.com/katalvlaran/causalmatch/matrix"
)

const opExtract = "ExtractMatchedGroups"

// MatchedGroups holds the covariate values of a matching result, aligned by
// pair. Row i of the treated and control tables belongs to TreatedIDs()[i].
type MatchedGroups struct {
	covariates []string
	index      map[string]int
	ids        []covariate.UnitID
	treated    [][]float64 // [pair][covariate]
	control    [][]float64 // [pair][covariate], mean over the pair's controls
	flat       [][]float64 // [covariate][every matched control, pair order]
}

// ExtractMatchedGroups resolves the matched units of res in ds.
//
// Stage 1: validate inputs and resolve covariate positions.
// Stage 2: per pair, read the treated vector and average the control vectors.
// Stage 3: append each individual control value to the flattened columns.
//
// Errors: ErrNilDataset, ErrNilResult, covariate.ErrInvalidSchema,
// covariate.ErrUnknownUnit, ErrGroupMismatch.
// Complexity: O(P·k·p) for P pairs and p covariates.
func ExtractMatchedGroups(ds *covariate.Dataset, res *matching.Result, covariates []string) (*MatchedGroups, error) {
	if ds == nil {
		return nil, fmt.Errorf("%s: %w", opExtract, ErrNilDataset)
	}
	if res == nil {
		return nil, fmt.Errorf("%s: %w", opExtract, ErrNilResult)
	}
	pos, err := ds.Resolve(covariates)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opExtract, err)
	}

	pairs := res.Pairs()
	p := len(pos)
	mg := &MatchedGroups{
		covariates: append([]string(nil), covariates...),
		index:      make(map[string]int, p),
		ids:        make([]covariate.UnitID, len(pairs)),
		treated:    make([][]float64, len(pairs)),
		control:    make([][]float64, len(pairs)),
		flat:       make([][]float64, p),
	}
	for c, name := range covariates {
		mg.index[name] = c
	}

	var vals []float64
	var c int
	for i, pair := range pairs {
		if err = expectGroup(ds, pair.Treated, covariate.Treated); err != nil {
			return nil, err
		}
		if mg.treated[i], err = ds.Values(pair.Treated, pos); err != nil {
			return nil, fmt.Errorf("%s: %w", opExtract, err)
		}
		mg.ids[i] = pair.Treated

		avg := make([]float64, p)
		for _, id := range pair.Controls {
			if err = expectGroup(ds, id, covariate.Control); err != nil {
				return nil, err
			}
			if vals, err = ds.Values(id, pos); err != nil {
				return nil, fmt.Errorf("%s: %w", opExtract, err)
			}
			for c = 0; c < p; c++ {
				avg[c] += vals[c]
				mg.flat[c] = append(mg.flat[c], vals[c])
			}
		}
		for c = 0; c < p; c++ {
			avg[c] /= float64(len(pair.Controls))
		}
		mg.control[i] = avg
	}

	return mg, nil
}

func expectGroup(ds *covariate.Dataset, id covariate.UnitID, want covariate.Group) error {
	g, err := ds.GroupOf(id)
	if err != nil {
		return fmt.Errorf("%s: %w", opExtract, err)
	}
	if g != want {
		return fmt.Errorf("%s: %q is %s, expected %s: %w", opExtract, id, g, want, ErrGroupMismatch)
	}

	return nil
}

// Covariates returns the covariate names in extraction order.
func (mg *MatchedGroups) Covariates() []string { return append([]string(nil), mg.covariates...) }

// Len returns the number of pairs.
func (mg *MatchedGroups) Len() int { return len(mg.ids) }

// TreatedIDs returns the treated id of every row.
func (mg *MatchedGroups) TreatedIDs() []covariate.UnitID {
	return append([]covariate.UnitID(nil), mg.ids...)
}

func (mg *MatchedGroups) col(name string) (int, error) {
	c, ok := mg.index[name]
	if !ok {
		return 0, fmt.Errorf("covariate %q not extracted: %w", name, covariate.ErrInvalidSchema)
	}

	return c, nil
}

// Treated returns the matched treated values of one covariate.
func (mg *MatchedGroups) Treated(name string) ([]float64, error) {
	c, err := mg.col(name)
	if err != nil {
		return nil, err
	}

	return column(mg.treated, c), nil
}

// Control returns the per-pair averaged control values of one covariate.
func (mg *MatchedGroups) Control(name string) ([]float64, error) {
	c, err := mg.col(name)
	if err != nil {
		return nil, err
	}

	return column(mg.control, c), nil
}

// Flattened returns every individual matched control value of one covariate,
// in pair order. Controls matched more than once appear more than once.
func (mg *MatchedGroups) Flattened(name string) ([]float64, error) {
	c, err := mg.col(name)
	if err != nil {
		return nil, err
	}

	return append([]float64(nil), mg.flat[c]...), nil
}

// TreatedTable returns the pairs×covariates treated table, or nil with no pairs.
func (mg *MatchedGroups) TreatedTable() (*matrix.Dense, error) { return table(mg.treated) }

// ControlTable returns the pairs×covariates averaged control table, or nil
// with no pairs.
func (mg *MatchedGroups) ControlTable() (*matrix.Dense, error) { return table(mg.control) }

func column(rows [][]float64, c int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r[c]
	}

	return out
}

func table(rows [][]float64) (*matrix.Dense, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	return matrix.NewDenseFromRows(rows)
}
