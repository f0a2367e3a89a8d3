package covariate

import "fmt"

// UnitID is the stable, unique identifier of a unit. Ordering of UnitIDs is
// plain lexicographic and is the tie-breaker used by the matchers.
type UnitID string

// Group is the treatment assignment of a unit.
type Group int

const (
	// Control units carry indicator value 0.
	Control Group = iota
	// Treated units carry indicator value 1.
	Treated
)

// String implements fmt.Stringer.
func (g Group) String() string {
	switch g {
	case Control:
		return "control"
	case Treated:
		return "treated"
	default:
		return fmt.Sprintf("group(%d)", int(g))
	}
}

// GroupFromIndicator maps the binary indicator {0,1} to a Group.
func GroupFromIndicator(v float64) (Group, error) {
	switch v {
	case 0:
		return Control, nil
	case 1:
		return Treated, nil
	default:
		return 0, fmt.Errorf("value %g: %w", v, ErrInvalidGroup)
	}
}

// Unit is one observation: identifier, group label and a covariate vector
// aligned to the owning Dataset's schema.
type Unit struct {
	ID     UnitID
	Group  Group
	Values []float64
}

// Record is one row of an in-memory table: an identifier plus named numeric fields.
// The group indicator is one of the fields; TableSpec says which.
type Record struct {
	ID     UnitID
	Fields map[string]float64
}

// TableSpec names the group-indicator field and the covariates to keep.
type TableSpec struct {
	GroupField string   `yaml:"group_field" json:"group_field"`
	Covariates []string `yaml:"covariates" json:"covariates"`
}
