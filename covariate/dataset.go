package covariate

import (
	"fmt"
	"math"

	"github.com/katalvlaran/causalmatch/matrix"
)

// Dataset is an immutable collection of Units plus the covariate-name schema.
//
// Invariants (enforced at construction):
//   - schema names are non-empty and unique;
//   - unit ids are non-empty and unique;
//   - every vector has len(schema) finite values;
//   - both groups contain at least one unit.
//
// All accessors return copies, so a Dataset is safe for concurrent readers.
type Dataset struct {
	schema  []string
	index   map[string]int
	units   []Unit
	byID    map[UnitID]int
	treated []int
	control []int
}

// NewDataset validates and deep-copies units into a Dataset.
//
// Errors: ErrInvalidSchema, ErrEmptyID, ErrDuplicateID, ErrInvalidGroup,
// ErrVectorLength, ErrMissingValue, ErrEmptyGroup.
// Complexity: O(n·p) for n units and p covariates.
func NewDataset(schema []string, units []Unit) (*Dataset, error) {
	index, err := buildIndex(schema)
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		schema: append([]string(nil), schema...),
		index:  index,
		units:  make([]Unit, 0, len(units)),
		byID:   make(map[UnitID]int, len(units)),
	}
	for _, u := range units {
		if u.ID == "" {
			return nil, ErrEmptyID
		}
		if _, dup := d.byID[u.ID]; dup {
			return nil, fmt.Errorf("unit %q: %w", u.ID, ErrDuplicateID)
		}
		if u.Group != Treated && u.Group != Control {
			return nil, fmt.Errorf("unit %q: %w", u.ID, ErrInvalidGroup)
		}
		if len(u.Values) != len(schema) {
			return nil, fmt.Errorf("unit %q: got %d values for %d covariates: %w",
				u.ID, len(u.Values), len(schema), ErrVectorLength)
		}
		for j, v := range u.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("unit %q covariate %q: %w", u.ID, schema[j], ErrMissingValue)
			}
		}

		pos := len(d.units)
		d.units = append(d.units, Unit{ID: u.ID, Group: u.Group, Values: append([]float64(nil), u.Values...)})
		d.byID[u.ID] = pos
		if u.Group == Treated {
			d.treated = append(d.treated, pos)
		} else {
			d.control = append(d.control, pos)
		}
	}
	if len(d.treated) == 0 || len(d.control) == 0 {
		return nil, fmt.Errorf("treated=%d control=%d: %w", len(d.treated), len(d.control), ErrEmptyGroup)
	}

	return d, nil
}

// FromRecords builds a Dataset from in-memory rows. Field presence is checked
// for every record before any value is inspected.
//
// Errors: ErrInvalidSchema (no group field configured, field absent from a row,
// covariate list empty or overlapping the group field), ErrInvalidGroup, plus
// everything NewDataset returns.
func FromRecords(records []Record, spec TableSpec) (*Dataset, error) {
	if spec.GroupField == "" {
		return nil, fmt.Errorf("group field not configured: %w", ErrInvalidSchema)
	}
	if _, err := buildIndex(spec.Covariates); err != nil {
		return nil, err
	}
	for _, name := range spec.Covariates {
		if name == spec.GroupField {
			return nil, fmt.Errorf("covariate %q is the group field: %w", name, ErrInvalidSchema)
		}
	}

	// Stage 1: schema presence, no numeric work yet.
	for _, rec := range records {
		if _, ok := rec.Fields[spec.GroupField]; !ok {
			return nil, fmt.Errorf("record %q: missing group field %q: %w", rec.ID, spec.GroupField, ErrInvalidSchema)
		}
		for _, name := range spec.Covariates {
			if _, ok := rec.Fields[name]; !ok {
				return nil, fmt.Errorf("record %q: missing covariate %q: %w", rec.ID, name, ErrInvalidSchema)
			}
		}
	}

	// Stage 2: values.
	units := make([]Unit, 0, len(records))
	for _, rec := range records {
		g, err := GroupFromIndicator(rec.Fields[spec.GroupField])
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", rec.ID, err)
		}
		vals := make([]float64, len(spec.Covariates))
		for j, name := range spec.Covariates {
			vals[j] = rec.Fields[name]
		}
		units = append(units, Unit{ID: rec.ID, Group: g, Values: vals})
	}

	return NewDataset(spec.Covariates, units)
}

// buildIndex maps names to positions, rejecting empty, blank or duplicate names.
func buildIndex(names []string) (map[string]int, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no covariates: %w", ErrInvalidSchema)
	}
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("covariate %d has no name: %w", i, ErrInvalidSchema)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("covariate %q listed twice: %w", name, ErrInvalidSchema)
		}
		index[name] = i
	}

	return index, nil
}

// Schema returns a copy of the covariate names in vector order.
func (d *Dataset) Schema() []string { return append([]string(nil), d.schema...) }

// Len returns the total number of units.
func (d *Dataset) Len() int { return len(d.units) }

// Count returns the number of units in group g.
func (d *Dataset) Count(g Group) int { return len(d.positions(g)) }

func (d *Dataset) positions(g Group) []int {
	if g == Treated {
		return d.treated
	}

	return d.control
}

// IDs returns the ids of group g in dataset order.
func (d *Dataset) IDs(g Group) []UnitID {
	pos := d.positions(g)
	out := make([]UnitID, len(pos))
	for i, p := range pos {
		out[i] = d.units[p].ID
	}

	return out
}

// Units returns deep copies of all units in dataset order.
func (d *Dataset) Units() []Unit {
	out := make([]Unit, len(d.units))
	for i, u := range d.units {
		out[i] = Unit{ID: u.ID, Group: u.Group, Values: append([]float64(nil), u.Values...)}
	}

	return out
}

// Unit returns a copy of the unit with the given id.
func (d *Dataset) Unit(id UnitID) (Unit, bool) {
	p, ok := d.byID[id]
	if !ok {
		return Unit{}, false
	}
	u := d.units[p]

	return Unit{ID: u.ID, Group: u.Group, Values: append([]float64(nil), u.Values...)}, true
}

// Resolve validates covariate names and returns their schema positions in the
// requested order.
//
// Errors: ErrInvalidSchema for an empty list, unknown or repeated names.
func (d *Dataset) Resolve(covariates []string) ([]int, error) {
	if len(covariates) == 0 {
		return nil, fmt.Errorf("no covariates requested: %w", ErrInvalidSchema)
	}
	pos := make([]int, len(covariates))
	seen := make(map[string]struct{}, len(covariates))
	for i, name := range covariates {
		p, ok := d.index[name]
		if !ok {
			return nil, fmt.Errorf("unknown covariate %q: %w", name, ErrInvalidSchema)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("covariate %q requested twice: %w", name, ErrInvalidSchema)
		}
		seen[name] = struct{}{}
		pos[i] = p
	}

	return pos, nil
}

// Values returns the resolved covariate values of one unit. positions must come
// from Resolve on this dataset.
func (d *Dataset) Values(id UnitID, positions []int) ([]float64, error) {
	p, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownUnit)
	}
	src := d.units[p].Values
	out := make([]float64, len(positions))
	for j, c := range positions {
		out[j] = src[c]
	}

	return out, nil
}

// GroupOf reports the group of a unit.
func (d *Dataset) GroupOf(id UnitID) (Group, error) {
	p, ok := d.byID[id]
	if !ok {
		return 0, fmt.Errorf("%q: %w", id, ErrUnknownUnit)
	}

	return d.units[p].Group, nil
}

// Vectors extracts the covariate vectors of group g as a units×covariates
// matrix, rows in dataset order, together with the row ids.
//
// Errors: ErrInvalidSchema from Resolve.
// Complexity: O(n_g·p).
func (d *Dataset) Vectors(g Group, covariates []string) (*matrix.Dense, []UnitID, error) {
	cols, err := d.Resolve(covariates)
	if err != nil {
		return nil, nil, err
	}
	pos := d.positions(g)
	ids := make([]UnitID, len(pos))
	flat := make([]float64, 0, len(pos)*len(cols))
	for i, p := range pos {
		u := d.units[p]
		ids[i] = u.ID
		for _, c := range cols {
			flat = append(flat, u.Values[c])
		}
	}
	m, err := matrix.NewDenseFrom(len(pos), len(cols), flat)
	if err != nil {
		return nil, nil, fmt.Errorf("Vectors(%s): %w", g, err)
	}

	return m, ids, nil
}

// Column returns one covariate for group g in dataset order.
func (d *Dataset) Column(g Group, name string) ([]float64, error) {
	cols, err := d.Resolve([]string{name})
	if err != nil {
		return nil, err
	}
	pos := d.positions(g)
	out := make([]float64, len(pos))
	for i, p := range pos {
		out[i] = d.units[p].Values[cols[0]]
	}

	return out, nil
}

// ColumnAll returns one covariate across both groups in dataset order.
func (d *Dataset) ColumnAll(name string) ([]float64, error) {
	cols, err := d.Resolve([]string{name})
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(d.units))
	for i, u := range d.units {
		out[i] = u.Values[cols[0]]
	}

	return out, nil
}

// Value returns a single covariate value of one unit.
func (d *Dataset) Value(id UnitID, name string) (float64, error) {
	cols, err := d.Resolve([]string{name})
	if err != nil {
		return 0, err
	}
	vals, err := d.Values(id, cols)
	if err != nil {
		return 0, err
	}

	return vals[0], nil
}
