package covariate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/causalmatch/covariate"
)

// lalonde returns the four-row fixture used across the balance tests.
func lalonde() []covariate.Record {
	return []covariate.Record{
		{ID: "0", Fields: map[string]float64{"treat": 1, "age": 25, "educ": 12, "re74": 20000}},
		{ID: "1", Fields: map[string]float64{"treat": 1, "age": 30, "educ": 16, "re74": 25000}},
		{ID: "2", Fields: map[string]float64{"treat": 0, "age": 26, "educ": 12, "re74": 19000}},
		{ID: "3", Fields: map[string]float64{"treat": 0, "age": 29, "educ": 16, "re74": 24000}},
	}
}

var spec = covariate.TableSpec{GroupField: "treat", Covariates: []string{"age", "educ", "re74"}}

func TestFromRecords_Builds(t *testing.T) {
	t.Parallel()

	ds, err := covariate.FromRecords(lalonde(), spec)
	require.NoError(t, err)

	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, 2, ds.Count(covariate.Treated))
	assert.Equal(t, 2, ds.Count(covariate.Control))
	assert.Equal(t, []covariate.UnitID{"0", "1"}, ds.IDs(covariate.Treated))
	assert.Equal(t, []covariate.UnitID{"2", "3"}, ds.IDs(covariate.Control))
	assert.Equal(t, []string{"age", "educ", "re74"}, ds.Schema())

	u, ok := ds.Unit("3")
	require.True(t, ok)
	assert.Equal(t, covariate.Control, u.Group)
	assert.Equal(t, []float64{29, 16, 24000}, u.Values)
}

func TestFromRecords_SchemaErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]covariate.TableSpec{
		"no group field":     {Covariates: []string{"age"}},
		"no covariates":      {GroupField: "treat"},
		"unknown covariate":  {GroupField: "treat", Covariates: []string{"age", "height"}},
		"missing group":      {GroupField: "assigned", Covariates: []string{"age"}},
		"duplicate":          {GroupField: "treat", Covariates: []string{"age", "age"}},
		"group as covariate": {GroupField: "treat", Covariates: []string{"treat"}},
	}
	for name, sp := range cases {
		sp := sp
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := covariate.FromRecords(lalonde(), sp)
			require.ErrorIs(t, err, covariate.ErrInvalidSchema)
		})
	}
}

func TestFromRecords_GroupValues(t *testing.T) {
	t.Parallel()

	recs := lalonde()
	recs[1].Fields["treat"] = 2
	_, err := covariate.FromRecords(recs, spec)
	require.ErrorIs(t, err, covariate.ErrInvalidGroup)
	require.ErrorIs(t, err, covariate.ErrInvalidSchema)

	recs = lalonde()
	for i := range recs {
		recs[i].Fields["treat"] = 1
	}
	_, err = covariate.FromRecords(recs, spec)
	require.ErrorIs(t, err, covariate.ErrEmptyGroup)
}

func TestFromRecords_MissingValue(t *testing.T) {
	t.Parallel()

	recs := lalonde()
	recs[2].Fields["age"] = math.NaN()
	_, err := covariate.FromRecords(recs, spec)
	require.ErrorIs(t, err, covariate.ErrMissingValue)
}

func TestNewDataset_UnitErrors(t *testing.T) {
	t.Parallel()

	schema := []string{"x"}
	ok := covariate.Unit{ID: "c", Group: covariate.Control, Values: []float64{1}}

	_, err := covariate.NewDataset(schema, []covariate.Unit{
		{ID: "t", Group: covariate.Treated, Values: []float64{1}}, ok,
		{ID: "t", Group: covariate.Control, Values: []float64{2}},
	})
	require.ErrorIs(t, err, covariate.ErrDuplicateID)

	_, err = covariate.NewDataset(schema, []covariate.Unit{{Group: covariate.Treated, Values: []float64{1}}, ok})
	require.ErrorIs(t, err, covariate.ErrEmptyID)

	_, err = covariate.NewDataset(schema, []covariate.Unit{{ID: "t", Group: covariate.Treated, Values: []float64{1, 2}}, ok})
	require.ErrorIs(t, err, covariate.ErrVectorLength)

	_, err = covariate.NewDataset(schema, []covariate.Unit{{ID: "t", Group: covariate.Group(7), Values: []float64{1}}, ok})
	require.ErrorIs(t, err, covariate.ErrInvalidGroup)

	_, err = covariate.NewDataset(nil, []covariate.Unit{ok})
	require.ErrorIs(t, err, covariate.ErrInvalidSchema)
}

func TestDataset_Extraction(t *testing.T) {
	t.Parallel()

	ds, err := covariate.FromRecords(lalonde(), spec)
	require.NoError(t, err)

	m, ids, err := ds.Vectors(covariate.Control, []string{"re74", "age"})
	require.NoError(t, err)
	assert.Equal(t, []covariate.UnitID{"2", "3"}, ids)
	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{24000, 29}, row)

	col, err := ds.Column(covariate.Treated, "educ")
	require.NoError(t, err)
	assert.Equal(t, []float64{12, 16}, col)

	all, err := ds.ColumnAll("age")
	require.NoError(t, err)
	assert.Equal(t, []float64{25, 30, 26, 29}, all)

	v, err := ds.Value("1", "re74")
	require.NoError(t, err)
	assert.Equal(t, 25000.0, v)

	_, err = ds.Value("42", "age")
	require.ErrorIs(t, err, covariate.ErrUnknownUnit)

	_, _, err = ds.Vectors(covariate.Treated, []string{"age", "height"})
	require.ErrorIs(t, err, covariate.ErrInvalidSchema)
	_, err = ds.Resolve(nil)
	require.ErrorIs(t, err, covariate.ErrInvalidSchema)
}

func TestDataset_Immutable(t *testing.T) {
	t.Parallel()

	vals := []float64{1}
	ds, err := covariate.NewDataset([]string{"x"}, []covariate.Unit{
		{ID: "t", Group: covariate.Treated, Values: vals},
		{ID: "c", Group: covariate.Control, Values: []float64{2}},
	})
	require.NoError(t, err)

	vals[0] = 100
	units := ds.Units()
	units[1].Values[0] = -5

	u, _ := ds.Unit("t")
	assert.Equal(t, 1.0, u.Values[0])
	u, _ = ds.Unit("c")
	assert.Equal(t, 2.0, u.Values[0])
}

func TestGroup_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "treated", covariate.Treated.String())
	assert.Equal(t, "control", covariate.Control.String())
	assert.Equal(t, "group(3)", covariate.Group(3).String())
}
