package pipeline

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/causalmatch/covariate"
)

func ages(t *testing.T) *covariate.Dataset {
	t.Helper()
	ds, err := covariate.NewDataset([]string{"age"}, []covariate.Unit{
		{ID: "t0", Group: covariate.Treated, Values: []float64{25}},
		{ID: "t1", Group: covariate.Treated, Values: []float64{30}},
		{ID: "c0", Group: covariate.Control, Values: []float64{26}},
		{ID: "c1", Group: covariate.Control, Values: []float64{29}},
		{ID: "c2", Group: covariate.Control, Values: []float64{50}},
	})
	require.NoError(t, err)

	return ds
}

func TestMetrics_RecordRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r := NewRunner(WithMetrics(m))
	ds := ages(t)

	cfg := DefaultConfig()
	cfg.Covariates = []string{"age"}
	_, err := r.Run(context.Background(), ds, cfg)
	require.NoError(t, err)

	cfg.K = 2
	_, err = r.Run(context.Background(), ds, cfg)
	require.NoError(t, err)

	cfg.Covariates = []string{"height"}
	_, err = r.Run(context.Background(), ds, cfg)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("greedy", statusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("greedy", statusExhausted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("greedy", statusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.unmatched.WithLabelValues("greedy")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))

	n, err := testutil.GatherAndCount(reg, "causalmatch_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.observe("greedy", statusOK, 0, 0) })
}
