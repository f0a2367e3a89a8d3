package balance_test

import (
	"fmt"

	"github.com/katalvlaran/causalmatch/balance"
	"github.com/katalvlaran/causalmatch/covariate"
	"github.com/katalvlaran/causalmatch/matching"
)

// ExampleEvaluate reports balance on age and education after 1:1 optimal
// matching on age.
func ExampleEvaluate() {
	recs := []covariate.Record{
		{ID: "0", Fields: map[string]float64{"treat": 1, "age": 25, "educ": 12}},
		{ID: "1", Fields: map[string]float64{"treat": 1, "age": 30, "educ": 16}},
		{ID: "2", Fields: map[string]float64{"treat": 0, "age": 26, "educ": 12}},
		{ID: "3", Fields: map[string]float64{"treat": 0, "age": 29, "educ": 16}},
	}
	covs := []string{"age", "educ"}
	ds, err := covariate.FromRecords(recs, covariate.TableSpec{GroupField: "treat", Covariates: covs})
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	res, err := matching.Optimal(ds, []string{"age"})
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	rep, err := balance.Evaluate(ds, res, covs)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	for _, r := range rep.Records() {
		fmt.Printf("%s: smd_after=%.2f ks_before=%.2f\n", r.Covariate, r.SMDAfter, r.KSBefore)
	}
	fmt.Println("balanced:", rep.Balanced(balance.DefaultSMDThreshold))
	// Output:
	// age: smd_after=0.00 ks_before=0.50
	// educ: smd_after=0.00 ks_before=0.00
	// balanced: true
}
