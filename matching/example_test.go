package matching_test

import (
	"fmt"

	"github.com/katalvlaran/causalmatch/covariate"
	"github.com/katalvlaran/causalmatch/matching"
)

// ExampleGreedy matches two treated units on age against two controls.
//
// Scenario:
//
//	treated ages 25, 30; control ages 26, 29.
//	Each treated unit takes its nearest remaining control.
func ExampleGreedy() {
	recs := []covariate.Record{
		{ID: "0", Fields: map[string]float64{"treat": 1, "age": 25}},
		{ID: "1", Fields: map[string]float64{"treat": 1, "age": 30}},
		{ID: "2", Fields: map[string]float64{"treat": 0, "age": 26}},
		{ID: "3", Fields: map[string]float64{"treat": 0, "age": 29}},
	}
	ds, err := covariate.FromRecords(recs, covariate.TableSpec{GroupField: "treat", Covariates: []string{"age"}})
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	res, err := matching.Greedy(ds, []string{"age"})
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Print(res)
	fmt.Printf("total=%.0f\n", res.TotalDistance())
	// Output:
	// method=greedy metric=euclidean k=1 replacement=false
	// 0 -> 2 (1)
	// 1 -> 3 (1)
	// total=2
}

// ExampleOptimal shows optimal assignment beating greedy order.
func ExampleOptimal() {
	recs := []covariate.Record{
		{ID: "a", Fields: map[string]float64{"treat": 1, "age": 10}},
		{ID: "b", Fields: map[string]float64{"treat": 1, "age": 12}},
		{ID: "c", Fields: map[string]float64{"treat": 0, "age": 11}},
		{ID: "d", Fields: map[string]float64{"treat": 0, "age": 0}},
	}
	ds, _ := covariate.FromRecords(recs, covariate.TableSpec{GroupField: "treat", Covariates: []string{"age"}})

	g, _ := matching.Greedy(ds, []string{"age"})
	o, _ := matching.Optimal(ds, []string{"age"})
	fmt.Printf("greedy=%.0f optimal=%.0f\n", g.TotalDistance(), o.TotalDistance())
	// Output:
	// greedy=13 optimal=11
}
