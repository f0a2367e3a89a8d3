// Package covariate holds the unit-level data model shared by every stage of
// a matching study: stable unit identifiers, the treated/control group label
// and the covariate vectors aligned to a fixed schema.
//
// A Dataset is immutable once built. It is created either directly from Units
// (NewDataset) or from in-memory tabular records (FromRecords), where the
// group-indicator field is named by configuration rather than assumed:
//
//	ds, err := covariate.FromRecords(records, covariate.TableSpec{
//		GroupField: "treat",
//		Covariates: []string{"age", "educ", "re74", "re75"},
//	})
//
// Extraction (Vectors, Column, ColumnAll, Value) always resolves covariate
// names first, so a bad name fails with ErrInvalidSchema before any numeric
// work starts. Rows come back in dataset order, keyed by UnitID, which keeps
// raw, matched-treated and matched-control tables explicitly aligned.
package covariate
