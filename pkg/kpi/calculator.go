// Package kpi implements the calculator/orchestrator/aggregator pipeline
// that turns per-file measurements into KPIValues and rolls them up the
// ScanDir tree.
package kpi

import "github.com/metricmancer/metricmancer/pkg/models"

// FileContext carries everything a Calculator might need to produce a
// KPIValue for one file. Not every field is populated by every caller;
// calculators must tolerate zero values for fields they don't use.
type FileContext struct {
	FilePath        string
	RepoRoot        string
	Complexity      int
	CognitiveScore  int
	FunctionCount   int
	Churn           float64
	AuthorShares    []models.AuthorShare
}

// Calculator produces exactly one named KPIValue for a file. An error means
// the calculator could not produce a value for this file; the orchestrator
// logs it at debug level and elides the KPI from the result rather than
// failing the whole file.
type Calculator interface {
	Calculate(ctx FileContext) (models.KPIValue, error)
}
