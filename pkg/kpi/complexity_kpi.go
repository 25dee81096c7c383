package kpi

import "github.com/metricmancer/metricmancer/pkg/models"

// ComplexityKPI surfaces a file's already-measured cyclomatic complexity as
// a KPIValue. Grounded on original_source/src/kpis/complexity.py (ComplexityKPI
// wraps a precomputed value rather than recomputing it).
type ComplexityKPI struct{}

func (ComplexityKPI) Calculate(ctx FileContext) (models.KPIValue, error) {
	return models.NewNumericKPI("complexity", float64(ctx.Complexity)), nil
}

// CognitiveComplexityKPI surfaces a file's tree-sitter cognitive complexity
// score. Zero for languages without a cognitive calculator (FileContext
// leaves CognitiveScore at its zero value).
type CognitiveComplexityKPI struct{}

func (CognitiveComplexityKPI) Calculate(ctx FileContext) (models.KPIValue, error) {
	return models.NewNumericKPI("cognitive_complexity", float64(ctx.CognitiveScore)), nil
}

// ChurnKPI surfaces a file's churn (summed added+removed lines across its
// commit history).
type ChurnKPI struct{}

func (ChurnKPI) Calculate(ctx FileContext) (models.KPIValue, error) {
	return models.NewNumericKPI("churn", ctx.Churn), nil
}
