package kpi

import (
	"log/slog"

	"github.com/metricmancer/metricmancer/pkg/models"
)

// Orchestrator runs a set of Calculators against a FileContext and collects
// their results, keyed by each KPI's own Name rather than the
// calculator's registration key — a calculator is free to compute a KPI
// under a different name than the slot it was registered under.
// Grounded on original_source/src/app/processing/kpi_orchestrator.py.
type Orchestrator struct {
	calculators []Calculator
}

// NewOrchestrator builds an Orchestrator running calculators in the given
// order.
func NewOrchestrator(calculators ...Calculator) *Orchestrator {
	return &Orchestrator{calculators: calculators}
}

// CalculateFileKPIs runs every registered calculator against ctx. A
// calculator that errors is isolated: its KPI is dropped and the others
// still run, matching the reference orchestrator's exception handling.
func (o *Orchestrator) CalculateFileKPIs(ctx FileContext) map[string]models.KPIValue {
	kpis := make(map[string]models.KPIValue, len(o.calculators))

	for _, calc := range o.calculators {
		kpi, ok := runCalculator(calc, ctx)
		if !ok {
			continue
		}
		kpis[kpi.Name] = kpi
	}

	return kpis
}

func runCalculator(calc Calculator, ctx FileContext) (models.KPIValue, bool) {
	kpi, err := calc.Calculate(ctx)
	if err != nil {
		slog.Debug("kpi: calculator failed", "calculator", calc, "error", err)
		return models.KPIValue{}, false
	}
	return kpi, true
}
