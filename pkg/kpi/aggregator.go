package kpi

import (
	"math"

	"github.com/metricmancer/metricmancer/pkg/models"
)

// Strategy combines a collection of numeric KPI values measured across a
// ScanDir's descendants into one rolled-up value.
type Strategy int

const (
	// StrategyMean averages the collection. The default when a KPI has no
	// explicit strategy registered.
	StrategyMean Strategy = iota
	StrategySum
	StrategyMax
	StrategyMin
)

// Aggregator rolls numeric KPI values up a ScanDir tree using per-KPI
// strategies. Strategies are validated against each KPI's declared kind
// at registration time (RegisterStrategy), not at aggregation time: asking
// to aggregate an Ownership or Classification KPI with a numeric strategy
// is a configuration error caught immediately.
// Grounded on original_source/src/app/kpi/aggregation_strategy.py and
// kpi_value_collector.py.
type Aggregator struct {
	strategies map[string]Strategy
}

// NewAggregator builds an Aggregator with no strategies registered; every
// KPI aggregated through it defaults to StrategyMean until a strategy is
// registered for its name.
func NewAggregator() *Aggregator {
	return &Aggregator{strategies: make(map[string]Strategy)}
}

// RegisterStrategy declares how a numeric-kind KPI named name should be
// aggregated. It panics if sampleKind is not KindNumeric: sum/max/min/mean
// apply to numeric KPIs only, and AggregateDir never aggregates non-numeric
// KPIs.
func (a *Aggregator) RegisterStrategy(name string, strategy Strategy, sampleKind models.KPIKind) {
	if sampleKind != models.KindNumeric {
		panic("kpi: cannot register a numeric aggregation strategy for non-numeric KPI " + name)
	}
	a.strategies[name] = strategy
}

// AggregateDir computes aggregated KPIValues for dir from the numeric KPIs
// of every file under dir, at any depth. Non-numeric KPIs are not
// aggregated and do not appear in the result. A KPI name with no samples
// anywhere under dir is simply absent from the result, never reported as
// zero.
func (a *Aggregator) AggregateDir(dir *models.ScanDir) map[string]models.KPIValue {
	collected := make(map[string][]float64)
	a.collect(dir, collected)

	result := make(map[string]models.KPIValue, len(collected))
	for name, values := range collected {
		agg, ok := a.reduce(name, values)
		if !ok {
			continue
		}
		result[name] = models.NewNumericKPI(name, agg)
	}
	return result
}

func (a *Aggregator) collect(dir *models.ScanDir, collected map[string][]float64) {
	for _, f := range dir.Files {
		for name, kpi := range f.KPIs {
			if kpi.Kind() != models.KindNumeric {
				continue
			}
			collected[name] = append(collected[name], kpi.Numeric())
		}
	}

	for _, sub := range dir.Dirs {
		a.collect(sub, collected)
	}
}

// reduce applies the registered (or default mean) strategy for name,
// rounding to one decimal place. Returns ok=false for an empty sample set.
func (a *Aggregator) reduce(name string, values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	strategy, ok := a.strategies[name]
	if !ok {
		strategy = StrategyMean
	}

	var raw float64
	switch strategy {
	case StrategySum:
		raw = sum(values)
	case StrategyMax:
		raw = max(values)
	case StrategyMin:
		raw = min(values)
	default:
		raw = sum(values) / float64(len(values))
	}

	return math.Round(raw*10) / 10, true
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func max(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func min(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
