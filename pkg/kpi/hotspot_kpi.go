package kpi

import "github.com/metricmancer/metricmancer/pkg/models"

// DefaultHotspotThreshold is the score above which a file is flagged a
// hotspot, per original_source/src/hotspot_score.py.
const DefaultHotspotThreshold = 300.0

// HotspotKPI multiplies complexity by churn. Negative inputs (which should
// never occur from a well-formed FileContext) degrade to a score of 0
// rather than producing a misleading negative hotspot score.
type HotspotKPI struct {
	Threshold float64
}

// NewHotspotKPI builds a HotspotKPI using DefaultHotspotThreshold.
func NewHotspotKPI() HotspotKPI {
	return HotspotKPI{Threshold: DefaultHotspotThreshold}
}

func (h HotspotKPI) Calculate(ctx FileContext) (models.KPIValue, error) {
	complexity := float64(ctx.Complexity)
	if complexity < 0 || ctx.Churn < 0 {
		return models.NewNumericKPI("hotspot", 0), nil
	}
	return models.NewNumericKPI("hotspot", complexity*ctx.Churn), nil
}

// IsHotspot reports whether score exceeds threshold (strictly greater
// than, matching HotspotScore.is_hotspot).
func (h HotspotKPI) IsHotspot(score float64) bool {
	return score > h.Threshold
}
