package reports

import (
	"fmt"
	"sort"

	"github.com/metricmancer/metricmancer/internal/config"
	"github.com/metricmancer/metricmancer/pkg/models"
)

const MaxConcernItems = 5 // Max affected items to show per concern

// DetectConcerns analyzes a repository snapshot and returns a list of
// concerns, sorted critical-first.
func DetectConcerns(repo *models.GitRepoInfo, hasChurnData bool, thresholds config.ThresholdConfig) []models.Concern {
	files := collectFiles(repo.Results)

	var concerns []models.Concern

	concerns = append(concerns, detectHotspots(files, thresholds)...)
	concerns = append(concerns, detectHighComplexity(files, thresholds)...)
	concerns = append(concerns, detectHighCognitiveComplexity(files, thresholds)...)
	if hasChurnData {
		concerns = append(concerns, detectHighChurn(files, thresholds)...)
	}
	concerns = append(concerns, detectOwnershipRisk(repo.Results, thresholds)...)

	sortConcernsBySeverity(concerns)

	return concerns
}

func detectHotspots(files []fileMetrics, thresholds config.ThresholdConfig) []models.Concern {
	var affected []models.AffectedItem

	for _, f := range files {
		if f.hotspot > thresholds.Hotspot.Score {
			affected = append(affected, models.AffectedItem{
				FilePath: f.filePath,
				Metrics: map[string]float64{
					"complexity": f.complexity,
					"churn":      f.churn,
					"hotspot":    f.hotspot,
				},
			})
		}
	}

	if len(affected) == 0 {
		return nil
	}

	sortAffectedItemsByScore(affected, func(item models.AffectedItem) float64 {
		return item.Metrics["hotspot"]
	})

	return []models.Concern{{
		Type:          "hotspot",
		Severity:      "critical",
		Title:         "Complexity Hotspots",
		Description:   buildHotspotDescription(affected),
		AffectedItems: limitAffectedItems(affected, MaxConcernItems),
	}}
}

func detectHighComplexity(files []fileMetrics, thresholds config.ThresholdConfig) []models.Concern {
	t := thresholds.Complexity
	return detectBySeverityThreshold(files, t, func(f fileMetrics) float64 { return f.complexity },
		"high_complexity", "metric-complexity",
		func(items []models.AffectedItem, severity string) string {
			return buildThresholdDescription(items, "metric-complexity", severity,
				"Files with high cyclomatic complexity are harder to test and more error-prone. Consider extracting logic into smaller functions.")
		})
}

func detectHighCognitiveComplexity(files []fileMetrics, thresholds config.ThresholdConfig) []models.Concern {
	t := thresholds.CognitiveComplexity
	return detectBySeverityThreshold(files, t, func(f fileMetrics) float64 { return f.cognitive },
		"high_cognitive_complexity", "metric-cognitive",
		func(items []models.AffectedItem, severity string) string {
			return buildThresholdDescription(items, "metric-cognitive", severity,
				"Files with high cognitive complexity are hard to read even if mechanically simple. Use guard clauses and flatten nested conditionals.")
		})
}

func detectHighChurn(files []fileMetrics, thresholds config.ThresholdConfig) []models.Concern {
	t := thresholds.Churn
	return detectBySeverityThreshold(files, t, func(f fileMetrics) float64 { return f.churn },
		"high_churn", "metric-churn",
		func(items []models.AffectedItem, severity string) string {
			return buildThresholdDescription(items, "metric-churn", severity,
				"Frequently changing files accumulate risk with every edit. Watch these closely during review.")
		})
}

// detectBySeverityThreshold applies a two-tier (warning/critical) severity
// split against t for the metric picked out by metric, producing at most
// two concerns of the given type.
func detectBySeverityThreshold(
	files []fileMetrics,
	t config.SeverityThresholds,
	metric func(fileMetrics) float64,
	concernType, metricKey string,
	describe func(items []models.AffectedItem, severity string) string,
) []models.Concern {
	var warningItems, criticalItems []models.AffectedItem

	for _, f := range files {
		value := metric(f)
		if value <= float64(t.Warning) {
			continue
		}

		item := models.AffectedItem{
			FilePath: f.filePath,
			Metrics:  map[string]float64{metricKey: value},
		}

		if value > float64(t.Critical) {
			criticalItems = append(criticalItems, item)
		} else {
			warningItems = append(warningItems, item)
		}
	}

	var concerns []models.Concern

	if len(criticalItems) > 0 {
		sortAffectedItemsByScore(criticalItems, func(item models.AffectedItem) float64 { return item.Metrics[metricKey] })
		concerns = append(concerns, models.Concern{
			Type:          concernType,
			Severity:      "critical",
			Title:         concernTitle(concernType, "critical"),
			Description:   describe(criticalItems, "critical"),
			AffectedItems: limitAffectedItems(criticalItems, MaxConcernItems),
		})
	}

	if len(warningItems) > 0 {
		sortAffectedItemsByScore(warningItems, func(item models.AffectedItem) float64 { return item.Metrics[metricKey] })
		concerns = append(concerns, models.Concern{
			Type:          concernType,
			Severity:      "warning",
			Title:         concernTitle(concernType, "warning"),
			Description:   describe(warningItems, "warning"),
			AffectedItems: limitAffectedItems(warningItems, MaxConcernItems),
		})
	}

	return concerns
}

func concernTitle(concernType, severity string) string {
	titles := map[string]string{
		"high_complexity":           "High Complexity Files",
		"high_cognitive_complexity": "High Cognitive Complexity Files",
		"high_churn":                "Frequently Changing Files",
	}
	if severity == "critical" {
		return "Critical " + titles[concernType]
	}
	return titles[concernType]
}

func buildThresholdDescription(items []models.AffectedItem, metricKey, severity, guidance string) string {
	if len(items) == 0 {
		return guidance
	}

	var total float64
	for _, item := range items {
		total += item.Metrics[metricKey]
	}
	avg := total / float64(len(items))

	return fmt.Sprintf("%d file(s) averaging %.1f. %s", len(items), avg, guidance)
}

// detectOwnershipRisk flags files owned by a single author past the
// configured single-owner threshold: a bus-factor risk.
func detectOwnershipRisk(root *models.ScanDir, thresholds config.ThresholdConfig) []models.Concern {
	var affected []models.AffectedItem
	collectOwnershipRisk(root, thresholds.Ownership.SingleOwner, &affected)

	if len(affected) == 0 {
		return nil
	}

	sortAffectedItemsByScore(affected, func(item models.AffectedItem) float64 {
		return item.Metrics["primary_share"]
	})

	return []models.Concern{{
		Type:          "single_owner_risk",
		Severity:      "warning",
		Title:         "Single-Owner Files",
		Description:   buildOwnershipDescription(affected),
		AffectedItems: limitAffectedItems(affected, MaxConcernItems),
	}}
}

func collectOwnershipRisk(dir *models.ScanDir, singleOwnerThreshold float64, affected *[]models.AffectedItem) {
	if dir == nil {
		return
	}

	for _, file := range dir.Files {
		kpi, ok := file.KPIs["code_ownership"]
		if !ok || kpi.Kind() != models.KindOwnership {
			continue
		}
		ownership := kpi.Ownership()
		if len(ownership.Authors) == 0 {
			continue
		}
		primaryShare := float64(ownership.Authors[0].Share) / 100
		if primaryShare > singleOwnerThreshold {
			*affected = append(*affected, models.AffectedItem{
				FilePath: file.AbsolutePath,
				Metrics:  map[string]float64{"primary_share": primaryShare},
			})
		}
	}
	for _, child := range dir.Dirs {
		collectOwnershipRisk(child, singleOwnerThreshold, affected)
	}
}

func buildOwnershipDescription(items []models.AffectedItem) string {
	if len(items) == 0 {
		return "Files owned by a single author are at risk if that author leaves the project."
	}

	var total float64
	for _, item := range items {
		total += item.Metrics["primary_share"]
	}
	avg := total / float64(len(items)) * 100

	return fmt.Sprintf(
		"%d file(s) are %.0f%% owned by a single author on average. Pair review or rotate ownership to reduce bus-factor risk.",
		len(items), avg,
	)
}

func sortAffectedItemsByScore(items []models.AffectedItem, scoreFunc func(models.AffectedItem) float64) {
	sort.Slice(items, func(i, j int) bool {
		return scoreFunc(items[i]) > scoreFunc(items[j])
	})
}

func limitAffectedItems(items []models.AffectedItem, maxItems int) []models.AffectedItem {
	if len(items) <= maxItems {
		return items
	}
	return items[:maxItems]
}

func sortConcernsBySeverity(concerns []models.Concern) {
	severityOrder := map[string]int{
		"critical": 0,
		"warning":  1,
		"info":     2,
	}

	sort.Slice(concerns, func(i, j int) bool {
		return severityOrder[concerns[i].Severity] < severityOrder[concerns[j].Severity]
	})
}

// buildHotspotDescription explains why files are complexity hotspots.
func buildHotspotDescription(items []models.AffectedItem) string {
	if len(items) == 0 {
		return "High complexity files that change frequently are risky to modify."
	}

	var totalComplexity, totalChurn float64
	for _, item := range items {
		totalComplexity += item.Metrics["complexity"]
		totalChurn += item.Metrics["churn"]
	}

	avgComplexity := totalComplexity / float64(len(items))
	avgChurn := totalChurn / float64(len(items))

	return fmt.Sprintf(
		"These files average complexity %.0f with churn %.0f. High complexity makes changes error-prone, and frequent changes multiply that risk.",
		avgComplexity, avgChurn,
	)
}
