package reports

import (
	"github.com/metricmancer/metricmancer/pkg/models"
)

// ScoreWeights defines each KPI's contribution to the overall score.
type ScoreWeights struct {
	Complexity          float64
	CognitiveComplexity float64
	Churn               float64
	Hotspot             float64
}

// DefaultWeights returns the default score weights.
func DefaultWeights() ScoreWeights {
	return ScoreWeights{
		Complexity:          0.30,
		CognitiveComplexity: 0.25,
		Churn:               0.20,
		Hotspot:             0.25,
	}
}

// WeightsWithoutChurn redistributes churn's weight when no churn data is
// available.
func WeightsWithoutChurn() ScoreWeights {
	return ScoreWeights{
		Complexity:          0.40,
		CognitiveComplexity: 0.35,
		Churn:               0.0,
		Hotspot:             0.25,
	}
}

// fileMetrics is one file's flattened KPI values, gathered by walking the
// ScanDir tree.
type fileMetrics struct {
	filePath   string
	complexity float64
	cognitive  float64
	churn      float64
	hotspot    float64
}

// collectFiles walks dir and its descendants, flattening each file's
// numeric KPI values for scoring.
func collectFiles(dir *models.ScanDir) []fileMetrics {
	if dir == nil {
		return nil
	}

	var files []fileMetrics
	for _, file := range dir.Files {
		files = append(files, fileMetrics{
			filePath:   file.AbsolutePath,
			complexity: numericKPI(file, "complexity"),
			cognitive:  numericKPI(file, "cognitive_complexity"),
			churn:      numericKPI(file, "churn"),
			hotspot:    numericKPI(file, "hotspot"),
		})
	}
	for _, child := range dir.Dirs {
		files = append(files, collectFiles(child)...)
	}
	return files
}

func numericKPI(file *models.File, name string) float64 {
	kpi, ok := file.KPIs[name]
	if !ok || kpi.Kind() != models.KindNumeric {
		return 0
	}
	return kpi.Numeric()
}

// GenerateScoreReport calculates the overall score report for a repository
// snapshot.
func GenerateScoreReport(repo *models.GitRepoInfo, hasChurnData bool) *models.ScoreReport {
	files := collectFiles(repo.Results)
	if len(files) == 0 {
		return createEmptyCodebaseReport()
	}

	weights := DefaultWeights()
	if !hasChurnData {
		weights = WeightsWithoutChurn()
	}

	componentScores := calculateComponentScores(files, hasChurnData, weights)
	overallScore := calculateOverallScore(componentScores, weights)
	overallGrade := gradeForScore(overallScore)

	return &models.ScoreReport{
		OverallGrade:    overallGrade,
		OverallScore:    overallScore,
		ComponentScores: componentScores,
		HasChurnData:    hasChurnData,
	}
}

func createEmptyCodebaseReport() *models.ScoreReport {
	return &models.ScoreReport{
		OverallGrade: "A",
		OverallScore: 100,
		ComponentScores: models.ComponentScores{
			Complexity:          models.CategoryScore{Score: 100, Weight: 0.30, Category: "excellent"},
			CognitiveComplexity: models.CategoryScore{Score: 100, Weight: 0.25, Category: "excellent"},
			Churn:               models.CategoryScore{Score: 100, Weight: 0.20, Category: "excellent"},
			Hotspot:             models.CategoryScore{Score: 100, Weight: 0.25, Category: "excellent"},
		},
		Concerns: []models.Concern{{
			Type:        "empty_codebase",
			Severity:    "info",
			Title:       "No Files Found",
			Description: "No files found to analyze",
		}},
		HasChurnData: false,
	}
}

func calculateComponentScores(files []fileMetrics, hasChurnData bool, weights ScoreWeights) models.ComponentScores {
	complexityScore := calculateComplexityScore(files)
	cognitiveScore := calculateCognitiveScore(files)
	churnScore := calculateChurnScore(files, hasChurnData)
	hotspotScore := calculateHotspotScore(files)

	return models.ComponentScores{
		Complexity: models.CategoryScore{
			Score:    complexityScore,
			Weight:   weights.Complexity,
			Category: categoryForScore(complexityScore),
		},
		CognitiveComplexity: models.CategoryScore{
			Score:    cognitiveScore,
			Weight:   weights.CognitiveComplexity,
			Category: categoryForScore(cognitiveScore),
		},
		Churn: models.CategoryScore{
			Score:    churnScore,
			Weight:   weights.Churn,
			Category: categoryForScore(churnScore),
		},
		Hotspot: models.CategoryScore{
			Score:    hotspotScore,
			Weight:   weights.Hotspot,
			Category: categoryForScore(hotspotScore),
		},
	}
}

// calculateComplexityScore: 100 - clamp(avgComplexity * 5, 0, 100).
// Complexity of 20 per file = score of 0.
func calculateComplexityScore(files []fileMetrics) float64 {
	avg := average(files, func(f fileMetrics) float64 { return f.complexity })
	return 100 - clamp(avg*5, 0, 100)
}

// calculateCognitiveScore: 100 - clamp(avgCognitive * 4, 0, 100).
// Cognitive complexity of 25 per file = score of 0.
func calculateCognitiveScore(files []fileMetrics) float64 {
	avg := average(files, func(f fileMetrics) float64 { return f.cognitive })
	return 100 - clamp(avg*4, 0, 100)
}

// calculateChurnScore: 100 - clamp(avgChurn * 2, 0, 100).
// Returns a neutral score of 70 when no churn data was collected.
func calculateChurnScore(files []fileMetrics, hasChurnData bool) float64 {
	if !hasChurnData {
		return 70
	}
	avg := average(files, func(f fileMetrics) float64 { return f.churn })
	return 100 - clamp(avg*2, 0, 100)
}

// calculateHotspotScore: 100 - clamp(maxHotspot / threshold * 100, 0, 100).
func calculateHotspotScore(files []fileMetrics) float64 {
	maxHotspot := 0.0
	for _, f := range files {
		if f.hotspot > maxHotspot {
			maxHotspot = f.hotspot
		}
	}
	return 100 - clamp(maxHotspot/DefaultHotspotReferenceScore*100, 0, 100)
}

// DefaultHotspotReferenceScore anchors the hotspot score's 0-100 scale; it
// matches kpi.DefaultHotspotThreshold so a file right at the hotspot
// threshold scores 0.
const DefaultHotspotReferenceScore = 300.0

func average(files []fileMetrics, pick func(fileMetrics) float64) float64 {
	if len(files) == 0 {
		return 0
	}
	var sum float64
	for _, f := range files {
		sum += pick(f)
	}
	return sum / float64(len(files))
}

func calculateOverallScore(scores models.ComponentScores, weights ScoreWeights) float64 {
	overall := scores.Complexity.Score*weights.Complexity +
		scores.CognitiveComplexity.Score*weights.CognitiveComplexity +
		scores.Churn.Score*weights.Churn +
		scores.Hotspot.Score*weights.Hotspot

	totalWeight := weights.Complexity + weights.CognitiveComplexity + weights.Churn + weights.Hotspot
	if totalWeight > 0 && totalWeight != 1.0 {
		overall = overall / totalWeight
	}

	return clamp(overall, 0, 100)
}

// Letter-grade cutoffs for a 0-100 overall score.
const (
	gradeCutoffA = 90.0
	gradeCutoffB = 75.0
	gradeCutoffC = 60.0
	gradeCutoffD = 40.0
)

// Per-component category cutoffs; these mirror the letter-grade cutoffs
// today but are kept as a distinct scale since a component score and the
// blended overall score aren't guaranteed to stay aligned as weights change.
const (
	categoryCutoffExcellent = 90.0
	categoryCutoffGood      = 75.0
	categoryCutoffModerate  = 60.0
	categoryCutoffPoor      = 40.0
)

// gradeForScore converts a blended 0-100 overall score into a report-card
// letter grade.
func gradeForScore(score float64) string {
	switch {
	case score >= gradeCutoffA:
		return "A"
	case score >= gradeCutoffB:
		return "B"
	case score >= gradeCutoffC:
		return "C"
	case score >= gradeCutoffD:
		return "D"
	default:
		return "F"
	}
}

// categoryForScore labels a single component's 0-100 score for display
// alongside its numeric value in a ComponentScores breakdown.
func categoryForScore(score float64) string {
	switch {
	case score >= categoryCutoffExcellent:
		return "excellent"
	case score >= categoryCutoffGood:
		return "good"
	case score >= categoryCutoffModerate:
		return "moderate"
	case score >= categoryCutoffPoor:
		return "poor"
	default:
		return "critical"
	}
}

// clamp restricts value to [minVal, maxVal], used when combining weighted
// KPI scores that could otherwise drift outside the 0-100 display range.
func clamp(value, minVal, maxVal float64) float64 {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
