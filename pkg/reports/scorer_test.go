package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/metricmancer/metricmancer/pkg/models"
)

func fileWithKPIs(name string, kpis map[string]models.KPIValue) *models.File {
	return &models.File{
		Filename:     name,
		AbsolutePath: "/repo/" + name,
		Language:     "Go",
		KPIs:         kpis,
	}
}

func numericKPIs(complexity, cognitive, churn, hotspot float64) map[string]models.KPIValue {
	return map[string]models.KPIValue{
		"complexity":           models.NewNumericKPI("complexity", complexity),
		"cognitive_complexity": models.NewNumericKPI("cognitive_complexity", cognitive),
		"churn":                models.NewNumericKPI("churn", churn),
		"hotspot":              models.NewNumericKPI("hotspot", hotspot),
	}
}

func repoWithFiles(files ...*models.File) *models.GitRepoInfo {
	root := models.NewScanDir("repo", "/repo")
	for _, f := range files {
		root.Files[f.Filename] = f
	}
	return &models.GitRepoInfo{
		RepoRoot:   "/repo",
		RepoName:   "repo",
		Results:    root,
		AnalyzedAt: time.Now(),
	}
}

func TestGenerateScoreReportEmptyCodebase(t *testing.T) {
	repo := repoWithFiles()

	report := GenerateScoreReport(repo, true)

	assert.Equal(t, "A", report.OverallGrade)
	assert.Equal(t, 100.0, report.OverallScore)
	assert.False(t, report.HasChurnData)
	assert.Len(t, report.Concerns, 1)
	assert.Equal(t, "empty_codebase", report.Concerns[0].Type)
}

func TestGenerateScoreReportCleanCodebase(t *testing.T) {
	repo := repoWithFiles(
		fileWithKPIs("clean.go", numericKPIs(2, 3, 1, 2)),
	)

	report := GenerateScoreReport(repo, true)

	assert.Equal(t, "A", report.OverallGrade)
	assert.True(t, report.OverallScore > 90)
	assert.True(t, report.HasChurnData)
	assert.Equal(t, "excellent", report.ComponentScores.Complexity.Category)
}

func TestGenerateScoreReportHighComplexityLowersScore(t *testing.T) {
	repo := repoWithFiles(
		fileWithKPIs("bad.go", numericKPIs(20, 25, 10, 300)),
	)

	report := GenerateScoreReport(repo, true)

	assert.Equal(t, 0.0, report.ComponentScores.Complexity.Score)
	assert.Equal(t, 0.0, report.ComponentScores.CognitiveComplexity.Score)
	assert.Equal(t, 0.0, report.ComponentScores.Hotspot.Score)
	assert.Equal(t, "critical", report.ComponentScores.Complexity.Category)
	assert.True(t, report.OverallScore < 40)
}

func TestGenerateScoreReportWithoutChurnData(t *testing.T) {
	repo := repoWithFiles(
		fileWithKPIs("a.go", numericKPIs(2, 3, 0, 0)),
	)

	report := GenerateScoreReport(repo, false)

	assert.False(t, report.HasChurnData)
	assert.Equal(t, 70.0, report.ComponentScores.Churn.Score)
	assert.Equal(t, 0.0, report.ComponentScores.Churn.Weight)
}

func TestCalculateComplexityScore(t *testing.T) {
	files := []fileMetrics{
		{filePath: "a.go", complexity: 10},
		{filePath: "b.go", complexity: 10},
	}

	score := calculateComplexityScore(files)

	assert.Equal(t, 50.0, score)
}

func TestCalculateHotspotScoreUsesMax(t *testing.T) {
	files := []fileMetrics{
		{filePath: "a.go", hotspot: 150},
		{filePath: "b.go", hotspot: 300},
	}

	score := calculateHotspotScore(files)

	assert.Equal(t, 0.0, score)
}

func TestCalculateChurnScoreNeutralWithoutData(t *testing.T) {
	files := []fileMetrics{{filePath: "a.go", churn: 1000}}

	score := calculateChurnScore(files, false)

	assert.Equal(t, 70.0, score)
}

func TestCollectFilesWalksNestedDirs(t *testing.T) {
	root := models.NewScanDir("repo", "/repo")
	root.Files["top.go"] = fileWithKPIs("top.go", numericKPIs(1, 1, 1, 1))

	sub := models.NewScanDir("pkg", "/repo/pkg")
	sub.Files["nested.go"] = fileWithKPIs("nested.go", numericKPIs(2, 2, 2, 2))
	root.Dirs["pkg"] = sub

	files := collectFiles(root)

	assert.Len(t, files, 2)
}

func TestCalculateOverallScoreNormalizesPartialWeights(t *testing.T) {
	scores := models.ComponentScores{
		Complexity:          models.CategoryScore{Score: 100},
		CognitiveComplexity: models.CategoryScore{Score: 100},
		Churn:               models.CategoryScore{Score: 0},
		Hotspot:             models.CategoryScore{Score: 100},
	}
	weights := WeightsWithoutChurn()

	overall := calculateOverallScore(scores, weights)

	assert.Equal(t, 100.0, overall)
}

func TestGradeForScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{100.0, "A"}, {90.0, "A"}, {89.9, "B"},
		{75.0, "B"}, {74.9, "C"},
		{60.0, "C"}, {59.9, "D"},
		{40.0, "D"}, {39.9, "F"},
		{0.0, "F"}, {-10.0, "F"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, gradeForScore(tc.score), "score %v", tc.score)
	}
}

func TestCategoryForScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{95.0, "excellent"}, {90.0, "excellent"}, {89.9, "good"},
		{75.0, "good"}, {74.9, "moderate"},
		{60.0, "moderate"}, {59.9, "poor"},
		{40.0, "poor"}, {39.9, "critical"},
		{0.0, "critical"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, categoryForScore(tc.score), "score %v", tc.score)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		value, minVal, maxVal, expected float64
	}{
		{50.0, 0.0, 100.0, 50.0},
		{-10.0, 0.0, 100.0, 0.0},
		{150.0, 0.0, 100.0, 100.0},
		{0.0, 0.0, 100.0, 0.0},
		{100.0, 0.0, 100.0, 100.0},
		{-50.0, -100.0, -10.0, -50.0},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, clamp(tc.value, tc.minVal, tc.maxVal))
	}
}
