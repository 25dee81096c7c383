package visualization

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metricmancer/metricmancer/pkg/models"
)

func testFile(name string, complexity, cognitive, churn, hotspot float64) *models.File {
	return &models.File{
		Filename:     name,
		AbsolutePath: "/repo/" + name,
		Language:     "Go",
		KPIs: map[string]models.KPIValue{
			"complexity":           models.NewNumericKPI("complexity", complexity),
			"cognitive_complexity": models.NewNumericKPI("cognitive_complexity", cognitive),
			"churn":                models.NewNumericKPI("churn", churn),
			"hotspot":              models.NewNumericKPI("hotspot", hotspot),
		},
	}
}

func testGitRepoInfo(files ...*models.File) *models.GitRepoInfo {
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

func TestNewHTMLVisualizer(t *testing.T) {
	visualizer := NewHTMLVisualizer()

	assert.NotNil(t, visualizer)
}

func TestGenerateHTMLEmpty(t *testing.T) {
	visualizer := NewHTMLVisualizer()

	html, err := visualizer.GenerateHTML(testGitRepoInfo(), nil)

	require.NoError(t, err)
	assert.NotEmpty(t, html)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "d3")
}

func TestGenerateHTMLWithData(t *testing.T) {
	visualizer := NewHTMLVisualizer()

	repo := testGitRepoInfo(testFile("main.go", 5, 5, 0, 0))

	html, err := visualizer.GenerateHTML(repo, nil)

	require.NoError(t, err)
	assert.NotEmpty(t, html)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "main.go")
}

func TestGenerateHTMLWithScoreReport(t *testing.T) {
	visualizer := NewHTMLVisualizer()

	repo := testGitRepoInfo()
	report := &models.ScoreReport{
		OverallScore: 85.0,
		OverallGrade: "B",
	}

	html, err := visualizer.GenerateHTML(repo, report)

	require.NoError(t, err)
	assert.NotEmpty(t, html)
	assert.Contains(t, html, "85")
}

func TestGenerateHTMLContainsD3(t *testing.T) {
	visualizer := NewHTMLVisualizer()

	html, err := visualizer.GenerateHTML(testGitRepoInfo(), nil)

	require.NoError(t, err)
	assert.Contains(t, html, "d3")
	assert.Contains(t, html, "<script")
}

func TestGenerateHTMLContainsTreemap(t *testing.T) {
	visualizer := NewHTMLVisualizer()

	html, err := visualizer.GenerateHTML(testGitRepoInfo(), nil)

	require.NoError(t, err)
	assert.Contains(t, html, "treemap")
}

func TestGenerateHTMLIsValidHTML(t *testing.T) {
	visualizer := NewHTMLVisualizer()

	repo := testGitRepoInfo(testFile("main.go", 2, 2, 0, 0))

	html, err := visualizer.GenerateHTML(repo, nil)

	require.NoError(t, err)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "<head")
	assert.Contains(t, html, "<body")
	assert.Contains(t, html, "</html>")
}

func TestGenerateHTMLMultipleFiles(t *testing.T) {
	visualizer := NewHTMLVisualizer()

	repo := testGitRepoInfo(
		testFile("api.go", 8, 10, 5, 40),
		testFile("db.go", 5, 5, 2, 10),
	)

	html, err := visualizer.GenerateHTML(repo, nil)

	require.NoError(t, err)
	assert.NotEmpty(t, html)
}

func TestTreeNodeJSON(t *testing.T) {
	node := TreeNode{
		Name:  "pkg",
		Value: 1000,
		Metrics: TreeMetrics{
			ComplexityScore: 75.0,
			ChurnScore:      80.0,
		},
	}

	data, err := json.Marshal(node)

	require.NoError(t, err)
	assert.NotEmpty(t, data)

	var unmarshaled TreeNode
	err = json.Unmarshal(data, &unmarshaled)
	require.NoError(t, err)
	assert.Equal(t, "pkg", unmarshaled.Name)
	assert.Equal(t, 1000, unmarshaled.Value)
}

func TestGenerateHTMLWithNilScoreReport(t *testing.T) {
	visualizer := NewHTMLVisualizer()

	repo := testGitRepoInfo(testFile("main.go", 2, 2, 0, 0))

	html, err := visualizer.GenerateHTML(repo, nil)

	require.NoError(t, err)
	assert.NotEmpty(t, html)
}

func TestGenerateHTMLMetricsPresent(t *testing.T) {
	visualizer := NewHTMLVisualizer()

	html, err := visualizer.GenerateHTML(testGitRepoInfo(), nil)

	require.NoError(t, err)
	assert.Contains(t, html, "Complexity")
}

func TestGenerateHTMLRepositoryInfo(t *testing.T) {
	visualizer := NewHTMLVisualizer()

	repo := testGitRepoInfo()
	repo.RepoRoot = "/home/dev/project"

	html, err := visualizer.GenerateHTML(repo, nil)

	require.NoError(t, err)
	assert.NotEmpty(t, html)
}

func TestHTMLVisualizerWithComplexStructure(t *testing.T) {
	visualizer := NewHTMLVisualizer()

	root := models.NewScanDir("repo", "/repo")
	root.Files["main.go"] = testFile("main.go", 2, 2, 0, 0)

	api := models.NewScanDir("api", "/repo/pkg/api")
	api.Files["handler.go"] = testFile("handler.go", 12, 15, 8, 90)

	storage := models.NewScanDir("storage", "/repo/pkg/storage")
	storage.Files["store.go"] = testFile("store.go", 6, 6, 3, 20)

	pkg := models.NewScanDir("pkg", "/repo/pkg")
	pkg.Dirs["api"] = api
	pkg.Dirs["storage"] = storage
	root.Dirs["pkg"] = pkg

	repo := &models.GitRepoInfo{
		RepoRoot:   "/repo",
		RepoName:   "repo",
		Results:    root,
		AnalyzedAt: time.Now(),
	}

	report := &models.ScoreReport{
		OverallScore: 82.0,
		OverallGrade: "B",
	}

	html, err := visualizer.GenerateHTML(repo, report)

	require.NoError(t, err)
	assert.NotEmpty(t, html)
	assert.Greater(t, len(html), 5000)
}
