package trending

import (
	"strings"
	"testing"
	"time"

	"github.com/metricmancer/metricmancer/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderASCIIChartEmpty(t *testing.T) {
	output := RenderASCIIChart("complexity", []storage.TimeSeriesPoint{}, "pkg/api")

	assert.NotEmpty(t, output)
	assert.Contains(t, output, "No data available")
}

func TestRenderASCIIChartSinglePoint(t *testing.T) {
	points := []storage.TimeSeriesPoint{
		{Timestamp: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), Value: 5.0},
	}

	output := RenderASCIIChart("complexity", points, "")

	assert.NotEmpty(t, output)
	assert.Contains(t, output, "complexity Trend")
	assert.Contains(t, output, "Stats:")
}

func TestRenderASCIIChartMultiplePoints(t *testing.T) {
	points := []storage.TimeSeriesPoint{
		{Timestamp: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), Value: 3.0},
		{Timestamp: time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC), Value: 5.0},
		{Timestamp: time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC), Value: 7.0},
	}

	output := RenderASCIIChart("complexity", points, "")

	assert.NotEmpty(t, output)
	assert.Contains(t, output, "Jan 15 to Jan 17")
	assert.Contains(t, output, "3 snapshots")
	assert.Contains(t, output, "Stats:")
}

func TestRenderASCIIChartWithScopePath(t *testing.T) {
	points := []storage.TimeSeriesPoint{
		{Timestamp: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), Value: 5.0},
	}

	output := RenderASCIIChart("hotspot", points, "pkg/storage")

	assert.NotEmpty(t, output)
	assert.Contains(t, output, "hotspot - pkg/storage")
}

func TestRenderASCIIChartFlatData(t *testing.T) {
	points := []storage.TimeSeriesPoint{
		{Timestamp: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), Value: 5.0},
		{Timestamp: time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC), Value: 5.0},
		{Timestamp: time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC), Value: 5.0},
	}

	output := RenderASCIIChart("complexity", points, "")

	assert.NotEmpty(t, output)
	assert.Contains(t, output, "Stats:")
}

func TestRenderComparisonTable(t *testing.T) {
	snapshot1 := &storage.SnapshotSummary{
		AnalyzedAt:              time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		RepoRoot:                "/repo/one",
		GitCommitHash:           "abcdef1234567890",
		TotalFiles:              50,
		TotalComplexity:          5.5,
		TotalCognitiveComplexity: 4.2,
		TotalChurn:               3.1,
		MaxHotspotScore:         18.0,
		HotspotCount:            2,
	}

	snapshot2 := &storage.SnapshotSummary{
		AnalyzedAt:              time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC),
		RepoRoot:                "/repo/one",
		GitCommitHash:           "1234567890abcdef",
		TotalFiles:              52,
		TotalComplexity:          5.2,
		TotalCognitiveComplexity: 4.0,
		TotalChurn:               2.8,
		MaxHotspotScore:         15.0,
		HotspotCount:            1,
	}

	output := RenderComparisonTable(snapshot1, snapshot2)

	assert.NotEmpty(t, output)
	assert.Contains(t, output, "Snapshot Comparison")
	assert.Contains(t, output, "Total Complexity")
	assert.Contains(t, output, "Metric")
	assert.Contains(t, output, "Snapshot 1")
	assert.Contains(t, output, "Snapshot 2")
	assert.Contains(t, output, "abcdef12")
}

func TestRenderComparisonTableMissingCommitHash(t *testing.T) {
	snapshot1 := &storage.SnapshotSummary{AnalyzedAt: time.Now()}
	snapshot2 := &storage.SnapshotSummary{AnalyzedAt: time.Now()}

	output := RenderComparisonTable(snapshot1, snapshot2)

	assert.Contains(t, output, "N/A")
}

func TestScaleDownPoints(t *testing.T) {
	tests := []struct {
		name        string
		data        []float64
		targetWidth int
		expected    int
	}{
		{name: "no scaling needed", data: []float64{1, 2, 3, 4, 5}, targetWidth: 10, expected: 5},
		{name: "scale down", data: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, targetWidth: 5, expected: 5},
		{name: "single point", data: []float64{5.0}, targetWidth: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scaleDownPoints(tt.data, tt.targetWidth)
			assert.Len(t, result, tt.expected)
		})
	}
}

func TestScaleDownPointsAveraging(t *testing.T) {
	data := []float64{10, 20, 30, 40}
	result := scaleDownPoints(data, 2)

	require.Len(t, result, 2)
	assert.InDelta(t, 15.0, result[0], 1.0)
	assert.InDelta(t, 35.0, result[1], 1.0)
}

func TestFormatStats(t *testing.T) {
	points := []storage.TimeSeriesPoint{
		{Timestamp: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), Value: 5.0},
		{Timestamp: time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC), Value: 8.0},
		{Timestamp: time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC), Value: 10.0},
	}

	stats := formatStats("complexity", points)

	assert.NotEmpty(t, stats)
	assert.Contains(t, stats, "Stats:")
	assert.Contains(t, stats, "Min=")
	assert.Contains(t, stats, "Max=")
	assert.Contains(t, stats, "Avg=")
	assert.Contains(t, stats, "Current=")
}

func TestFormatStatsUpwardTrend(t *testing.T) {
	points := []storage.TimeSeriesPoint{
		{Timestamp: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), Value: 5.0},
		{Timestamp: time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC), Value: 8.0},
		{Timestamp: time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC), Value: 12.0},
	}

	stats := formatStats("complexity", points)

	assert.Contains(t, stats, "↑")
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "N/A", shortHash(""))
	assert.Equal(t, "abcdef12", shortHash("abcdef1234567890"))
	assert.Equal(t, "abc", shortHash("abc"))
}

func TestRenderChartLinesIncludeMetric(t *testing.T) {
	points := []storage.TimeSeriesPoint{
		{Timestamp: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), Value: 5.0},
		{Timestamp: time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC), Value: 8.0},
	}

	output := RenderASCIIChart("hotspot", points, "pkg/api")

	assert.Contains(t, output, "hotspot")
	assert.Contains(t, output, "pkg/api")
	assert.True(t, strings.Contains(output, "Jan 15") && strings.Contains(output, "Jan 16"))
}

func TestRenderChartWithHighValues(t *testing.T) {
	points := []storage.TimeSeriesPoint{
		{Timestamp: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), Value: 100.0},
		{Timestamp: time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC), Value: 250.0},
		{Timestamp: time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC), Value: 150.0},
	}

	output := RenderASCIIChart("complexity", points, "")

	assert.NotEmpty(t, output)
	assert.Contains(t, output, "Stats:")
	assert.True(t, strings.Contains(output, "↑") || strings.Contains(output, "↓"))
}
