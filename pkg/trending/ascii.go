package trending

import (
	"fmt"
	"strings"

	"github.com/metricmancer/metricmancer/pkg/storage"
)

// RenderASCIIChart renders a KPI time series as an ASCII chart.
func RenderASCIIChart(kpiName string, points []storage.TimeSeriesPoint, scopePath string) string {
	if len(points) == 0 {
		return fmt.Sprintf("No data available for metric: %s\n", kpiName)
	}

	minVal := points[0].Value
	maxVal := points[0].Value
	for _, p := range points {
		if p.Value < minVal {
			minVal = p.Value
		}
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}

	if minVal == maxVal {
		maxVal = minVal + 1
	}

	return renderChart(kpiName, scopePath, points, minVal, maxVal)
}

func renderChart(kpiName, scopePath string, points []storage.TimeSeriesPoint, minVal, maxVal float64) string {
	const (
		width  = 80
		height = 15
	)

	var output strings.Builder

	title := fmt.Sprintf("%s Trend", kpiName)
	if scopePath != "" {
		title = fmt.Sprintf("%s - %s", kpiName, scopePath)
	}
	output.WriteString(title + "\n\n")

	normalized := make([]float64, len(points))
	valueRange := maxVal - minVal
	if valueRange == 0 {
		valueRange = 1
	}

	for i, p := range points {
		normalized[i] = (p.Value - minVal) / valueRange * (height - 1)
	}

	if len(normalized) > width {
		normalized = scaleDownPoints(normalized, width)
	}

	for row := height - 1; row >= 0; row-- {
		yValue := minVal + (float64(row)/float64(height-1))*valueRange
		output.WriteString(fmt.Sprintf("%7.1f │ ", yValue))

		for col := 0; col < len(normalized); col++ {
			pointVal := normalized[col]
			switch {
			case int(pointVal) == row:
				output.WriteString("●")
			case int(pointVal) > row:
				output.WriteString("█")
			case int(pointVal) == row-1 && pointVal > float64(row-1):
				output.WriteString("▄")
			default:
				output.WriteString(" ")
			}
		}
		output.WriteString("\n")
	}

	output.WriteString("        └" + strings.Repeat("─", len(normalized)) + "\n")

	startTime := points[0].Timestamp.Format("Jan 02")
	endTime := points[len(points)-1].Timestamp.Format("Jan 02")
	output.WriteString(fmt.Sprintf("         %s to %s (%d snapshots)\n", startTime, endTime, len(points)))

	output.WriteString("\n")
	output.WriteString(formatStats(kpiName, points))

	return output.String()
}

func scaleDownPoints(data []float64, targetWidth int) []float64 {
	if len(data) <= targetWidth {
		return data
	}

	scaled := make([]float64, targetWidth)
	ratio := float64(len(data)) / float64(targetWidth)

	for i := 0; i < targetWidth; i++ {
		startIdx := int(float64(i) * ratio)
		endIdx := int(float64(i+1) * ratio)
		if endIdx > len(data) {
			endIdx = len(data)
		}

		// Average values in this bucket
		sum := 0.0
		for j := startIdx; j < endIdx; j++ {
			sum += data[j]
		}
		scaled[i] = sum / float64(endIdx-startIdx)
	}

	return scaled
}

func formatStats(kpiName string, points []storage.TimeSeriesPoint) string {
	if len(points) == 0 {
		return ""
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}

	// Calculate statistics
	min := values[0]
	max := values[0]
	sum := 0.0

	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}

	avg := sum / float64(len(values))
	current := points[len(points)-1].Value
	delta := current - points[0].Value

	// Format output
	stats := fmt.Sprintf("Stats: Min=%.1f Max=%.1f Avg=%.1f Current=%.1f", min, max, avg, current)
	if delta >= 0 {
		stats += fmt.Sprintf(" ↑ +%.1f", delta)
	} else {
		stats += fmt.Sprintf(" ↓ %.1f", delta)
	}

	return stats
}

// RenderComparisonTable renders a side-by-side comparison of two snapshots.
func RenderComparisonTable(snapshot1, snapshot2 *storage.SnapshotSummary) string {
	var output strings.Builder

	output.WriteString("Snapshot Comparison\n")
	output.WriteString("════════════════════════════════════════════════════════════════════\n\n")

	rows := []struct {
		label string
		val1  interface{}
		val2  interface{}
	}{
		{"Analyzed At", snapshot1.AnalyzedAt.Format("2006-01-02 15:04"), snapshot2.AnalyzedAt.Format("2006-01-02 15:04")},
		{"Git Commit", shortHash(snapshot1.GitCommitHash), shortHash(snapshot2.GitCommitHash)},
		{"Total Files", snapshot1.TotalFiles, snapshot2.TotalFiles},
		{"Total Complexity", fmt.Sprintf("%.1f", snapshot1.TotalComplexity), fmt.Sprintf("%.1f", snapshot2.TotalComplexity)},
		{"Total Cognitive Complexity", fmt.Sprintf("%.1f", snapshot1.TotalCognitiveComplexity), fmt.Sprintf("%.1f", snapshot2.TotalCognitiveComplexity)},
		{"Total Churn", fmt.Sprintf("%.1f", snapshot1.TotalChurn), fmt.Sprintf("%.1f", snapshot2.TotalChurn)},
		{"Max Hotspot Score", fmt.Sprintf("%.1f", snapshot1.MaxHotspotScore), fmt.Sprintf("%.1f", snapshot2.MaxHotspotScore)},
		{"Hotspot Count", snapshot1.HotspotCount, snapshot2.HotspotCount},
	}

	output.WriteString(fmt.Sprintf("%-28s │ %-25s │ %-25s\n", "Metric", "Snapshot 1", "Snapshot 2"))
	output.WriteString("────────────────────────────┼──────────────────────────┼──────────────────────────\n")

	for _, row := range rows {
		val1Str := fmt.Sprintf("%v", row.val1)
		val2Str := fmt.Sprintf("%v", row.val2)
		output.WriteString(fmt.Sprintf("%-28s │ %-25s │ %-25s\n", row.label, val1Str, val2Str))
	}

	return output.String()
}

func shortHash(hash string) string {
	if hash == "" {
		return "N/A"
	}
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
