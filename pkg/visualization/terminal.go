package visualization

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/metricmancer/metricmancer/pkg/models"
)

// TerminalVisualizer generates colored terminal output.
type TerminalVisualizer struct {
	green  *color.Color
	yellow *color.Color
	red    *color.Color
}

// NewTerminalVisualizer creates a new terminal visualizer.
func NewTerminalVisualizer() *TerminalVisualizer {
	return &TerminalVisualizer{
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
	}
}

// fileRow is one file's badness scores, flattened from a ScanDir tree.
type fileRow struct {
	path    string
	scores  TreeMetrics
}

// RenderHeatMap renders a file-level heat map to the terminal.
func (visualizer *TerminalVisualizer) RenderHeatMap(repo *models.GitRepoInfo, metric string) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("\nHeat Map - %s\n\n", metricTitle(metric)))

	rows := collectFileRows(repo.Results, repo.RepoRoot)
	sortRowsByMetric(rows, metric)

	maxPathLen := 0
	for _, row := range rows {
		if len(row.path) > maxPathLen {
			maxPathLen = len(row.path)
		}
	}
	if maxPathLen > 60 {
		maxPathLen = 60
	}

	for _, row := range rows {
		score := getMetricScore(row.scores, metric)
		visualizer.renderFileRow(&builder, row, score, maxPathLen)
	}

	builder.WriteString("\n")
	builder.WriteString(visualizer.renderLegend())
	builder.WriteString("\n")

	return builder.String()
}

// collectFileRows walks dir and its descendants, producing a flat,
// repo-root-relative list of files and their badness scores.
func collectFileRows(dir *models.ScanDir, repoRoot string) []fileRow {
	if dir == nil {
		return nil
	}

	var rows []fileRow
	for _, file := range dir.Files {
		complexity := fileNumericKPI(file, "complexity")
		cognitive := fileNumericKPI(file, "cognitive_complexity")
		churn := fileNumericKPI(file, "churn")
		hotspot := fileNumericKPI(file, "hotspot")

		path := strings.TrimPrefix(file.AbsolutePath, repoRoot+"/")

		rows = append(rows, fileRow{
			path: path,
			scores: TreeMetrics{
				Complexity:      complexity,
				Cognitive:       cognitive,
				Churn:           churn,
				Hotspot:         hotspot,
				ComplexityScore: clampScore(complexity * 5),
				CognitiveScore:  clampScore(cognitive * 4),
				ChurnScore:      clampScore(churn * 2),
				HotspotScore:    clampScore(hotspot / hotspotReferenceScore * 100),
			},
		})
	}

	for _, child := range dir.Dirs {
		rows = append(rows, collectFileRows(child, repoRoot)...)
	}

	return rows
}

// renderFileRow renders a single file row with color coding.
func (visualizer *TerminalVisualizer) renderFileRow(builder *strings.Builder, row fileRow, score float64, maxPathLen int) {
	displayPath := row.path
	if len(displayPath) > maxPathLen {
		displayPath = "..." + displayPath[len(displayPath)-maxPathLen+3:]
	}

	paddedPath := fmt.Sprintf("%-*s", maxPathLen, displayPath)

	bar := visualizer.createBar(score, 20)
	colorFunc := visualizer.getColorForScore(score)
	scoreStr := fmt.Sprintf("%.1f", score)

	colorFunc.Fprintf(builder, "%s %s %s", paddedPath, bar, scoreStr)

	if row.scores.Hotspot > hotspotReferenceScore {
		builder.WriteString(" [hotspot]")
	}

	builder.WriteString("\n")
}

// createBar creates a visual bar representing the score.
func (visualizer *TerminalVisualizer) createBar(score float64, maxWidth int) string {
	filledWidth := int((score / 100.0) * float64(maxWidth))
	if filledWidth > maxWidth {
		filledWidth = maxWidth
	}

	filled := strings.Repeat("█", filledWidth)
	empty := strings.Repeat("░", maxWidth-filledWidth)

	return "[" + filled + empty + "]"
}

// getColorForScore returns the appropriate color function for a score.
func (visualizer *TerminalVisualizer) getColorForScore(score float64) *color.Color {
	switch {
	case score < 33:
		return visualizer.green
	case score < 67:
		return visualizer.yellow
	default:
		return visualizer.red
	}
}

// renderLegend renders the color legend.
func (visualizer *TerminalVisualizer) renderLegend() string {
	var builder strings.Builder

	builder.WriteString("Legend:\n")
	visualizer.green.Fprint(&builder, "  █ Low (0-33)      - Good\n")
	visualizer.yellow.Fprint(&builder, "  █ Medium (33-67)  - Moderate\n")
	visualizer.red.Fprint(&builder, "  █ High (67-100)   - Needs attention\n")
	builder.WriteString("  [hotspot] = complexity x churn above threshold\n")

	return builder.String()
}

// RenderTopHotspots renders the top hotspot files.
func (visualizer *TerminalVisualizer) RenderTopHotspots(repo *models.GitRepoInfo, limit int) string {
	var builder strings.Builder

	builder.WriteString("\nTop Hotspots\n\n")

	rows := collectFileRows(repo.Results, repo.RepoRoot)

	var hotspots []fileRow
	for _, row := range rows {
		if row.scores.Hotspot > hotspotReferenceScore {
			hotspots = append(hotspots, row)
		}
	}

	sort.Slice(hotspots, func(i, j int) bool {
		return hotspots[i].scores.Hotspot > hotspots[j].scores.Hotspot
	})

	count := limit
	if count > len(hotspots) {
		count = len(hotspots)
	}

	for index := 0; index < count; index++ {
		visualizer.renderHotspotRow(&builder, hotspots[index], index+1)
	}

	if len(hotspots) == 0 {
		builder.WriteString("  No hotspots found.\n")
	}

	return builder.String()
}

// renderHotspotRow renders a single hotspot row.
func (visualizer *TerminalVisualizer) renderHotspotRow(builder *strings.Builder, row fileRow, rank int) {
	visualizer.red.Fprintf(builder, "%d. %s\n", rank, row.path)
	builder.WriteString(fmt.Sprintf("   Complexity: %.0f | Churn: %.0f | Hotspot: %.0f\n",
		row.scores.Complexity, row.scores.Churn, row.scores.Hotspot))
	builder.WriteString("\n")
}

// Helper functions

func metricTitle(metric string) string {
	switch metric {
	case "complexity":
		return "Cyclomatic Complexity"
	case "cognitive":
		return "Cognitive Complexity"
	case "churn":
		return "Code Churn"
	case "hotspot":
		return "Hotspot Score (Churn x Complexity)"
	default:
		return strings.Title(metric)
	}
}

func getMetricScore(scores TreeMetrics, metric string) float64 {
	switch metric {
	case "complexity":
		return scores.ComplexityScore
	case "cognitive":
		return scores.CognitiveScore
	case "churn":
		return scores.ChurnScore
	case "hotspot":
		return scores.HotspotScore
	default:
		return scores.HotspotScore
	}
}

func sortRowsByMetric(rows []fileRow, metric string) {
	sort.Slice(rows, func(i, j int) bool {
		return getMetricScore(rows[i].scores, metric) > getMetricScore(rows[j].scores, metric)
	})
}
