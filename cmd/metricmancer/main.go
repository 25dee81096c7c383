package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/metricmancer/metricmancer/internal/config"
	"github.com/metricmancer/metricmancer/pkg/engine"
	"github.com/metricmancer/metricmancer/pkg/models"
	"github.com/metricmancer/metricmancer/pkg/ownership"
	"github.com/metricmancer/metricmancer/pkg/reports"
	"github.com/metricmancer/metricmancer/pkg/storage"
	"github.com/metricmancer/metricmancer/pkg/trending"
	"github.com/metricmancer/metricmancer/pkg/visualization"
)

var (
	// Analyze flags
	scanPaths        []string
	includeLanguages []string
	skipChurn        bool
	outputFile       string

	// Visualize flags
	inputFile    string
	metric       string
	topLimit     int
	outputFormat string
	htmlOutput   string
	openBrowser  bool

	// History flags
	historyLimit  int
	retentionDays int

	// Trend flags
	trendDays   int
	trendScope  string
	trendFormat string
	trendOutput string

	// Report owners flags
	reportFormat string
	reportOutput string
)

var rootCmd = &cobra.Command{
	Use:   "metricmancer",
	Short: "Multi-language source code metrics and churn analysis",
	Long: `metricmancer analyzes a codebase to measure:
  - Cyclomatic and cognitive complexity
  - Code churn and ownership from git history
  - Hotspots (high churn x high complexity)

Generates a scored health report and heat maps to visualize it.`,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path...]",
	Short: "Analyze one or more repositories and generate metrics",
	Long: `Scans source files under the given paths (default: current directory),
grouping them by the repository each belongs to, and computes complexity,
cognitive complexity, churn, and ownership KPIs. Results are scored,
saved to a local database, and written to a JSON file for visualization.`,
	Run: runAnalyze,
}

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Visualize a saved analysis",
	Long: `Renders a previously saved analysis (see 'analyze --output') as either
a terminal heat map or a standalone HTML treemap.

Supported metrics: complexity, cognitive, churn, hotspot`,
	Run: runVisualize,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate analysis reports",
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage historical analysis snapshots",
}

var trendCmd = &cobra.Command{
	Use:   "trend <metric>",
	Short: "Visualize a metric's history over time",
	Long: `Visualize how a stored KPI (complexity, cognitive_complexity, churn,
hotspot) has changed across snapshots.

Examples:
  metricmancer trend complexity
  metricmancer trend churn --days=30
  metricmancer trend hotspot --format=json`,
	Args: cobra.ExactArgs(1),
	Run:  runTrend,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(visualizeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(trendCmd)

	reportOwnersCmd := &cobra.Command{
		Use:   "owners",
		Short: "Generate a code ownership report from the latest snapshot",
		Run:   runReportOwners,
	}
	reportCmd.AddCommand(reportOwnersCmd)
	reportOwnersCmd.Flags().StringVarP(&reportFormat, "format", "f", "ascii", "Output format (ascii, json, html)")
	reportOwnersCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output file path (stdout if empty)")

	historyListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all analysis snapshots",
		Run:   runHistoryList,
	}
	historyPruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove snapshots older than the retention period",
		Run:   runHistoryPrune,
	}
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyPruneCmd)
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Maximum snapshots to display")
	historyPruneCmd.Flags().IntVar(&retentionDays, "retention", 90, "Retention period in days")

	analyzeCmd.Flags().StringSliceVarP(&includeLanguages, "languages", "l", []string{}, "Languages to include (default: all)")
	analyzeCmd.Flags().BoolVar(&skipChurn, "skip-churn", false, "Skip git churn and ownership mining")
	analyzeCmd.Flags().StringVarP(&outputFile, "output", "o", "metricmancer-results.json", "Output file path")

	visualizeCmd.Flags().StringVarP(&inputFile, "input", "i", "metricmancer-results.json", "Input JSON file")
	visualizeCmd.Flags().StringVarP(&metric, "metric", "m", "hotspot", "Metric to visualize (complexity, cognitive, churn, hotspot)")
	visualizeCmd.Flags().IntVarP(&topLimit, "limit", "l", 10, "Number of top hotspots to show")
	visualizeCmd.Flags().StringVarP(&outputFormat, "format", "f", "terminal", "Output format (terminal, html)")
	visualizeCmd.Flags().StringVarP(&htmlOutput, "output", "o", "metricmancer-heatmap.html", "HTML output file")
	visualizeCmd.Flags().BoolVar(&openBrowser, "open", true, "Open HTML in browser automatically")

	trendCmd.Flags().IntVarP(&trendDays, "days", "d", 90, "Number of days to show (0 = all)")
	trendCmd.Flags().StringVar(&trendScope, "scope", "", "Show metrics for a specific scope path")
	trendCmd.Flags().StringVarP(&trendFormat, "format", "f", "ascii", "Output format (ascii, json)")
	trendCmd.Flags().StringVarP(&trendOutput, "output", "o", "", "Output file path (stdout if empty)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) {
	scanPaths = args
	if len(scanPaths) == 0 {
		scanPaths = []string{"."}
	}

	fmt.Printf("Analyzing: %s\n\n", strings.Join(scanPaths, ", "))

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not get current directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	allLanguages := cfg.Analysis.Languages
	if len(includeLanguages) > 0 {
		allLanguages = includeLanguages
	}
	shouldSkipChurn := skipChurn || cfg.Analysis.SkipChurn

	e := engine.New()
	repos := e.Run(engine.Options{
		ScanDirs:         scanPaths,
		IncludeLanguages: allLanguages,
		SkipChurn:        shouldSkipChurn,
	})

	if len(repos) == 0 {
		fmt.Println("No source files found")
		return
	}

	dbPath, err := storage.DetectOrCreateDatabase(cwd)
	var backend storage.Backend
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not set up database: %v\n", err)
	} else {
		backend, err = storage.NewBackend(storage.BackendConfig{Type: "sqlite", Path: dbPath})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
			backend = nil
		} else {
			defer backend.Close()
		}
	}

	for _, repo := range repos {
		hasChurnData := !shouldSkipChurn && len(repo.ChurnData) > 0
		report := reports.GenerateScoreReport(repo, hasChurnData)
		report.Concerns = reports.DetectConcerns(repo, hasChurnData, cfg.Thresholds)

		fmt.Printf("Repository: %s\n", repo.RepoName)
		printScoreReport(report)

		if backend != nil {
			snapshotID, err := backend.Save(repo, storage.SnapshotMetadata{ToolVersion: "1.0.0"})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not save snapshot: %v\n", err)
			} else {
				fmt.Printf("Saved snapshot (ID: %d)\n", snapshotID)

				if !shouldSkipChurn {
					ownerReport := ownership.BuildReport(repo.AnalyzedAt.Format(time.RFC3339), repo.Results)
					if err := backend.SaveOwnershipReport(snapshotID, ownerReport); err != nil {
						fmt.Fprintf(os.Stderr, "Warning: could not save ownership report: %v\n", err)
					}
				}
			}
		}

		if err := saveResults(repo, outputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving results: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Results saved to: %s\n\n", outputFile)
	}

	fmt.Printf("Next steps:\n  metricmancer visualize --input=%s --metric=hotspot\n", outputFile)
}

func printScoreReport(report *models.ScoreReport) {
	gradeColor := gradeColorFunc(report.OverallGrade)
	fmt.Printf("Overall Grade: ")
	gradeColor.Printf("%s", report.OverallGrade)
	fmt.Printf(" (%.0f/100)\n\n", report.OverallScore)

	fmt.Println("Component Scores:")
	printComponentScore("Complexity", report.ComponentScores.Complexity)
	printComponentScore("Cognitive", report.ComponentScores.CognitiveComplexity)
	if report.HasChurnData {
		printComponentScore("Churn", report.ComponentScores.Churn)
	} else {
		fmt.Printf("  %-12s N/A (no churn data)\n", "Churn:")
	}
	printComponentScore("Hotspot", report.ComponentScores.Hotspot)
	fmt.Println()

	printConcerns(report.Concerns)
	fmt.Println()
}

func printComponentScore(name string, score models.CategoryScore) {
	const barWidth = 10
	filled := int(score.Score / 10)
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	scoreColorFunc(score.Score).Printf("  %-12s %s %.0f/100 (%s)\n", name+":", bar, score.Score, score.Category)
}

func printConcerns(concerns []models.Concern) {
	if len(concerns) == 0 {
		fmt.Println("No concerns detected")
		return
	}

	fmt.Printf("Areas of Concern (%d):\n", len(concerns))
	for _, concern := range concerns {
		concernColorFunc(concern.Severity).Printf("  [%s] %s\n", strings.ToUpper(concern.Severity), concern.Title)
		fmt.Printf("    %s\n", concern.Description)
		for _, item := range concern.AffectedItems {
			fmt.Printf("    - %s\n", item.FilePath)
		}
	}
}

func gradeColorFunc(grade string) *color.Color {
	switch grade {
	case "A":
		return color.New(color.FgGreen)
	case "B":
		return color.New(color.FgCyan)
	case "C":
		return color.New(color.FgYellow)
	case "D":
		return color.New(color.FgHiYellow)
	default:
		return color.New(color.FgRed)
	}
}

func scoreColorFunc(score float64) *color.Color {
	switch {
	case score >= 90:
		return color.New(color.FgGreen)
	case score >= 75:
		return color.New(color.FgCyan)
	case score >= 60:
		return color.New(color.FgYellow)
	case score >= 40:
		return color.New(color.FgHiYellow)
	default:
		return color.New(color.FgRed)
	}
}

func concernColorFunc(severity string) *color.Color {
	switch severity {
	case "critical":
		return color.New(color.FgRed)
	case "warning":
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

func saveResults(repo *models.GitRepoInfo, filename string) error {
	data, err := json.MarshalIndent(repo, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}

func runVisualize(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	var repo models.GitRepoInfo
	if err := json.Unmarshal(data, &repo); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	report := reports.GenerateScoreReport(&repo, len(repo.ChurnData) > 0)

	switch outputFormat {
	case "html":
		generateHTMLOutput(&repo, report)
	case "terminal":
		generateTerminalOutput(&repo)
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s (use 'terminal' or 'html')\n", outputFormat)
		os.Exit(1)
	}
}

func generateTerminalOutput(repo *models.GitRepoInfo) {
	visualizer := visualization.NewTerminalVisualizer()

	fmt.Print(visualizer.RenderHeatMap(repo, metric))
	fmt.Print(visualizer.RenderTopHotspots(repo, topLimit))
}

func generateHTMLOutput(repo *models.GitRepoInfo, report *models.ScoreReport) {
	htmlVisualizer := visualization.NewHTMLVisualizer()

	html, err := htmlVisualizer.GenerateHTML(repo, report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating HTML: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(htmlOutput, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing HTML file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("HTML heat map generated: %s\n", htmlOutput)

	if openBrowser {
		if err := openInBrowser(htmlOutput); err != nil {
			fmt.Fprintf(os.Stderr, "Could not open browser: %v\n", err)
			fmt.Printf("Please open the file manually: %s\n", htmlOutput)
		}
	}
}

func openInBrowser(filename string) error {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return err
	}

	var command string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		command, args = "open", []string{absPath}
	case "windows":
		command, args = "cmd", []string{"/c", "start", absPath}
	default:
		command, args = "xdg-open", []string{absPath}
	}

	return exec.Command(command, args...).Start()
}

func openDatabase() (storage.Backend, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("could not get current directory: %w", err)
	}

	dbPath, err := storage.DetectOrCreateDatabase(cwd)
	if err != nil {
		return nil, fmt.Errorf("could not locate database: %w", err)
	}

	return storage.NewBackend(storage.BackendConfig{Type: "sqlite", Path: dbPath})
}

func runReportOwners(cmd *cobra.Command, args []string) {
	backend, err := openDatabase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	latest, err := backend.GetLatestSummary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: no snapshots found: %v\n", err)
		os.Exit(1)
	}

	report, err := backend.GetOwnershipReport(latest.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not retrieve ownership report: %v\n", err)
		os.Exit(1)
	}

	var rendered string
	switch reportFormat {
	case "ascii":
		rendered = ownership.RenderASCII(report)
	case "json":
		rendered, err = ownership.RenderJSON(report)
	case "html":
		rendered, err = ownership.RenderHTML(report)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported format '%s'\n", reportFormat)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not render report: %v\n", err)
		os.Exit(1)
	}

	if reportOutput == "" {
		fmt.Println(rendered)
		return
	}
	if err := os.WriteFile(reportOutput, []byte(rendered), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not write file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported to: %s\n", reportOutput)
}

func runHistoryList(cmd *cobra.Command, args []string) {
	backend, err := openDatabase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	snapshots, err := backend.ListSnapshots(historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not retrieve snapshots: %v\n", err)
		os.Exit(1)
	}

	if len(snapshots) == 0 {
		fmt.Println("No analysis snapshots found")
		return
	}

	fmt.Printf("\nAnalysis Snapshots (%d)\n", len(snapshots))
	fmt.Println(strings.Repeat("-", 90))
	fmt.Printf("%-4s | %-19s | %-30s | %-10s | %s\n", "ID", "Date", "Repo", "Files", "Hotspots")
	fmt.Println(strings.Repeat("-", 90))

	for _, snap := range snapshots {
		repoName := filepath.Base(snap.RepoRoot)
		fmt.Printf("%-4d | %s | %-30s | %-10d | %d\n",
			snap.ID,
			snap.AnalyzedAt.Format("2006-01-02 15:04:05"),
			truncate(repoName, 30),
			snap.TotalFiles,
			snap.HotspotCount,
		)
	}
	fmt.Println()
}

func runHistoryPrune(cmd *cobra.Command, args []string) {
	backend, err := openDatabase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	deleted, err := backend.Prune(retentionDays)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not prune snapshots: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Removed %d snapshot(s) older than %d days\n", deleted, retentionDays)
}

func runTrend(cmd *cobra.Command, args []string) {
	metricName := args[0]

	backend, err := openDatabase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	endTime := time.Now()
	startTime := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	if trendDays > 0 {
		startTime = endTime.AddDate(0, 0, -trendDays)
	}

	points, err := backend.GetTimeSeries(metricName, trendScope, startTime, endTime)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not retrieve metric data: %v\n", err)
		os.Exit(1)
	}
	if len(points) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no data available for metric '%s'\n", metricName)
		os.Exit(1)
	}

	switch trendFormat {
	case "ascii":
		fmt.Print(trending.RenderASCIIChart(metricName, points, trendScope))
	case "json":
		renderTrendJSON(metricName, points)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported format '%s'\n", trendFormat)
		os.Exit(1)
	}
}

func renderTrendJSON(metricName string, points []storage.TimeSeriesPoint) {
	export, err := trending.ExportToJSON(metricName, trendScope, points)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not export data: %v\n", err)
		os.Exit(1)
	}

	if trendOutput == "" {
		jsonStr, err := trending.JSONToString(export)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not format JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(jsonStr)
		return
	}

	if err := trending.WriteJSONToFile(export, trendOutput); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not write file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported to: %s\n", trendOutput)
}

func truncate(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	return str[:maxLen-3] + "..."
}
