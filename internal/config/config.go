// Package config loads .metricmancer.yaml and .metricmancerignore settings.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the tool's configuration.
type Config struct {
	Analysis       AnalysisConfig      `yaml:"analysis"`
	Thresholds     ThresholdConfig     `yaml:"thresholds"`
	Visualization  VisualizationConfig `yaml:"visualization"`
	Storage        StorageConfig       `yaml:"storage"`
	IgnorePatterns []string            `yaml:"-"`
}

// AnalysisConfig contains analysis-specific settings.
type AnalysisConfig struct {
	Since          string   `yaml:"since"`       // Churn time range (e.g., "90d"); not read: churn covers the full history
	Languages      []string `yaml:"languages"`   // Languages to analyze
	ExcludePattern []string `yaml:"exclude"`     // Additional exclude patterns
	SkipChurn      bool     `yaml:"skip_churn"`  // Skip git churn analysis
	MaxWorkers     int      `yaml:"max_workers"` // Not read: files are analyzed sequentially
}

// ThresholdConfig contains configurable severity thresholds for the KPIs
// computed by pkg/kpi.
type ThresholdConfig struct {
	Complexity          SeverityThresholds `yaml:"complexity"`
	CognitiveComplexity SeverityThresholds `yaml:"cognitive_complexity"`
	Churn               SeverityThresholds `yaml:"churn"`
	Hotspot             HotspotThresholds  `yaml:"hotspot"`
	Ownership           OwnershipThresholds `yaml:"ownership"`
}

// SeverityThresholds defines info/warning/critical levels for upward
// metrics (higher values = worse).
type SeverityThresholds struct {
	Info     int `yaml:"info"`
	Warning  int `yaml:"warning"`
	Critical int `yaml:"critical"`
}

// HotspotThresholds gates when complexity × churn is flagged a hotspot.
type HotspotThresholds struct {
	Score float64 `yaml:"score"`
}

// OwnershipThresholds holds the single-owner and low-author cutoffs.
// SingleOwner is read by pkg/reports' single-owner-risk concern; pkg/kpi's
// ownership classifier uses its own fixed cutoffs and reads neither field.
type OwnershipThresholds struct {
	SingleOwner float64 `yaml:"single_owner"`
	LowAuthor   float64 `yaml:"low_author"`
}

// VisualizationConfig contains visualization settings. The visualize
// command takes its settings from flags and reads none of these fields.
type VisualizationConfig struct {
	DefaultMetric   string `yaml:"default_metric"`    // Default metric to show
	ColorScheme     string `yaml:"color_scheme"`      // Color scheme name
	ShowPercentages bool   `yaml:"show_percentages"`  // Show percentages in output
	AutoOpenBrowser bool   `yaml:"auto_open_browser"` // Auto-open HTML in browser
}

// StorageConfig contains storage settings. Only Type is checked, by
// ValidateConfiguration; the commands locate the database with
// storage.DetectOrCreateDatabase and read none of these fields, so no
// automatic pruning or JSON backup takes place.
type StorageConfig struct {
	Type           string `yaml:"type"`             // Storage backend: sqlite
	Path           string `yaml:"path"`             // Path to database file
	KeepJSONBackup bool   `yaml:"keep_json_backup"` // Also save JSON files
	RetentionDays  int    `yaml:"retention_days"`   // Auto-prune after N days (0=disabled)
	AutoPrune      bool   `yaml:"auto_prune"`       // Auto-prune on each analyze
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Since:          "90d",
			Languages:      []string{},
			ExcludePattern: []string{"vendor", "node_modules", "*_test.go"},
			SkipChurn:      false,
			MaxWorkers:     8,
		},
		Thresholds: ThresholdConfig{
			Complexity: SeverityThresholds{
				Info: 5, Warning: 10, Critical: 20,
			},
			CognitiveComplexity: SeverityThresholds{
				Info: 10, Warning: 15, Critical: 25,
			},
			Churn: SeverityThresholds{
				Info: 5, Warning: 10, Critical: 20,
			},
			Hotspot: HotspotThresholds{
				Score: 300,
			},
			Ownership: OwnershipThresholds{
				SingleOwner: 0.8,
				LowAuthor:   0.2,
			},
		},
		Visualization: VisualizationConfig{
			DefaultMetric:   "hotspot",
			ColorScheme:     "red-yellow-green",
			ShowPercentages: true,
			AutoOpenBrowser: true,
		},
		Storage: StorageConfig{
			Type:           "sqlite",
			Path:           "",
			KeepJSONBackup: true,
			RetentionDays:  90,
			AutoPrune:      false,
		},
		IgnorePatterns: []string{},
	}
}

// LoadConfig loads configuration from .metricmancer.yaml and
// .metricmancerignore under rootPath.
func LoadConfig(rootPath string) (*Config, error) {
	config := DefaultConfig()

	yamlPath := filepath.Join(rootPath, ".metricmancer.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		if err := config.loadYAML(yamlPath); err != nil {
			return nil, err
		}
	}

	ignorePath := filepath.Join(rootPath, ".metricmancerignore")
	if _, err := os.Stat(ignorePath); err == nil {
		if err := config.loadIgnoreFile(ignorePath); err != nil {
			return nil, err
		}
	}

	return config, nil
}

func (config *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return err
	}

	config.Thresholds.applyDefaultThresholds()
	return nil
}

// Validate ensures threshold values follow correct ordering.
func (tc *ThresholdConfig) Validate() error {
	if err := validateSeverityOrder("complexity", tc.Complexity); err != nil {
		return err
	}
	if err := validateSeverityOrder("cognitive_complexity", tc.CognitiveComplexity); err != nil {
		return err
	}
	if err := validateSeverityOrder("churn", tc.Churn); err != nil {
		return err
	}
	if tc.Ownership.LowAuthor > tc.Ownership.SingleOwner {
		return fmt.Errorf("ownership: low_author (%.2f) must be <= single_owner (%.2f)",
			tc.Ownership.LowAuthor, tc.Ownership.SingleOwner)
	}
	return nil
}

func validateSeverityOrder(name string, thresholds SeverityThresholds) error {
	if thresholds.Info > thresholds.Warning {
		return fmt.Errorf("%s: info (%d) must be <= warning (%d)", name, thresholds.Info, thresholds.Warning)
	}
	if thresholds.Warning > thresholds.Critical {
		return fmt.Errorf("%s: warning (%d) must be <= critical (%d)", name, thresholds.Warning, thresholds.Critical)
	}
	return nil
}

// applyDefaultThresholds fills in zero values with defaults (partial YAML
// config support).
func (tc *ThresholdConfig) applyDefaultThresholds() {
	defaults := DefaultConfig().Thresholds
	applySeverityDefaults(&tc.Complexity, defaults.Complexity)
	applySeverityDefaults(&tc.CognitiveComplexity, defaults.CognitiveComplexity)
	applySeverityDefaults(&tc.Churn, defaults.Churn)
	if tc.Hotspot.Score == 0 {
		tc.Hotspot.Score = defaults.Hotspot.Score
	}
	if tc.Ownership.SingleOwner == 0 {
		tc.Ownership.SingleOwner = defaults.Ownership.SingleOwner
	}
	if tc.Ownership.LowAuthor == 0 {
		tc.Ownership.LowAuthor = defaults.Ownership.LowAuthor
	}
}

func applySeverityDefaults(target *SeverityThresholds, defaults SeverityThresholds) {
	if target.Info == 0 {
		target.Info = defaults.Info
	}
	if target.Warning == 0 {
		target.Warning = defaults.Warning
	}
	if target.Critical == 0 {
		target.Critical = defaults.Critical
	}
}

// loadIgnoreFile loads ignore patterns from a .metricmancerignore file.
func (config *Config) loadIgnoreFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		config.IgnorePatterns = append(config.IgnorePatterns, line)
	}

	return scanner.Err()
}

// ShouldIgnore checks if a path should be ignored based on patterns.
func (config *Config) ShouldIgnore(path string) bool {
	for _, pattern := range config.IgnorePatterns {
		if matchesPattern(path, pattern) {
			return true
		}
	}
	for _, pattern := range config.Analysis.ExcludePattern {
		if matchesPattern(path, pattern) {
			return true
		}
	}
	return false
}

// matchesPattern checks if a path matches a gitignore-style pattern.
func matchesPattern(path string, pattern string) bool {
	if strings.HasPrefix(pattern, "!") {
		pattern = pattern[1:]
		return !matchesPattern(path, pattern)
	}

	if strings.HasSuffix(pattern, "/") {
		pattern = pattern[:len(pattern)-1]
		return strings.HasPrefix(path, pattern+"/") || path == pattern
	}

	if strings.HasPrefix(pattern, "/") {
		pattern = pattern[1:]
		matched, _ := filepath.Match(pattern, path)
		return matched
	}

	if strings.Contains(pattern, "**") {
		parts := strings.Split(pattern, "**")
		if len(parts) == 2 {
			prefix := parts[0]
			suffix := parts[1]
			if strings.HasPrefix(path, prefix) && strings.HasSuffix(path, suffix) {
				return true
			}
		}
	}

	basename := filepath.Base(path)
	if matched, _ := filepath.Match(pattern, basename); matched {
		return true
	}

	if strings.Contains(path, pattern) {
		return true
	}

	matched, _ := filepath.Match(pattern, path)
	return matched
}

// GetExcludePatterns returns all exclude patterns (from both sources).
func (config *Config) GetExcludePatterns() []string {
	patterns := make([]string, 0, len(config.IgnorePatterns)+len(config.Analysis.ExcludePattern))
	patterns = append(patterns, config.IgnorePatterns...)
	patterns = append(patterns, config.Analysis.ExcludePattern...)
	return patterns
}
