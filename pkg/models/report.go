package models

// ScoreReport represents the overall health assessment of a repository
// snapshot, derived from its aggregated KPI tree.
type ScoreReport struct {
	OverallGrade    string
	OverallScore    float64
	ComponentScores ComponentScores
	Concerns        []Concern
	HasChurnData    bool
}

// ComponentScores breaks overall health down by KPI category.
type ComponentScores struct {
	Complexity          CategoryScore
	CognitiveComplexity CategoryScore
	Churn               CategoryScore
	Hotspot             CategoryScore
}

// CategoryScore represents a single component's contribution to the
// overall score.
type CategoryScore struct {
	Score    float64 // 0-100, higher is better
	Weight   float64
	Category string // "excellent", "good", "moderate", "poor", "critical"
}

// Concern represents a file or set of files needing attention.
type Concern struct {
	Type          string
	Severity      string // "critical", "warning", "info"
	Title         string
	Description   string
	AffectedItems []AffectedItem
}

// AffectedItem references a specific file flagged by a concern.
type AffectedItem struct {
	FilePath string
	Metrics  map[string]float64
}
