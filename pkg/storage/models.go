package storage

import "time"

// SnapshotMetadata carries the run-level context attached to a saved
// snapshot, beyond what's in the GitRepoInfo tree itself.
type SnapshotMetadata struct {
	GitCommitHash string
	GitBranch     string
	ToolVersion   string
	ConfigHash    string
}

// SnapshotSummary provides quick access to a snapshot's headline numbers
// without loading and unmarshaling the full tree.
type SnapshotSummary struct {
	ID                       int64
	AnalyzedAt               time.Time
	RepoRoot                 string
	GitCommitHash            string
	GitBranch                string
	TotalFiles               int
	TotalComplexity          float64
	TotalCognitiveComplexity float64
	TotalChurn               float64
	MaxHotspotScore          float64
	HotspotCount             int
}

// TimeSeriesPoint is a single data point in a KPI time series.
type TimeSeriesPoint struct {
	Timestamp time.Time
	Value     float64
}

// ComparisonResult captures the delta between two snapshots of the same
// repository.
type ComparisonResult struct {
	Snapshot1    SnapshotSummary
	Snapshot2    SnapshotSummary
	MetricDeltas map[string]float64
}
