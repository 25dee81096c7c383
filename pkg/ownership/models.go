package ownership

// OwnerMetrics aggregates ownership across every file where an author
// appears in the blame-derived share distribution.
type OwnerMetrics struct {
	Owner               string  `json:"owner"`
	FileCount           int     `json:"file_count"`
	PrimaryOwnerCount   int     `json:"primary_owner_count"`
	AverageShare        float64 `json:"average_share"`
}

// Report summarizes ownership across an analyzed tree.
type Report struct {
	AnalyzedAt   string         `json:"analyzed_at"`
	TotalOwners  int            `json:"total_owners"`
	OwnerMetrics []OwnerMetrics `json:"owner_metrics"`
}
