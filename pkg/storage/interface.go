package storage

import (
	"time"

	"github.com/metricmancer/metricmancer/pkg/models"
	"github.com/metricmancer/metricmancer/pkg/ownership"
)

// Backend persists completed GitRepoInfo snapshots and serves the queries
// the trend/history commands need.
type Backend interface {
	// Save stores a new GitRepoInfo snapshot with metadata and returns its ID.
	Save(repo *models.GitRepoInfo, metadata SnapshotMetadata) (int64, error)

	// GetLatest retrieves the most recently saved snapshot's full tree.
	GetLatest() (*models.GitRepoInfo, error)

	// GetLatestSummary retrieves the most recent snapshot's headline numbers.
	GetLatestSummary() (*SnapshotSummary, error)

	// GetByID retrieves a specific snapshot's full tree by ID.
	GetByID(id int64) (*models.GitRepoInfo, error)

	// GetByIDSummary retrieves a specific snapshot's headline numbers by ID.
	GetByIDSummary(id int64) (*SnapshotSummary, error)

	// GetRange retrieves snapshot summaries within a time range.
	GetRange(start, end time.Time, limit int) ([]SnapshotSummary, error)

	// GetTimeSeries retrieves a KPI's value history. scopePath is "" for the
	// repository root or a ScanDir's Path for a scoped series; only ScanDir
	// scopes are recorded, so a single file has no series of its own.
	GetTimeSeries(kpiName, scopePath string, start, end time.Time) ([]TimeSeriesPoint, error)

	// Compare diffs two snapshots' headline numbers.
	Compare(id1, id2 int64) (*ComparisonResult, error)

	// ListSnapshots lists all snapshots, most recent first.
	ListSnapshots(limit int) ([]SnapshotSummary, error)

	// Prune removes snapshots older than retentionDays.
	Prune(retentionDays int) (int, error)

	// DeleteSnapshot removes a specific snapshot.
	DeleteSnapshot(id int64) error

	// Close closes the backend.
	Close() error

	// IsHealthy checks if the backend is accessible.
	IsHealthy() error

	// SaveOwnershipReport persists an ownership report for a snapshot.
	SaveOwnershipReport(snapshotID int64, report ownership.Report) error

	// GetOwnershipReport retrieves the ownership report for a snapshot.
	GetOwnershipReport(snapshotID int64) (ownership.Report, error)
}
