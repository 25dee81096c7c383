package storage

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metricmancer/metricmancer/pkg/models"
	"github.com/metricmancer/metricmancer/pkg/ownership"
)

func TestSQLiteBackendSaveAndRetrieve(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "metricmancer-test-")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tempDir) }()

	backend, err := NewSQLiteBackend(tempDir + "/test.db")
	require.NoError(t, err)
	defer func() { _ = backend.Close() }()

	repo := testRepo("/repo/one", 12.0)

	id, err := backend.Save(repo, SnapshotMetadata{ToolVersion: "1.0.0"})
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	retrieved, err := backend.GetLatest()
	require.NoError(t, err)
	require.NotNil(t, retrieved)
	assert.Equal(t, repo.RepoRoot, retrieved.RepoRoot)

	summary, err := backend.GetLatestSummary()
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, id, summary.ID)
	assert.Equal(t, 1, summary.TotalFiles)
	assert.Equal(t, 12.0, summary.TotalComplexity)

	snapshots, err := backend.ListSnapshots(10)
	require.NoError(t, err)
	assert.NotEmpty(t, snapshots)

	points, err := backend.GetTimeSeries("complexity", repo.RepoRoot, time.Now().AddDate(0, 0, -1), time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, points)
}

func TestSQLiteBackendMultipleSnapshots(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "metricmancer-test-")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tempDir) }()

	backend, err := NewSQLiteBackend(tempDir + "/test-multi.db")
	require.NoError(t, err)
	defer func() { _ = backend.Close() }()

	id1, err := backend.Save(testRepo("/repo/one", 10.0), SnapshotMetadata{ToolVersion: "1.0.0"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond) // Ensure a distinct analyzed_at.
	id2, err := backend.Save(testRepo("/repo/one", 15.0), SnapshotMetadata{ToolVersion: "1.0.0"})
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2, "snapshot IDs should be unique")

	snapshots, err := backend.GetRange(time.Now().AddDate(0, 0, -1), time.Now(), 10)
	require.NoError(t, err)
	assert.Len(t, snapshots, 2)

	comparison, err := backend.Compare(id1, id2)
	require.NoError(t, err)
	require.NotNil(t, comparison)
	assert.Equal(t, id1, comparison.Snapshot1.ID)
	assert.Equal(t, id2, comparison.Snapshot2.ID)
	assert.Equal(t, 5.0, comparison.MetricDeltas["total_complexity"])
}

func TestSQLiteBackendOwnershipReportRoundTrips(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "metricmancer-test-")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tempDir) }()

	backend, err := NewSQLiteBackend(tempDir + "/test-ownership.db")
	require.NoError(t, err)
	defer func() { _ = backend.Close() }()

	id, err := backend.Save(testRepo("/repo/one", 10.0), SnapshotMetadata{})
	require.NoError(t, err)

	report := ownership.Report{
		TotalOwners: 1,
		OwnerMetrics: []ownership.OwnerMetrics{
			{Owner: "alice", FileCount: 3, PrimaryOwnerCount: 2, AverageShare: 75.5},
		},
	}
	require.NoError(t, backend.SaveOwnershipReport(id, report))

	got, err := backend.GetOwnershipReport(id)
	require.NoError(t, err)
	require.Len(t, got.OwnerMetrics, 1)
	assert.Equal(t, "alice", got.OwnerMetrics[0].Owner)
	assert.Equal(t, 75.5, got.OwnerMetrics[0].AverageShare)
}

func TestPruneRemovesOldSnapshots(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "metricmancer-test-")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tempDir) }()

	backend, err := NewSQLiteBackend(tempDir + "/test-prune.db")
	require.NoError(t, err)
	defer func() { _ = backend.Close() }()

	repo := testRepo("/repo/one", 10.0)
	repo.AnalyzedAt = time.Now().AddDate(0, 0, -100)
	_, err = backend.Save(repo, SnapshotMetadata{})
	require.NoError(t, err)

	removed, err := backend.Prune(90)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = backend.GetLatest()
	assert.Error(t, err)
}

func testRepo(repoRoot string, complexity float64) *models.GitRepoInfo {
	root := models.NewScanDir("one", repoRoot)
	root.Files["main.go"] = &models.File{
		Filename:     "main.go",
		AbsolutePath: repoRoot + "/main.go",
		Language:     "Go",
		KPIs: map[string]models.KPIValue{
			"complexity": models.NewNumericKPI("complexity", complexity),
		},
	}
	root.KPIs["complexity"] = models.NewNumericKPI("complexity", complexity)

	return &models.GitRepoInfo{
		RepoRoot:   repoRoot,
		RepoName:   "one",
		Results:    root,
		AnalyzedAt: time.Now(),
	}
}
