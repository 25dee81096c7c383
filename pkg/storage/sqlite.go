package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/glebarez/sqlite"

	"github.com/metricmancer/metricmancer/pkg/models"
	"github.com/metricmancer/metricmancer/pkg/ownership"
)

// SQLiteBackend implements Backend using SQLite.
type SQLiteBackend struct {
	database *sql.DB
	path     string
}

// NewSQLiteBackend creates or opens a SQLite database at the given path.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(database); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteBackend{database: database, path: path}, nil
}

// Save stores a new GitRepoInfo snapshot.
func (backend *SQLiteBackend) Save(repo *models.GitRepoInfo, metadata SnapshotMetadata) (int64, error) {
	jsonData, err := json.Marshal(repo)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	summary := summarize(repo)

	execResult, err := backend.database.Exec(`
		INSERT INTO repo_snapshots (
			repo_root, repo_name, analyzed_at, git_commit_hash, git_branch,
			tool_version, config_hash, total_files, total_complexity,
			total_cognitive_complexity, total_churn, max_hotspot_score,
			hotspot_count, full_data
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		repo.RepoRoot, repo.RepoName, repo.AnalyzedAt,
		metadata.GitCommitHash, metadata.GitBranch, metadata.ToolVersion, metadata.ConfigHash,
		summary.TotalFiles, summary.TotalComplexity, summary.TotalCognitiveComplexity,
		summary.TotalChurn, summary.MaxHotspotScore, summary.HotspotCount,
		jsonData,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	snapshotID, err := execResult.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get snapshot ID: %w", err)
	}

	if err := backend.insertTimeSeries(snapshotID, repo); err != nil {
		return 0, fmt.Errorf("failed to insert KPI time series: %w", err)
	}

	return snapshotID, nil
}

// insertTimeSeries records one kpi_timeseries row per numeric KPI, at every
// scope (repo root and every descendant ScanDir), keyed by that node's path.
func (backend *SQLiteBackend) insertTimeSeries(snapshotID int64, repo *models.GitRepoInfo) error {
	stmt, err := backend.database.Prepare(`
		INSERT INTO kpi_timeseries (snapshot_id, analyzed_at, kpi_name, scope_path, value)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	var walk func(dir *models.ScanDir) error
	walk = func(dir *models.ScanDir) error {
		for name, kpi := range dir.KPIs {
			if kpi.Kind() != models.KindNumeric {
				continue
			}
			if _, err := stmt.Exec(snapshotID, repo.AnalyzedAt, name, dir.Path, kpi.Numeric()); err != nil {
				return err
			}
		}
		for _, child := range dir.Dirs {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	if repo.Results == nil {
		return nil
	}
	return walk(repo.Results)
}

// summarize computes a SnapshotSummary's headline numbers from the
// already-aggregated KPIs on repo.Results, the repo-root ScanDir.
func summarize(repo *models.GitRepoInfo) SnapshotSummary {
	summary := SnapshotSummary{
		AnalyzedAt: repo.AnalyzedAt,
		RepoRoot:   repo.RepoRoot,
		TotalFiles: countFiles(repo.Results),
	}
	if repo.Results == nil {
		return summary
	}

	if kpi, ok := repo.Results.KPIs["complexity"]; ok && kpi.Kind() == models.KindNumeric {
		summary.TotalComplexity = kpi.Numeric()
	}
	if kpi, ok := repo.Results.KPIs["cognitive_complexity"]; ok && kpi.Kind() == models.KindNumeric {
		summary.TotalCognitiveComplexity = kpi.Numeric()
	}
	if kpi, ok := repo.Results.KPIs["churn"]; ok && kpi.Kind() == models.KindNumeric {
		summary.TotalChurn = kpi.Numeric()
	}
	if kpi, ok := repo.Results.KPIs["hotspot"]; ok && kpi.Kind() == models.KindNumeric {
		summary.MaxHotspotScore = kpi.Numeric()
	}
	return summary
}

func countFiles(dir *models.ScanDir) int {
	if dir == nil {
		return 0
	}
	count := len(dir.Files)
	for _, child := range dir.Dirs {
		count += countFiles(child)
	}
	return count
}

// GetLatest retrieves the most recently saved snapshot's full tree.
func (backend *SQLiteBackend) GetLatest() (*models.GitRepoInfo, error) {
	return backend.loadFullData(`SELECT full_data FROM repo_snapshots ORDER BY analyzed_at DESC LIMIT 1`)
}

// GetByID retrieves a specific snapshot's full tree by ID.
func (backend *SQLiteBackend) GetByID(id int64) (*models.GitRepoInfo, error) {
	return backend.loadFullData(`SELECT full_data FROM repo_snapshots WHERE id = ?`, id)
}

func (backend *SQLiteBackend) loadFullData(query string, args ...interface{}) (*models.GitRepoInfo, error) {
	var jsonData string
	err := backend.database.QueryRow(query, args...).Scan(&jsonData)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	var repo models.GitRepoInfo
	if err := json.Unmarshal([]byte(jsonData), &repo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &repo, nil
}

// GetLatestSummary retrieves the most recent snapshot's headline numbers.
func (backend *SQLiteBackend) GetLatestSummary() (*SnapshotSummary, error) {
	return backend.GetByIDSummary(0)
}

const summaryColumns = `
	id, analyzed_at, repo_root, git_commit_hash, git_branch, total_files,
	total_complexity, total_cognitive_complexity, total_churn, max_hotspot_score,
	hotspot_count
`

func scanSummary(row interface{ Scan(...interface{}) error }) (SnapshotSummary, error) {
	summary := SnapshotSummary{}
	err := row.Scan(
		&summary.ID, &summary.AnalyzedAt, &summary.RepoRoot, &summary.GitCommitHash, &summary.GitBranch,
		&summary.TotalFiles, &summary.TotalComplexity, &summary.TotalCognitiveComplexity,
		&summary.TotalChurn, &summary.MaxHotspotScore, &summary.HotspotCount,
	)
	return summary, err
}

// GetByIDSummary retrieves a snapshot summary by ID, or the latest if id<=0.
func (backend *SQLiteBackend) GetByIDSummary(id int64) (*SnapshotSummary, error) {
	query := "SELECT " + summaryColumns + " FROM repo_snapshots"

	var args []interface{}
	if id > 0 {
		query += " WHERE id = ?"
		args = append(args, id)
	} else {
		query += " ORDER BY analyzed_at DESC LIMIT 1"
	}

	summary, err := scanSummary(backend.database.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		if id > 0 {
			return nil, fmt.Errorf("snapshot %d not found", id)
		}
		return nil, fmt.Errorf("no snapshots found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	return &summary, nil
}

// GetRange retrieves snapshot summaries within a time range.
func (backend *SQLiteBackend) GetRange(start, end time.Time, limit int) ([]SnapshotSummary, error) {
	query := "SELECT " + summaryColumns + ` FROM repo_snapshots
		WHERE analyzed_at BETWEEN ? AND ? ORDER BY analyzed_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	return backend.querySummaries(query, start, end)
}

// ListSnapshots lists all snapshots, most recent first.
func (backend *SQLiteBackend) ListSnapshots(limit int) ([]SnapshotSummary, error) {
	query := "SELECT " + summaryColumns + " FROM repo_snapshots ORDER BY analyzed_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return backend.querySummaries(query)
}

func (backend *SQLiteBackend) querySummaries(query string, args ...interface{}) ([]SnapshotSummary, error) {
	rows, err := backend.database.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var summaries []SnapshotSummary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}
	return summaries, nil
}

// GetTimeSeries retrieves a KPI's value history.
func (backend *SQLiteBackend) GetTimeSeries(kpiName, scopePath string, start, end time.Time) ([]TimeSeriesPoint, error) {
	query := `
		SELECT t.analyzed_at, t.value FROM kpi_timeseries t
		JOIN repo_snapshots s ON s.id = t.snapshot_id
		WHERE t.kpi_name = ? AND t.analyzed_at BETWEEN ? AND ?
			AND (t.scope_path = ? OR (? = '' AND t.scope_path = s.repo_root))
		ORDER BY t.analyzed_at ASC
	`

	rows, err := backend.database.Query(query, kpiName, start, end, scopePath, scopePath)
	if err != nil {
		return nil, fmt.Errorf("failed to query KPI time series: %w", err)
	}
	defer rows.Close()

	var points []TimeSeriesPoint
	for rows.Next() {
		point := TimeSeriesPoint{}
		if err := rows.Scan(&point.Timestamp, &point.Value); err != nil {
			return nil, fmt.Errorf("failed to scan KPI point: %w", err)
		}
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating KPI points: %w", err)
	}
	return points, nil
}

// Compare diffs two snapshots' headline numbers.
func (backend *SQLiteBackend) Compare(id1, id2 int64) (*ComparisonResult, error) {
	snap1, err := backend.GetByIDSummary(id1)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot 1: %w", err)
	}
	snap2, err := backend.GetByIDSummary(id2)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot 2: %w", err)
	}

	result := &ComparisonResult{
		Snapshot1:    *snap1,
		Snapshot2:    *snap2,
		MetricDeltas: make(map[string]float64),
	}
	result.MetricDeltas["total_complexity"] = snap2.TotalComplexity - snap1.TotalComplexity
	result.MetricDeltas["total_cognitive_complexity"] = snap2.TotalCognitiveComplexity - snap1.TotalCognitiveComplexity
	result.MetricDeltas["total_churn"] = snap2.TotalChurn - snap1.TotalChurn
	result.MetricDeltas["max_hotspot_score"] = snap2.MaxHotspotScore - snap1.MaxHotspotScore
	result.MetricDeltas["total_files"] = float64(snap2.TotalFiles - snap1.TotalFiles)

	return result, nil
}

// Prune removes snapshots older than retentionDays.
func (backend *SQLiteBackend) Prune(retentionDays int) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	result, err := backend.database.Exec(`DELETE FROM repo_snapshots WHERE analyzed_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rowsAffected), nil
}

// DeleteSnapshot removes a specific snapshot.
func (backend *SQLiteBackend) DeleteSnapshot(id int64) error {
	result, err := backend.database.Exec(`DELETE FROM repo_snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("snapshot %d not found", id)
	}
	return nil
}

// Close closes the database connection.
func (backend *SQLiteBackend) Close() error {
	if backend.database != nil {
		return backend.database.Close()
	}
	return nil
}

// IsHealthy checks if the backend is accessible.
func (backend *SQLiteBackend) IsHealthy() error {
	return backend.database.Ping()
}

// SaveOwnershipReport persists an ownership report for a snapshot.
func (backend *SQLiteBackend) SaveOwnershipReport(snapshotID int64, report ownership.Report) error {
	stmt, err := backend.database.Prepare(`
		INSERT INTO ownership_metrics (snapshot_id, owner, file_count, primary_owner_count, average_share)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range report.OwnerMetrics {
		if _, err := stmt.Exec(snapshotID, m.Owner, m.FileCount, m.PrimaryOwnerCount, m.AverageShare); err != nil {
			return err
		}
	}
	return nil
}

// GetOwnershipReport retrieves the ownership report for a snapshot.
func (backend *SQLiteBackend) GetOwnershipReport(snapshotID int64) (ownership.Report, error) {
	var analyzedAt string
	err := backend.database.QueryRow(
		`SELECT analyzed_at FROM repo_snapshots WHERE id = ?`, snapshotID,
	).Scan(&analyzedAt)
	if err != nil {
		return ownership.Report{}, fmt.Errorf("failed to look up snapshot: %w", err)
	}

	rows, err := backend.database.Query(`
		SELECT owner, file_count, primary_owner_count, average_share
		FROM ownership_metrics WHERE snapshot_id = ?
		ORDER BY primary_owner_count DESC, owner ASC
	`, snapshotID)
	if err != nil {
		return ownership.Report{}, err
	}
	defer rows.Close()

	var metrics []ownership.OwnerMetrics
	for rows.Next() {
		m := ownership.OwnerMetrics{}
		if err := rows.Scan(&m.Owner, &m.FileCount, &m.PrimaryOwnerCount, &m.AverageShare); err != nil {
			return ownership.Report{}, err
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return ownership.Report{}, err
	}

	return ownership.Report{
		AnalyzedAt:   analyzedAt,
		TotalOwners:  len(metrics),
		OwnerMetrics: metrics,
	}, nil
}
