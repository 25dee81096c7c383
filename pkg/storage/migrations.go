package storage

import "database/sql"

// migration represents a single schema migration.
type migration struct {
	version int
	up      func(*sql.DB) error
}

// migrateV1 creates the initial schema.
func migrateV1(database *sql.DB) error {
	schema := `
	-- repo_snapshots: one row per completed analysis run
	CREATE TABLE IF NOT EXISTS repo_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		repo_root TEXT NOT NULL,
		repo_name TEXT,
		analyzed_at TIMESTAMP NOT NULL,
		git_commit_hash TEXT,
		git_branch TEXT,
		tool_version TEXT,
		config_hash TEXT,

		-- Denormalized summary for fast queries
		total_files INTEGER,
		total_complexity REAL,
		total_cognitive_complexity REAL,
		total_churn REAL,
		max_hotspot_score REAL,
		hotspot_count INTEGER,

		-- Full JSON blob (complete data preservation)
		full_data TEXT NOT NULL,

		UNIQUE(repo_root, analyzed_at)
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_date ON repo_snapshots(analyzed_at DESC);
	CREATE INDEX IF NOT EXISTS idx_snapshots_repo ON repo_snapshots(repo_root, analyzed_at DESC);

	-- kpi_timeseries: denormalized for efficient trending
	CREATE TABLE IF NOT EXISTS kpi_timeseries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		snapshot_id INTEGER NOT NULL,
		analyzed_at TIMESTAMP NOT NULL,

		kpi_name TEXT NOT NULL,
		scope_path TEXT NOT NULL DEFAULT '',
		value REAL NOT NULL,

		FOREIGN KEY (snapshot_id) REFERENCES repo_snapshots(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_kpi_name ON kpi_timeseries(kpi_name, analyzed_at DESC);
	CREATE INDEX IF NOT EXISTS idx_kpi_scope ON kpi_timeseries(scope_path, kpi_name, analyzed_at DESC);

	-- ownership_metrics: per-owner rollup, one snapshot of ownership.BuildReport
	CREATE TABLE IF NOT EXISTS ownership_metrics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		snapshot_id INTEGER NOT NULL,
		owner TEXT NOT NULL,

		file_count INTEGER,
		primary_owner_count INTEGER,
		average_share REAL,

		FOREIGN KEY (snapshot_id) REFERENCES repo_snapshots(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_ownership_owner ON ownership_metrics(owner, snapshot_id);

	-- schema_version: tracks migration state
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := database.Exec(schema)
	return err
}

// runMigrations applies all pending migrations.
func runMigrations(database *sql.DB) error {
	migrations := []migration{
		{version: 1, up: migrateV1},
	}

	currentVersion := 0
	row := database.QueryRow("SELECT MAX(version) FROM schema_version")
	_ = row.Scan(&currentVersion) // Ignore error if table doesn't exist yet.

	for _, mig := range migrations {
		if mig.version > currentVersion {
			if err := mig.up(database); err != nil {
				return err
			}

			_, err := database.Exec("INSERT OR IGNORE INTO schema_version (version) VALUES (?)", mig.version)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
