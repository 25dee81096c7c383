package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// BackendConfig specifies storage backend configuration.
type BackendConfig struct {
	Type           string // "sqlite"
	Path           string // Path to the database file
	KeepJSONBackup bool   // Not read by NewBackend; no JSON copy is written
}

// NewBackend creates a storage backend based on configuration.
func NewBackend(config BackendConfig) (Backend, error) {
	switch config.Type {
	case "sqlite", "":
		return NewSQLiteBackend(config.Path)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", config.Type)
	}
}

// DetectOrCreateDatabase checks if metricmancer.db exists in rootPath; if
// not, it creates a .metricmancer subdirectory to hold a fresh one.
func DetectOrCreateDatabase(rootPath string) (string, error) {
	rootDBPath := filepath.Join(rootPath, "metricmancer.db")
	if _, err := os.Stat(rootDBPath); err == nil {
		return rootDBPath, nil
	}

	dataDir := filepath.Join(rootPath, ".metricmancer")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create .metricmancer directory: %w", err)
	}

	return filepath.Join(dataDir, "metricmancer.db"), nil
}

// DefaultBackendConfig returns the default storage configuration rooted at
// rootPath.
func DefaultBackendConfig(rootPath string) (BackendConfig, error) {
	dbPath, err := DetectOrCreateDatabase(rootPath)
	if err != nil {
		return BackendConfig{}, err
	}

	return BackendConfig{
		Type:           "sqlite",
		Path:           dbPath,
		KeepJSONBackup: true,
	}, nil
}
