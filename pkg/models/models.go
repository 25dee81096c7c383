// Package models defines the hierarchical data model produced by the
// analysis pipeline: FileDescriptor (raw scanner output), File and ScanDir
// (the analyzed tree), and GitRepoInfo (the per-repository root).
package models

import "time"

// FileDescriptor is the immutable record produced by the Scanner for a
// single file on disk.
type FileDescriptor struct {
	AbsolutePath string
	RepoRoot     string
	Extension    string
}

// File represents one analyzed source file, owned by exactly one ScanDir.
type File struct {
	Filename     string
	AbsolutePath string
	Language     string
	KPIs         map[string]KPIValue
}

// NewFile creates a File with an initialized, empty KPI map.
func NewFile(filename, absolutePath, language string) *File {
	return &File{
		Filename:     filename,
		AbsolutePath: absolutePath,
		Language:     language,
		KPIs:         make(map[string]KPIValue),
	}
}

// ScanDir is a directory node in the hierarchical model. It exclusively owns
// its files and child ScanDirs; there are no back-references.
type ScanDir struct {
	DirName string
	Path    string
	Files   map[string]*File
	Dirs    map[string]*ScanDir
	KPIs    map[string]KPIValue
}

// NewScanDir creates an empty ScanDir rooted at path.
func NewScanDir(dirName, path string) *ScanDir {
	return &ScanDir{
		DirName: dirName,
		Path:    path,
		Files:   make(map[string]*File),
		Dirs:    make(map[string]*ScanDir),
		KPIs:    make(map[string]KPIValue),
	}
}

// GitRepoInfo is the per-repository root node. It is frozen once the engine
// has populated Results: nothing beyond that point mutates it.
type GitRepoInfo struct {
	RepoRoot  string
	RepoName  string
	ScanDirs  []string
	ChurnData map[string]float64
	Commits   []string
	Results   *ScanDir
	AnalyzedAt time.Time
}
