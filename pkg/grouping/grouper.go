// Package grouping partitions a flat FileDescriptor list by repository root.
package grouping

import "github.com/metricmancer/metricmancer/pkg/models"

// GroupByRepository partitions files by their RepoRoot. A missing RepoRoot
// (empty string) is its own degenerate "unknown" bucket. filesByRoot
// preserves insertion order within each bucket. scanDirsByRoot collects the
// distinct originating scan roots seen for each repo root (here, RepoRoot
// itself, since the Scanner stamps every descriptor with the root it was
// discovered under).
//
// Pure function: same input always yields the same output, no I/O.
func GroupByRepository(files []models.FileDescriptor) (
	filesByRoot map[string][]models.FileDescriptor,
	scanDirsByRoot map[string]map[string]bool,
) {
	filesByRoot = make(map[string][]models.FileDescriptor)
	scanDirsByRoot = make(map[string]map[string]bool)

	for _, f := range files {
		root := f.RepoRoot

		filesByRoot[root] = append(filesByRoot[root], f)

		if scanDirsByRoot[root] == nil {
			scanDirsByRoot[root] = make(map[string]bool)
		}
		scanDirsByRoot[root][root] = true
	}

	return filesByRoot, scanDirsByRoot
}
