package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/metricmancer/metricmancer/pkg/models"
)

func TestGroupByRepositorySplitsByRoot(t *testing.T) {
	files := []models.FileDescriptor{
		{AbsolutePath: "/repo1/a.go", RepoRoot: "/repo1", Extension: ".go"},
		{AbsolutePath: "/repo1/b.go", RepoRoot: "/repo1", Extension: ".go"},
		{AbsolutePath: "/repo2/c.py", RepoRoot: "/repo2", Extension: ".py"},
	}

	filesByRoot, scanDirsByRoot := GroupByRepository(files)

	assert.Len(t, filesByRoot["/repo1"], 2)
	assert.Len(t, filesByRoot["/repo2"], 1)
	assert.True(t, scanDirsByRoot["/repo1"]["/repo1"])
	assert.True(t, scanDirsByRoot["/repo2"]["/repo2"])
}

func TestGroupByRepositoryDefaultsMissingRootToEmptyString(t *testing.T) {
	files := []models.FileDescriptor{
		{AbsolutePath: "/tmp/orphan.go", RepoRoot: "", Extension: ".go"},
	}

	filesByRoot, _ := GroupByRepository(files)
	assert.Len(t, filesByRoot[""], 1)
}

func TestGroupByRepositoryIsDeterministic(t *testing.T) {
	files := []models.FileDescriptor{
		{AbsolutePath: "/repo1/a.go", RepoRoot: "/repo1", Extension: ".go"},
		{AbsolutePath: "/repo1/b.go", RepoRoot: "/repo1", Extension: ".go"},
	}

	first, _ := GroupByRepository(files)
	reflattened := append([]models.FileDescriptor{}, first["/repo1"]...)
	second, _ := GroupByRepository(reflattened)

	assert.Equal(t, first["/repo1"], second["/repo1"])
}
