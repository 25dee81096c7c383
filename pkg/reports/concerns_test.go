package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/metricmancer/metricmancer/internal/config"
	"github.com/metricmancer/metricmancer/pkg/models"
)

func ownershipKPIs(complexity, cognitive, churn, hotspot float64, authors ...models.AuthorShare) map[string]models.KPIValue {
	kpis := numericKPIs(complexity, cognitive, churn, hotspot)
	primary := ""
	if len(authors) > 0 {
		primary = authors[0].Name
	}
	kpis["code_ownership"] = models.NewOwnershipKPI("code_ownership", models.Ownership{
		Authors:      authors,
		PrimaryOwner: primary,
	})
	return kpis
}

func TestDetectConcernsHotspot(t *testing.T) {
	repo := repoWithFiles(
		fileWithKPIs("hot.go", numericKPIs(20, 25, 15, 400)),
	)

	concerns := DetectConcerns(repo, true, config.DefaultConfig().Thresholds)

	require := assert.New(t)
	var found bool
	for _, c := range concerns {
		if c.Type == "hotspot" {
			found = true
			require.Equal("critical", c.Severity)
			require.Len(c.AffectedItems, 1)
			require.Equal("/repo/hot.go", c.AffectedItems[0].FilePath)
		}
	}
	require.True(found, "expected a hotspot concern")
}

func TestDetectConcernsNoneWhenClean(t *testing.T) {
	repo := repoWithFiles(
		fileWithKPIs("clean.go", numericKPIs(2, 3, 1, 2)),
	)

	concerns := DetectConcerns(repo, true, config.DefaultConfig().Thresholds)

	assert.Empty(t, concerns)
}

func TestDetectConcernsHighComplexitySeveritySplit(t *testing.T) {
	repo := repoWithFiles(
		fileWithKPIs("warn.go", numericKPIs(12, 1, 0, 0)),
		fileWithKPIs("crit.go", numericKPIs(25, 1, 0, 0)),
	)

	concerns := DetectConcerns(repo, false, config.DefaultConfig().Thresholds)

	var warning, critical *models.Concern
	for i := range concerns {
		c := &concerns[i]
		if c.Type != "high_complexity" {
			continue
		}
		switch c.Severity {
		case "warning":
			warning = c
		case "critical":
			critical = c
		}
	}

	require := assert.New(t)
	require.NotNil(warning)
	require.Equal("warn.go", baseName(warning.AffectedItems[0].FilePath))
	require.NotNil(critical)
	require.Equal("crit.go", baseName(critical.AffectedItems[0].FilePath))
}

func TestDetectConcernsSkipsChurnWithoutChurnData(t *testing.T) {
	repo := repoWithFiles(
		fileWithKPIs("churny.go", numericKPIs(1, 1, 50, 0)),
	)

	concerns := DetectConcerns(repo, false, config.DefaultConfig().Thresholds)

	for _, c := range concerns {
		assert.NotEqual(t, "high_churn", c.Type)
	}
}

func TestDetectConcernsSingleOwnerRisk(t *testing.T) {
	file := fileWithKPIs("owned.go", ownershipKPIs(1, 1, 0, 0,
		models.AuthorShare{Name: "alice", Share: 95},
		models.AuthorShare{Name: "bob", Share: 5},
	))
	repo := repoWithFiles(file)

	concerns := DetectConcerns(repo, false, config.DefaultConfig().Thresholds)

	var found bool
	for _, c := range concerns {
		if c.Type == "single_owner_risk" {
			found = true
			assert.Equal(t, "warning", c.Severity)
		}
	}
	assert.True(t, found, "expected a single-owner-risk concern")
}

func TestDetectConcernsSortedCriticalFirst(t *testing.T) {
	repo := repoWithFiles(
		fileWithKPIs("warn.go", numericKPIs(12, 1, 0, 0)),
		fileWithKPIs("crit.go", numericKPIs(25, 1, 0, 0)),
	)

	concerns := DetectConcerns(repo, false, config.DefaultConfig().Thresholds)

	assert.NotEmpty(t, concerns)
	assert.Equal(t, "critical", concerns[0].Severity)
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
