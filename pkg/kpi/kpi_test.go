package kpi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metricmancer/metricmancer/pkg/models"
)

func TestHotspotExceedsDefaultThreshold(t *testing.T) {
	h := NewHotspotKPI()
	ctx := FileContext{Complexity: 15, Churn: 40}
	score, err := h.Calculate(ctx)
	require.NoError(t, err)

	require.Equal(t, models.KindNumeric, score.Kind())
	assert.Equal(t, 600.0, score.Numeric())
	assert.True(t, h.IsHotspot(score.Numeric()))
}

func TestAggregatorSumStrategy(t *testing.T) {
	agg := NewAggregator()
	agg.RegisterStrategy("churn", StrategySum, models.KindNumeric)

	dir := models.NewScanDir("pkg", "/repo/pkg")
	dir.Files["a.go"] = &models.File{KPIs: map[string]models.KPIValue{
		"churn": models.NewNumericKPI("churn", 10),
	}}
	dir.Files["b.go"] = &models.File{KPIs: map[string]models.KPIValue{
		"churn": models.NewNumericKPI("churn", 20),
	}}

	result := agg.AggregateDir(dir)
	require.Contains(t, result, "churn")
	assert.Equal(t, 30.0, result["churn"].Numeric())
}

func TestAggregatorDefaultsToMean(t *testing.T) {
	agg := NewAggregator()

	dir := models.NewScanDir("pkg", "/repo/pkg")
	dir.Files["a.go"] = &models.File{KPIs: map[string]models.KPIValue{
		"complexity": models.NewNumericKPI("complexity", 2),
	}}
	dir.Files["b.go"] = &models.File{KPIs: map[string]models.KPIValue{
		"complexity": models.NewNumericKPI("complexity", 4),
	}}

	result := agg.AggregateDir(dir)
	assert.Equal(t, 3.0, result["complexity"].Numeric())
}

func TestAggregatorOmitsAbsentKPIsRatherThanZero(t *testing.T) {
	agg := NewAggregator()
	dir := models.NewScanDir("empty", "/repo/empty")

	result := agg.AggregateDir(dir)
	assert.NotContains(t, result, "complexity")
}

func TestAggregatorRegisterStrategyPanicsOnNonNumericKind(t *testing.T) {
	agg := NewAggregator()
	assert.Panics(t, func() {
		agg.RegisterStrategy("code_ownership", StrategySum, models.KindOwnership)
	})
}

func TestSharedOwnershipSingleOwner(t *testing.T) {
	k := SharedOwnershipKPI{}
	v, err := k.Calculate(FileContext{AuthorShares: []models.AuthorShare{
		{Name: "alice", Share: 90},
		{Name: "bob", Share: 10},
	}})
	require.NoError(t, err)
	assert.Equal(t, "Single owner: alice", v.Classification())
}

func TestSharedOwnershipNoAuthorsAboveThreshold(t *testing.T) {
	k := SharedOwnershipKPI{}
	v, err := k.Calculate(FileContext{AuthorShares: []models.AuthorShare{
		{Name: "alice", Share: 10},
		{Name: "bob", Share: 10},
	}})
	require.NoError(t, err)
	assert.Equal(t, "None (threshold: 0.2)", v.Classification())
}

func TestSharedOwnershipMultipleAuthors(t *testing.T) {
	k := SharedOwnershipKPI{}
	v, err := k.Calculate(FileContext{AuthorShares: []models.AuthorShare{
		{Name: "alice", Share: 40},
		{Name: "bob", Share: 35},
		{Name: "carol", Share: 25},
	}})
	require.NoError(t, err)
	assert.Equal(t, "3 authors", v.Classification())
}

func TestCodeOwnershipSortsByDescendingShare(t *testing.T) {
	k := CodeOwnershipKPI{}
	v, err := k.Calculate(FileContext{AuthorShares: []models.AuthorShare{
		{Name: "bob", Share: 30},
		{Name: "alice", Share: 70},
	}})
	require.NoError(t, err)
	ownership := v.Ownership()
	require.Len(t, ownership.Authors, 2)
	assert.Equal(t, "alice", ownership.Authors[0].Name)
	assert.Equal(t, "alice", ownership.PrimaryOwner)
}

func TestOrchestratorElidesErroringCalculator(t *testing.T) {
	orch := NewOrchestrator(ComplexityKPI{}, erroringCalculator{}, ChurnKPI{})
	results := orch.CalculateFileKPIs(FileContext{Complexity: 5, Churn: 2})

	assert.Contains(t, results, "complexity")
	assert.Contains(t, results, "churn")
	assert.Len(t, results, 2)
}

type erroringCalculator struct{}

func (erroringCalculator) Calculate(ctx FileContext) (models.KPIValue, error) {
	return models.KPIValue{}, errors.New("boom")
}
