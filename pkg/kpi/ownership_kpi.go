package kpi

import (
	"fmt"
	"sort"

	"github.com/metricmancer/metricmancer/pkg/models"
)

// Ownership thresholds: a single author above SingleOwnerThreshold of lines
// makes the file theirs; below LowAuthorThreshold an author's contribution
// doesn't count toward the "shared" classification at all.
const (
	SingleOwnerThreshold = 0.8
	LowAuthorThreshold   = 0.2
)

// CodeOwnershipKPI packages a file's pre-computed per-author line shares
// into an Ownership KPIValue, sorted by descending share.
type CodeOwnershipKPI struct{}

func (CodeOwnershipKPI) Calculate(ctx FileContext) (models.KPIValue, error) {
	authors := append([]models.AuthorShare{}, ctx.AuthorShares...)
	sort.SliceStable(authors, func(i, j int) bool {
		return authors[i].Share > authors[j].Share
	})

	primary := ""
	if len(authors) > 0 {
		primary = authors[0].Name
	}

	return models.NewOwnershipKPI("code_ownership", models.Ownership{
		Authors:      authors,
		PrimaryOwner: primary,
	}), nil
}

// SharedOwnershipKPI classifies a file's ownership distribution into a
// human-readable label using SingleOwnerThreshold/LowAuthorThreshold.
type SharedOwnershipKPI struct{}

func (SharedOwnershipKPI) Calculate(ctx FileContext) (models.KPIValue, error) {
	return models.NewClassificationKPI("shared_ownership", classifyOwnership(ctx.AuthorShares)), nil
}

func classifyOwnership(authors []models.AuthorShare) string {
	if len(authors) == 0 {
		return fmt.Sprintf("None (threshold: %.1f)", LowAuthorThreshold)
	}

	for _, a := range authors {
		if float64(a.Share)/100 > SingleOwnerThreshold {
			return fmt.Sprintf("Single owner: %s", a.Name)
		}
	}

	above := 0
	for _, a := range authors {
		if float64(a.Share)/100 > LowAuthorThreshold {
			above++
		}
	}
	if above == 0 {
		return fmt.Sprintf("None (threshold: %.1f)", LowAuthorThreshold)
	}
	return fmt.Sprintf("%d authors", above)
}
