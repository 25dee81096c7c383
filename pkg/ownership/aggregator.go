package ownership

import (
	"sort"

	"github.com/metricmancer/metricmancer/pkg/models"
)

// BuildReport walks a ScanDir tree and rolls up every file's
// "code_ownership" KPI into a per-author Report. Files without a
// code_ownership KPI (no blame data — e.g. ungit-tracked or blame failed)
// are skipped.
func BuildReport(analyzedAt string, root *models.ScanDir) Report {
	type accumulator struct {
		fileCount    int
		primaryCount int
		shareTotal   float64
	}
	totals := make(map[string]*accumulator)

	var walk func(dir *models.ScanDir)
	walk = func(dir *models.ScanDir) {
		for _, f := range dir.Files {
			kpi, ok := f.KPIs["code_ownership"]
			if !ok || kpi.Kind() != models.KindOwnership {
				continue
			}
			ownership := kpi.Ownership()
			for _, author := range ownership.Authors {
				acc := totals[author.Name]
				if acc == nil {
					acc = &accumulator{}
					totals[author.Name] = acc
				}
				acc.fileCount++
				acc.shareTotal += float64(author.Share)
				if author.Name == ownership.PrimaryOwner {
					acc.primaryCount++
				}
			}
		}
		for _, sub := range dir.Dirs {
			walk(sub)
		}
	}
	walk(root)

	metrics := make([]OwnerMetrics, 0, len(totals))
	for owner, acc := range totals {
		metrics = append(metrics, OwnerMetrics{
			Owner:             owner,
			FileCount:         acc.fileCount,
			PrimaryOwnerCount: acc.primaryCount,
			AverageShare:      round1(acc.shareTotal / float64(acc.fileCount)),
		})
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		if metrics[i].PrimaryOwnerCount != metrics[j].PrimaryOwnerCount {
			return metrics[i].PrimaryOwnerCount > metrics[j].PrimaryOwnerCount
		}
		return metrics[i].Owner < metrics[j].Owner
	})

	return Report{
		AnalyzedAt:   analyzedAt,
		TotalOwners:  len(metrics),
		OwnerMetrics: metrics,
	}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
