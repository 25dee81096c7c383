// Package ownership derives per-file author line-share distributions from
// git blame and rolls them up into repository-wide ownership reports.
package ownership

import (
	"bufio"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/metricmancer/metricmancer/pkg/models"
)

// Blame runs a single `git blame --line-porcelain` per file, attributing
// each surviving line at HEAD to its last-touching author. This is
// equivalent to a full blame for ownership purposes without replaying the
// entire commit history: only the HEAD snapshot matters.
type Blame struct {
	repoRoot string
}

// NewBlame builds a Blame rooted at repoRoot.
func NewBlame(repoRoot string) *Blame {
	return &Blame{repoRoot: repoRoot}
}

// AuthorShares returns the author line shares for one file, as percentages
// summing to ~100 and rounded to the nearest whole percent. Author display
// names are NFC-normalized before grouping so the same contributor under
// differing Unicode normalizations of their name (e.g. combining vs.
// precomposed accents) is not double-counted.
func (b *Blame) AuthorShares(absPath string) ([]models.AuthorShare, error) {
	relPath, err := filepath.Rel(b.repoRoot, absPath)
	if err != nil {
		return nil, fmt.Errorf("ownership: %s is not under repo root %s: %w", absPath, b.repoRoot, err)
	}

	cmd := exec.Command("git", "blame", "--line-porcelain", "--", relPath)
	cmd.Dir = b.repoRoot

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ownership: git blame failed for %s: %w", relPath, err)
	}

	counts := make(map[string]int)
	total := 0

	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "author ") {
			continue
		}
		name := norm.NFC.String(strings.TrimPrefix(line, "author "))
		counts[name]++
		total++
	}

	if total == 0 {
		return nil, nil
	}

	shares := make([]models.AuthorShare, 0, len(counts))
	for name, count := range counts {
		shares = append(shares, models.AuthorShare{
			Name:  name,
			Share: roundPercent(count, total),
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Share > shares[j].Share
	})

	return shares, nil
}

func roundPercent(count, total int) int {
	return int((float64(count)/float64(total))*100 + 0.5)
}
