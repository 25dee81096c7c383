// Package engine ties the scanner, parsers, VCS miners, and KPI pipeline
// into a single Run call.
package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/metricmancer/metricmancer/pkg/churn"
	"github.com/metricmancer/metricmancer/pkg/cognitive"
	"github.com/metricmancer/metricmancer/pkg/complexity"
	"github.com/metricmancer/metricmancer/pkg/errs"
	"github.com/metricmancer/metricmancer/pkg/grouping"
	"github.com/metricmancer/metricmancer/pkg/kpi"
	"github.com/metricmancer/metricmancer/pkg/models"
	"github.com/metricmancer/metricmancer/pkg/ownership"
	"github.com/metricmancer/metricmancer/pkg/scanner"
	"github.com/metricmancer/metricmancer/pkg/timing"
)

// Options configures one analysis run.
type Options struct {
	// ScanDirs are the directories to walk. After the scan, the files found
	// under each are attributed to its enclosing repository (nearest
	// ancestor containing .git); directories outside any repository are
	// analyzed with zero churn/ownership rather than rejected.
	ScanDirs []string

	// IncludeLanguages restricts analysis to these language names (as
	// reported by the complexity registry's parser Name). Empty means
	// every registered language.
	IncludeLanguages []string

	// SkipChurn disables the VCS mining stage entirely; the churn and
	// hotspot KPIs are then 0 and the ownership KPIs are built from an
	// empty author list.
	SkipChurn bool
}

// Engine wires the registries and trackers that Run needs. A single Engine
// can run multiple analyses; its registries are read-only, process-wide
// configuration.
type Engine struct {
	complexityRegistry *complexity.Registry
	cCognitive         *cognitive.Calculator
	javaCognitive      *cognitive.Calculator
	timings            *timing.Tracker
}

// New builds an Engine with the standard language registry and cognitive
// calculators.
func New() *Engine {
	return &Engine{
		complexityRegistry: complexity.NewRegistry(),
		cCognitive:         cognitive.NewCCalculator(),
		javaCognitive:      cognitive.NewJavaCalculator(),
		timings:            timing.New(),
	}
}

// Timings exposes the Engine's accumulated per-operation timings.
func (e *Engine) Timings() map[string]time.Duration {
	return e.timings.Timings()
}

// Run executes the full S1-S5 pipeline and returns one GitRepoInfo per
// distinct repository discovered among options.ScanDirs.
func (e *Engine) Run(options Options) []*models.GitRepoInfo {
	s := scanner.New(e.complexityRegistry.Extensions())
	descriptors := s.Scan(options.ScanDirs)
	descriptors = e.rehomeToRepoRoots(descriptors)
	descriptors = filterByLanguage(descriptors, e.complexityRegistry, options.IncludeLanguages)

	filesByRoot, scanDirsByRoot := grouping.GroupByRepository(descriptors)

	var repos []*models.GitRepoInfo
	for repoRoot, files := range filesByRoot {
		repos = append(repos, e.buildRepo(repoRoot, files, scanDirsByRoot[repoRoot], options))
	}
	return repos
}

// rehomeToRepoRoots overrides each descriptor's RepoRoot (initially the
// scanned directory itself) with the nearest ancestor .git directory, so
// VCS mining runs against the real repository root rather than an
// arbitrary subdirectory passed on the command line.
func (e *Engine) rehomeToRepoRoots(descriptors []models.FileDescriptor) []models.FileDescriptor {
	cache := make(map[string]string)

	out := make([]models.FileDescriptor, len(descriptors))
	for i, d := range descriptors {
		root, ok := cache[d.RepoRoot]
		if !ok {
			root = findRepoRoot(d.RepoRoot)
			cache[d.RepoRoot] = root
		}
		d.RepoRoot = root
		out[i] = d
	}
	return out
}

// findRepoRoot walks up from dir looking for a .git directory. Degrades
// gracefully: if none is found, dir itself is the root (churn/ownership
// will simply report zero/empty for it).
func findRepoRoot(dir string) string {
	current := dir
	for {
		if info, err := os.Stat(filepath.Join(current, ".git")); err == nil && info.IsDir() {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir
		}
		current = parent
	}
}

func filterByLanguage(descriptors []models.FileDescriptor, registry *complexity.Registry, include []string) []models.FileDescriptor {
	if len(include) == 0 {
		return descriptors
	}

	var out []models.FileDescriptor
	for _, d := range descriptors {
		parser, ok := registry.Lookup(d.Extension)
		if !ok {
			continue
		}
		if languageIncluded(parser.Name, include) {
			out = append(out, d)
		}
	}
	return out
}

func languageIncluded(name string, include []string) bool {
	for _, lang := range include {
		if strings.EqualFold(name, lang) {
			return true
		}
	}
	return false
}

func (e *Engine) buildRepo(repoRoot string, files []models.FileDescriptor, scanDirSet map[string]bool, options Options) *models.GitRepoInfo {
	var churnData map[string]float64
	var commits []string
	var blame *ownership.Blame

	if !options.SkipChurn {
		churnAnalyzer := churn.New(repoRoot)
		e.timings.Track("filechurn", func() {
			churnData = errs.HandleGitOperation("churn:"+repoRoot, func() (map[string]float64, error) {
				return churnAnalyzer.Churn()
			})
			commits = errs.HandleGitOperation("commits:"+repoRoot, func() ([]string, error) {
				return churnAnalyzer.Commits()
			})
		})
		blame = ownership.NewBlame(repoRoot)
	}

	orchestrator := e.newOrchestrator()

	root := models.NewScanDir(filepath.Base(repoRoot), repoRoot)
	for _, d := range files {
		ctx := e.fileContext(d, churnData, blame)
		file := models.NewFile(filepath.Base(d.AbsolutePath), d.AbsolutePath, e.languageName(d.Extension))
		file.KPIs = orchestrator.CalculateFileKPIs(ctx)
		attachFile(root, repoRoot, file)
	}

	aggregateTree(root, e.newAggregator())

	scanDirs := make([]string, 0, len(scanDirSet))
	for dir := range scanDirSet {
		scanDirs = append(scanDirs, dir)
	}

	return &models.GitRepoInfo{
		RepoRoot:   repoRoot,
		RepoName:   filepath.Base(repoRoot),
		ScanDirs:   scanDirs,
		ChurnData:  churnData,
		Commits:    commits,
		Results:    root,
		AnalyzedAt: time.Now(),
	}
}

func (e *Engine) fileContext(d models.FileDescriptor, churnData map[string]float64, blame *ownership.Blame) kpi.FileContext {
	ctx := kpi.FileContext{
		FilePath: d.AbsolutePath,
		RepoRoot: d.RepoRoot,
	}

	e.timings.Track("complexity", func() {
		if parser, ok := e.complexityRegistry.Lookup(d.Extension); ok {
			source, err := os.ReadFile(d.AbsolutePath)
			if err != nil {
				ctx.Complexity = 1
				return
			}
			text := string(source)
			ctx.Complexity = parser.ComputeComplexity(text)
			ctx.FunctionCount = parser.CountFunctions(text)
			ctx.CognitiveScore = e.cognitiveScore(d.Extension, source)
		} else {
			ctx.Complexity = 1
		}
	})

	if churnData != nil {
		ctx.Churn = churnData[d.AbsolutePath]
	}

	if blame != nil {
		e.timings.Track("ownership", func() {
			ctx.AuthorShares = errs.HandleGitOperation("blame:"+d.AbsolutePath, func() ([]models.AuthorShare, error) {
				return blame.AuthorShares(d.AbsolutePath)
			})
		})
	}

	return ctx
}

func (e *Engine) cognitiveScore(extension string, source []byte) int {
	var calc *cognitive.Calculator
	switch extension {
	case ".c", ".h":
		calc = e.cCognitive
	case ".java":
		calc = e.javaCognitive
	default:
		return 0
	}

	functions, err := calc.Calculate(context.Background(), source)
	if err != nil || len(functions) == 0 {
		return 0
	}

	total := 0
	for _, f := range functions {
		total += f.Complexity
	}
	return total
}

func (e *Engine) languageName(extension string) string {
	if parser, ok := e.complexityRegistry.Lookup(extension); ok {
		return parser.Name
	}
	return "unknown"
}

func (e *Engine) newOrchestrator() *kpi.Orchestrator {
	return kpi.NewOrchestrator(
		kpi.ComplexityKPI{},
		kpi.CognitiveComplexityKPI{},
		kpi.ChurnKPI{},
		kpi.NewHotspotKPI(),
		kpi.CodeOwnershipKPI{},
		kpi.SharedOwnershipKPI{},
	)
}

func (e *Engine) newAggregator() *kpi.Aggregator {
	agg := kpi.NewAggregator()
	agg.RegisterStrategy("complexity", kpi.StrategySum, models.KindNumeric)
	agg.RegisterStrategy("cognitive_complexity", kpi.StrategySum, models.KindNumeric)
	agg.RegisterStrategy("churn", kpi.StrategySum, models.KindNumeric)
	agg.RegisterStrategy("hotspot", kpi.StrategyMax, models.KindNumeric)
	return agg
}

// attachFile walks/creates the ScanDir chain between repoRoot and the
// file's containing directory, then attaches file there.
func attachFile(root *models.ScanDir, repoRoot string, file *models.File) {
	rel, err := filepath.Rel(repoRoot, filepath.Dir(file.AbsolutePath))
	if err != nil || rel == "." {
		root.Files[file.Filename] = file
		return
	}

	current := root
	currentPath := repoRoot
	for _, segment := range strings.Split(rel, string(filepath.Separator)) {
		if segment == "" {
			continue
		}
		currentPath = filepath.Join(currentPath, segment)
		child, ok := current.Dirs[segment]
		if !ok {
			child = models.NewScanDir(segment, currentPath)
			current.Dirs[segment] = child
		}
		current = child
	}
	current.Files[file.Filename] = file
}

// aggregateTree stores aggregated KPIs on dir and every directory below it.
// AggregateDir reads file KPIs only, so the visiting order does not affect
// the result.
func aggregateTree(dir *models.ScanDir, agg *kpi.Aggregator) {
	for _, child := range dir.Dirs {
		aggregateTree(child, agg)
	}
	dir.KPIs = agg.AggregateDir(dir)
}
