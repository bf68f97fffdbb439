package engine

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"aiVisibilityGO/internal/models"
)

// CitationChecker runs real citation queries for the requested platforms.
// Implementations handle their own failures internally: a platform that
// errors is simply absent from the result map. The float return is the API
// spend in USD accrued by the run.
type CitationChecker interface {
	CheckAll(ctx context.Context, pageURL string, platforms []models.Platform, keywords []string) (map[models.Platform]*models.CitationCheckResult, float64)
}

// Options narrows an analysis to a platform subset or overrides the
// aggregation weights. Zero value means all platforms, default weights.
type Options struct {
	Platforms []models.Platform
	Weights   map[models.Platform]float64
}

// Engine is the analysis pipeline: extract features once, fan the snapshot
// out to every platform analyzer, overlay real citation checks, aggregate.
type Engine struct {
	analyzers []Analyzer
	checker   CitationChecker
	logger    *slog.Logger
}

// New builds an Engine with the default analyzer set. checker may be nil,
// in which case every platform scores heuristically.
func New(logger *slog.Logger, checker CitationChecker) *Engine {
	return &Engine{
		analyzers: DefaultAnalyzers(),
		checker:   checker,
		logger:    logger,
	}
}

// Analyze produces a report for one input. It never returns an error:
// malformed optional fields fall back to neutral defaults and citation
// failures degrade to heuristic scores.
func (e *Engine) Analyze(ctx context.Context, input *models.ContentInput, opts Options) *models.VisibilityReport {
	start := time.Now()

	features := Extract(input)
	selected := e.selectAnalyzers(opts.Platforms)

	selectedPlatforms := make([]models.Platform, len(selected))
	for i, a := range selected {
		selectedPlatforms[i] = a.Platform()
	}

	results := make([]models.PlatformScore, len(selected))
	var citations map[models.Platform]*models.CitationCheckResult
	var spend float64

	g, gctx := errgroup.WithContext(ctx)
	for i, a := range selected {
		i, a := i, a
		g.Go(func() error {
			results[i] = a.Analyze(input, features)
			return nil
		})
	}
	if e.checker != nil {
		g.Go(func() error {
			citations, spend = e.checker.CheckAll(gctx, input.URL, selectedPlatforms, keywordsFrom(features))
			return nil
		})
	}
	g.Wait()

	scores := make(map[models.Platform]int, len(results))
	recs := make([][]models.Recommendation, 0, len(results))
	for i := range results {
		ps := &results[i]
		if cit, ok := citations[ps.Platform]; ok && cit != nil {
			e.logger.Info("citation check replaced heuristic score",
				"platform", ps.Platform, "heuristic", ps.Score, "real", cit.Score)
			ps.Score = cit.Score
			ps.RealCheck = true
			ps.Citation = cit
		}
		scores[ps.Platform] = ps.Score
		recs = append(recs, ps.Recommendations)
	}

	var subset []models.Platform
	if len(opts.Platforms) > 0 {
		subset = selectedPlatforms
	}

	return &models.VisibilityReport{
		URL:             input.URL,
		CombinedScore:   Combine(scores, opts.Weights, subset),
		Platforms:       results,
		Features:        features,
		Recommendations: BuildRecommendations(recs),
		SpendUSD:        spend,
		AnalyzedAt:      start.UTC(),
		DurationMs:      time.Since(start).Milliseconds(),
	}
}

// selectAnalyzers filters the registry to the requested platforms. Unknown
// platform names are ignored, not errors.
func (e *Engine) selectAnalyzers(platforms []models.Platform) []Analyzer {
	if len(platforms) == 0 {
		return e.analyzers
	}
	requested := make(map[models.Platform]bool, len(platforms))
	for _, p := range platforms {
		requested[p] = true
	}
	var out []Analyzer
	for _, a := range e.analyzers {
		if requested[a.Platform()] {
			out = append(out, a)
		}
	}
	return out
}

// keywordsFrom picks the most-mentioned entities as citation query seeds.
func keywordsFrom(f *models.StructuralFeatures) []string {
	var out []string
	for _, e := range f.Entities {
		out = append(out, e.Name)
		if len(out) == 3 {
			break
		}
	}
	return out
}
