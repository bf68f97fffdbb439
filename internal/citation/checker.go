package citation

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"aiVisibilityGO/internal/models"
)

// Checker runs real citation queries across every configured source.
// Platforms are checked concurrently; queries within one platform run
// sequentially behind a rate limiter so each source stays inside its API's
// request pacing.
type Checker struct {
	sources  []Source
	ledger   *SpendLedger
	interval time.Duration
	logger   *slog.Logger
}

func NewChecker(logger *slog.Logger, ledger *SpendLedger, queryInterval time.Duration, sources ...Source) *Checker {
	if queryInterval <= 0 {
		queryInterval = time.Second
	}
	return &Checker{
		sources:  sources,
		ledger:   ledger,
		interval: queryInterval,
		logger:   logger,
	}
}

// CheckAll queries the configured sources for the requested platforms and
// returns per-platform results plus the USD spend of the run. An empty
// platform list means every source. A source that errors is logged and
// omitted from the map; its platform falls back to the heuristic score.
// One platform's failure never aborts the others.
func (c *Checker) CheckAll(ctx context.Context, pageURL string, platforms []models.Platform, keywords []string) (map[models.Platform]*models.CitationCheckResult, float64) {
	domain := NormalizeDomain(pageURL)
	queries := buildQueries(domain, keywords)

	requested := make(map[models.Platform]bool, len(platforms))
	for _, p := range platforms {
		requested[p] = true
	}

	results := make(map[models.Platform]*models.CitationCheckResult)
	var mu sync.Mutex
	var runSpend float64

	g := new(errgroup.Group)
	for _, src := range c.sources {
		if !src.Configured() {
			continue
		}
		if len(requested) > 0 && !requested[src.Platform()] {
			continue
		}
		src := src
		g.Go(func() error {
			res, spend, err := c.checkSource(ctx, src, domain, queries)
			mu.Lock()
			runSpend += spend
			if err == nil {
				results[src.Platform()] = res
			}
			mu.Unlock()
			if err != nil {
				c.logger.Warn("citation check failed, falling back to heuristic",
					"platform", src.Platform(), "error", err)
			}
			return nil
		})
	}
	g.Wait()

	if c.ledger != nil && runSpend > 0 {
		c.ledger.Add(runSpend)
	}
	return results, runSpend
}

// checkSource runs the query set against one source. The first query error
// aborts the platform; spend accrued before the failure is still reported.
func (c *Checker) checkSource(ctx context.Context, src Source, domain string, queries []string) (*models.CitationCheckResult, float64, error) {
	limiter := rate.NewLimiter(rate.Every(c.interval), 1)

	cited := 0
	var citations []string
	var spend float64

	for _, q := range queries {
		if err := limiter.Wait(ctx); err != nil {
			return nil, spend, err
		}
		res, err := src.Query(ctx, domain, q)
		spend += src.CostPerQuery()
		if err != nil {
			return nil, spend, err
		}
		c.logger.Debug("citation query completed",
			"platform", src.Platform(), "query", q, "cited", res.Cited)
		if res.Cited {
			cited++
			citations = append(citations, res.Citations...)
		}
	}

	return &models.CitationCheckResult{
		Platform:      src.Platform(),
		IsCited:       cited > 0,
		Citations:     citations,
		Confidence:    confidence(cited),
		QueriesTested: len(queries),
		QueriesCited:  cited,
		Score:         int(math.Round(100 * float64(cited) / float64(len(queries)))),
	}, spend, nil
}

func confidence(citedQueries int) string {
	switch {
	case citedQueries > 2:
		return "high"
	case citedQueries > 0:
		return "medium"
	default:
		return "low"
	}
}
