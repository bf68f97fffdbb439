package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiVisibilityGO/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleInput() *models.ContentInput {
	published := time.Now().Add(-10 * 24 * time.Hour)
	return &models.ContentInput{
		URL:   "https://example.com/guide",
		Title: "Load Balancing Guide",
		RawText: "A load balancer is a device that distributes traffic across servers evenly and reliably.\n\n" +
			"According to research from Acme Corp, traffic grew 45% last year across all regions worldwide.\n\n" +
			"First configure the health checks. Then add the backend pool. Finally enable the listener.",
		PublishedAt: &published,
	}
}

type fakeChecker struct {
	results      map[models.Platform]*models.CitationCheckResult
	spend        float64
	gotPlatforms []models.Platform
}

func (f *fakeChecker) CheckAll(ctx context.Context, pageURL string, platforms []models.Platform, keywords []string) (map[models.Platform]*models.CitationCheckResult, float64) {
	f.gotPlatforms = platforms
	return f.results, f.spend
}

func TestAnalyzeDeterminism(t *testing.T) {
	e := New(testLogger(), nil)
	input := sampleInput()

	a := e.Analyze(context.Background(), input, Options{})
	b := e.Analyze(context.Background(), input, Options{})

	a.AnalyzedAt, b.AnalyzedAt = time.Time{}, time.Time{}
	a.DurationMs, b.DurationMs = 0, 0
	assert.Equal(t, a, b, "identical input must produce identical reports")
}

func TestAnalyzeScoreBounds(t *testing.T) {
	e := New(testLogger(), nil)
	inputs := []*models.ContentInput{
		sampleInput(),
		{URL: "", Title: "", RawText: ""},
		{URL: "https://x.io", Title: "t", RawText: "word"},
	}

	for _, input := range inputs {
		report := e.Analyze(context.Background(), input, Options{})
		assert.GreaterOrEqual(t, report.CombinedScore, 0)
		assert.LessOrEqual(t, report.CombinedScore, 100)
		require.Len(t, report.Platforms, 5)
		for _, ps := range report.Platforms {
			assert.GreaterOrEqual(t, ps.Score, 0, "platform %s", ps.Platform)
			assert.LessOrEqual(t, ps.Score, 100, "platform %s", ps.Platform)
			for _, f := range ps.Factors {
				assert.GreaterOrEqual(t, f.Score, 0, "factor %s", f.Name)
				assert.LessOrEqual(t, f.Score, 100, "factor %s", f.Name)
			}
		}
	}
}

func TestAnalyzeFreshnessNeutralWithoutDates(t *testing.T) {
	e := New(testLogger(), nil)
	input := sampleInput()
	input.PublishedAt = nil

	report := e.Analyze(context.Background(), input, Options{})
	for _, ps := range report.Platforms {
		for _, f := range ps.Factors {
			if f.Name == "freshness" {
				assert.Equal(t, 50, f.Score, "platform %s", ps.Platform)
			}
		}
	}
}

func TestAnalyzePlatformSubset(t *testing.T) {
	e := New(testLogger(), nil)

	report := e.Analyze(context.Background(), sampleInput(), Options{
		Platforms: []models.Platform{models.PlatformChatGPT, "made_up_platform"},
	})

	require.Len(t, report.Platforms, 1, "unknown platforms must be ignored")
	assert.Equal(t, models.PlatformChatGPT, report.Platforms[0].Platform)
	assert.Equal(t, report.Platforms[0].Score, report.CombinedScore,
		"single-platform subset combines to that platform's score")
}

func TestAnalyzeSubsetNarrowsCitationChecks(t *testing.T) {
	checker := &fakeChecker{}
	e := New(testLogger(), checker)

	e.Analyze(context.Background(), sampleInput(), Options{
		Platforms: []models.Platform{models.PlatformGoogleAIO},
	})

	assert.Equal(t, []models.Platform{models.PlatformGoogleAIO}, checker.gotPlatforms,
		"checker must only be asked about the selected platforms")

	e.Analyze(context.Background(), sampleInput(), Options{})
	assert.Equal(t, models.AllPlatforms(), checker.gotPlatforms)
}

func TestAnalyzeCitationOverride(t *testing.T) {
	cit := &models.CitationCheckResult{
		Platform:      models.PlatformChatGPT,
		IsCited:       true,
		Confidence:    "high",
		QueriesTested: 5,
		QueriesCited:  4,
		Score:         80,
	}
	e := New(testLogger(), &fakeChecker{
		results: map[models.Platform]*models.CitationCheckResult{models.PlatformChatGPT: cit},
		spend:   0.05,
	})

	report := e.Analyze(context.Background(), sampleInput(), Options{})
	assert.Equal(t, 0.05, report.SpendUSD)

	for _, ps := range report.Platforms {
		if ps.Platform == models.PlatformChatGPT {
			assert.True(t, ps.RealCheck)
			assert.Equal(t, 80, ps.Score, "real check replaces the heuristic score")
			require.NotNil(t, ps.Citation)
			assert.Equal(t, cit, ps.Citation)
		} else {
			assert.False(t, ps.RealCheck, "platform %s", ps.Platform)
			assert.Nil(t, ps.Citation, "platform %s", ps.Platform)
		}
	}
}
