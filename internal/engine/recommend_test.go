package engine

import (
	"strings"
	"testing"

	"aiVisibilityGO/internal/models"
)

func TestPriorityThresholds(t *testing.T) {
	tests := []struct {
		score int
		want  models.Priority
	}{
		{0, models.PriorityCritical},
		{39, models.PriorityCritical},
		{40, models.PriorityHigh},
		{59, models.PriorityHigh},
		{60, models.PriorityMedium},
		{74, models.PriorityMedium},
	}
	for _, tt := range tests {
		if got := priorityFor(tt.score); got != tt.want {
			t.Errorf("priorityFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestRecommendationsSkipHealthyFactors(t *testing.T) {
	recs := recommendationsForFactors([]models.ScoreFactor{
		{Name: "freshness", Score: 75, Weight: 0.1},
		{Name: "quotability", Score: 90, Weight: 0.2},
	})
	if len(recs) != 0 {
		t.Errorf("expected no recommendations for factors at or above 75, got %d", len(recs))
	}
}

func TestRecommendationsUnknownFactorFallback(t *testing.T) {
	recs := recommendationsForFactors([]models.ScoreFactor{
		{Name: "brand_new_factor", Score: 20, Weight: 0.1},
	})
	if len(recs) != 1 {
		t.Fatalf("expected one recommendation, got %d", len(recs))
	}
	if !strings.Contains(recs[0].Title, "brand new factor") {
		t.Errorf("expected generic fallback title, got %q", recs[0].Title)
	}
	if recs[0].Priority != models.PriorityCritical {
		t.Errorf("expected critical priority at score 20, got %s", recs[0].Priority)
	}
}

func TestBuildRecommendationsDedup(t *testing.T) {
	perPlatform := [][]models.Recommendation{
		{{Priority: models.PriorityMedium, Title: "Add FAQ Schema"}},
		{{Priority: models.PriorityCritical, Title: "add faq schema"}},
	}
	out := BuildRecommendations(perPlatform)
	if len(out) != 1 {
		t.Fatalf("expected case-insensitive dedup to one recommendation, got %d", len(out))
	}
	if out[0].Priority != models.PriorityCritical {
		t.Errorf("expected the higher-priority instance kept, got %s", out[0].Priority)
	}
}

func TestBuildRecommendationsStableSort(t *testing.T) {
	perPlatform := [][]models.Recommendation{
		{
			{Priority: models.PriorityMedium, Title: "m1"},
			{Priority: models.PriorityCritical, Title: "c1"},
			{Priority: models.PriorityMedium, Title: "m2"},
		},
		{
			{Priority: models.PriorityHigh, Title: "h1"},
			{Priority: models.PriorityMedium, Title: "m3"},
		},
	}
	out := BuildRecommendations(perPlatform)

	wantTitles := []string{"c1", "h1", "m1", "m2", "m3"}
	if len(out) != len(wantTitles) {
		t.Fatalf("expected %d recommendations, got %d", len(wantTitles), len(out))
	}
	for i, want := range wantTitles {
		if out[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, out[i].Title)
		}
	}
}
