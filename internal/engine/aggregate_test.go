package engine

import (
	"testing"

	"aiVisibilityGO/internal/models"
)

func TestCombineDefaultWeights(t *testing.T) {
	scores := map[models.Platform]int{
		models.PlatformGoogleAIO:  80,
		models.PlatformChatGPT:    60,
		models.PlatformPerplexity: 40,
	}
	// 80*0.45 + 60*0.35 + 40*0.20 = 65
	if got := Combine(scores, nil, nil); got != 65 {
		t.Errorf("expected 65, got %d", got)
	}
}

func TestCombineSubsetRenormalizes(t *testing.T) {
	scores := map[models.Platform]int{"a": 80, "b": 60}
	weights := map[models.Platform]float64{"a": 1, "b": 1}

	if got := Combine(scores, weights, []models.Platform{"a"}); got != 80 {
		t.Errorf("single-platform subset should return that score exactly, got %d", got)
	}
	if got := Combine(scores, weights, []models.Platform{"a", "b"}); got != 70 {
		t.Errorf("expected 70 for even split, got %d", got)
	}
}

func TestCombineZeroWeight(t *testing.T) {
	scores := map[models.Platform]int{"a": 90}
	weights := map[models.Platform]float64{"a": 0}
	if got := Combine(scores, weights, []models.Platform{"a"}); got != 0 {
		t.Errorf("expected 0 for zero total weight, got %d", got)
	}
}

func TestCombineMissingPlatformScore(t *testing.T) {
	// Perplexity has weight but no score: contributes zero, no panic.
	scores := map[models.Platform]int{models.PlatformGoogleAIO: 100}
	got := Combine(scores, nil, nil)
	if got != 45 {
		t.Errorf("expected 45 with only google scored, got %d", got)
	}
}

func TestCombineBingExcludedByDefault(t *testing.T) {
	scores := map[models.Platform]int{
		models.PlatformGoogleAIO:   50,
		models.PlatformChatGPT:     50,
		models.PlatformPerplexity:  50,
		models.PlatformBingCopilot: 100,
	}
	if got := Combine(scores, nil, nil); got != 50 {
		t.Errorf("bing should not move the default combined score, got %d", got)
	}
}
