package engine

import (
	"math"
	"sort"

	"aiVisibilityGO/internal/models"
)

// DefaultWeights returns the default contribution of each platform to the
// combined score. Bing Copilot is tracked but weighted zero until a
// reliable free signal for it exists.
func DefaultWeights() map[models.Platform]float64 {
	return map[models.Platform]float64{
		models.PlatformGoogleAIO:   0.45,
		models.PlatformChatGPT:     0.35,
		models.PlatformPerplexity:  0.20,
		models.PlatformBingCopilot: 0,
	}
}

// Combine produces the combined score from per-platform scores. The subset
// restricts which platforms contribute (nil means every weighted platform);
// weights are renormalized over the subset so a single-platform subset
// returns that platform's score exactly. Missing scores contribute zero and
// a zero total weight combines to zero.
func Combine(scores map[models.Platform]int, weights map[models.Platform]float64, subset []models.Platform) int {
	if weights == nil {
		weights = DefaultWeights()
	}
	if subset == nil {
		// Report order keeps the float summation deterministic.
		for _, p := range models.AllPlatforms() {
			if _, ok := weights[p]; ok {
				subset = append(subset, p)
			}
		}
		var extra []models.Platform
		for p := range weights {
			if !containsPlatform(subset, p) {
				extra = append(extra, p)
			}
		}
		sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
		subset = append(subset, extra...)
	}

	var total float64
	for _, p := range subset {
		total += weights[p]
	}
	if total == 0 {
		return 0
	}

	var sum float64
	for _, p := range subset {
		sum += float64(scores[p]) * (weights[p] / total)
	}
	return clamp(int(math.Round(sum)))
}

func containsPlatform(ps []models.Platform, p models.Platform) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
