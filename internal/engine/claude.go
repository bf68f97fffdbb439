package engine

import (
	"math"

	"aiVisibilityGO/internal/models"
)

// claudeAnalyzer models Claude-style retrieval: it rewards prose that reads
// unambiguously out of context. Sentences opening with unresolved pronouns
// are penalized and transition-word density is rewarded as logical
// structure.
type claudeAnalyzer struct{}

func (a *claudeAnalyzer) Platform() models.Platform { return models.PlatformClaude }

func (a *claudeAnalyzer) Analyze(input *models.ContentInput, f *models.StructuralFeatures) models.PlatformScore {
	factors := []models.ScoreFactor{
		factor("semantic_clarity", semanticClarityScore(f), 0.25,
			"Sentences that resolve without reading their neighbors"),
		factor("context_completeness", contextCompletenessScore(f), 0.20,
			"Entities introduced with defining phrases"),
		factor("logical_structure", logicalStructureScore(f), 0.20,
			"Transition words and ordered sections"),
		factor("quotability", quotabilityScore(f, 25), 0.15,
			"Self-contained passages suited for quoted answers"),
		factor("answer_structure", answerStructureScore(f, f.Structure.HasDirectAnswer), 0.10,
			"Question-and-answer shape of the content"),
		factor("freshness", freshnessScore(f.DaysSinceUpdate), 0.10,
			"Days since the content was published or updated"),
	}

	return models.PlatformScore{
		Platform:        a.Platform(),
		Score:           composeScore(factors),
		Factors:         factors,
		Recommendations: recommendationsForFactors(factors),
	}
}

// semanticClarityScore starts at 100 and deducts per ambiguous sentence
// opener, scaled to document length so long documents are not punished for
// absolute counts.
func semanticClarityScore(f *models.StructuralFeatures) int {
	if f.SentenceCount == 0 {
		return 50
	}
	ratio := float64(f.AmbiguousLeads) / float64(f.SentenceCount)
	return clamp(100 - int(math.Round(ratio*200)))
}

func contextCompletenessScore(f *models.StructuralFeatures) int {
	score := 30
	if f.Structure.HasDefinitions {
		score += 20
	}
	if f.Structure.HasDirectAnswer {
		score += 10
	}
	defined := 0
	for _, e := range f.Entities {
		if e.ContextQuality >= 70 {
			defined++
		}
	}
	bonus := defined * 10
	if bonus > 40 {
		bonus = 40
	}
	return clamp(score + bonus)
}

func logicalStructureScore(f *models.StructuralFeatures) int {
	score := int(math.Round(f.TransitionDensity * 200))
	if score > 60 {
		score = 60
	}
	switch f.Structure.HeadingHierarchy {
	case models.RatingGood:
		score += 20
	case models.RatingFair:
		score += 10
	}
	if f.Structure.HasStepByStep {
		score += 15
	}
	if f.Structure.HasKeyTakeaways {
		score += 5
	}
	return clamp(score)
}
