package engine

import (
	"aiVisibilityGO/internal/models"
)

// chatGPTAnalyzer models ChatGPT/SearchGPT citation behavior: quotability
// and entity density dominate, and paragraphs over 200 words draw an
// explicit recommendation because the model truncates long blocks.
type chatGPTAnalyzer struct{}

const chatGPTMaxParagraphWords = 200

func (a *chatGPTAnalyzer) Platform() models.Platform { return models.PlatformChatGPT }

func (a *chatGPTAnalyzer) Analyze(input *models.ContentInput, f *models.StructuralFeatures) models.PlatformScore {
	factors := []models.ScoreFactor{
		factor("quotability", quotabilityScore(f, 30), 0.25,
			"Sentences the model can lift verbatim into an answer"),
		factor("entity_density", entityDensityScore(len(f.Entities), f.WordCount), 0.20,
			"Named-entity coverage per 1000 words"),
		factor("answer_structure", answerStructureScore(f, f.Structure.HasDirectAnswer), 0.20,
			"Question-and-answer shape of the content"),
		factor("authority", authorityScore(f), 0.15,
			"Attribution, credentials and outbound sourcing"),
		factor("freshness", freshnessScore(f.DaysSinceUpdate), 0.10,
			"Days since the content was published or updated"),
		factor("schema_markup", schemaScore(f.Schema, 25, 25, 25), 0.10,
			"Structured data presence"),
	}

	recs := recommendationsForFactors(factors)
	if f.AvgParagraphWords > chatGPTMaxParagraphWords {
		recs = append(recs, models.Recommendation{
			Priority:    models.PriorityHigh,
			Title:       "Shorten long paragraphs",
			Description: "Average paragraph length exceeds 200 words. ChatGPT rarely quotes from dense blocks; split paragraphs to 50 to 150 words.",
			Impact:      "+10-15 points",
			ActionCode:  "paragraph_length",
		})
	}

	return models.PlatformScore{
		Platform:        a.Platform(),
		Score:           composeScore(factors),
		Factors:         factors,
		Recommendations: recs,
	}
}
