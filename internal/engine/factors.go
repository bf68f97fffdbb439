package engine

import (
	"math"

	"aiVisibilityGO/internal/models"
)

// Shared factor primitives. Every platform analyzer builds its factor set
// from these; the per-platform files only choose weights, thresholds and
// wording.

// entityDensityScore scores entities per 1000 words on a band-shaped curve:
// the sweet spot is 5 to 15, and both sparse and dense text degrade
// piecewise-linearly outside it.
func entityDensityScore(entityCount, wordCount int) int {
	if wordCount == 0 {
		return 0
	}
	d := float64(entityCount) / float64(wordCount) * 1000

	var score float64
	switch {
	case d < 3:
		score = d * 23.3
	case d < 5:
		score = 70 + (d-3)*15
	case d <= 15:
		score = 100
	case d <= 20:
		score = 100 - (d-15)*10
	default:
		score = 50 - (d-20)*5
	}
	return clamp(int(math.Round(score)))
}

// quotabilityScore starts from a floor of 30 so that content with no
// quotable sentences still reports a nonzero signal. midBandBonus is the
// analyzer-tuned bonus for paragraphs just outside the sweet spot.
func quotabilityScore(f *models.StructuralFeatures, midBandBonus int) int {
	score := 30
	avg := f.AvgParagraphWords
	switch {
	case avg >= 50 && avg <= 150:
		score += 40
	case (avg >= 30 && avg < 50) || (avg > 150 && avg <= 200):
		score += midBandBonus
	}
	if f.Structure.HasKeyTakeaways {
		score += 20
	}
	bonus := len(f.QuotableSnippets) * 8
	if bonus > 40 {
		bonus = 40
	}
	score += bonus
	return clamp(score)
}

// answerStructureScore takes the direct-answer flag as an argument because
// platforms disagree on what counts as a direct answer.
func answerStructureScore(f *models.StructuralFeatures, directAnswer bool) int {
	score := 0
	if directAnswer {
		score += 25
	}
	s := f.Structure
	if s.HasKeyTakeaways {
		score += 15
	}
	if s.HasFAQSection {
		score += 15
	}
	if s.HasStepByStep {
		score += 10
	}
	if s.HasStatistics {
		score += 10
	}
	if s.HasDefinitions {
		score += 10
	}
	switch s.HeadingHierarchy {
	case models.RatingGood:
		score += 10
	case models.RatingFair:
		score += 5
	}
	if s.ParagraphStructure == models.RatingGood {
		score += 5
	}
	return clamp(score)
}

func schemaScore(sp models.SchemaPresence, articlePts, faqPts, howToPts int) int {
	score := 0
	if sp.Article {
		score += articlePts
	}
	if sp.FAQPage {
		score += faqPts
	}
	if sp.HowTo {
		score += howToPts
	}
	if sp.Other {
		score += 15
	}
	return clamp(score)
}

// freshnessScore never penalizes an unknown date below neutral.
func freshnessScore(daysSinceUpdate *int) int {
	if daysSinceUpdate == nil {
		return 50
	}
	d := *daysSinceUpdate
	switch {
	case d <= 30:
		return 100
	case d <= 90:
		return 90
	case d <= 180:
		return 75
	case d <= 365:
		return 60
	case d <= 730:
		return 40
	default:
		return 25
	}
}

func authorityScore(f *models.StructuralFeatures) int {
	score := 0
	if f.Structure.HasExpertAttribution {
		score += 35
	}
	if f.CredentialKeywords {
		score += 25
	}
	if f.ExternalLinks > 0 {
		score += 20
	}
	linkBonus := f.ExternalLinks * 4
	if linkBonus > 20 {
		linkBonus = 20
	}
	score += linkBonus
	return clamp(score)
}

// composeScore is the weighted mean over a factor set. Weights need not sum
// to 1; dividing by the total weight keeps the result in range no matter how
// many factors an analyzer carries. Zero total weight composes to 0.
func composeScore(factors []models.ScoreFactor) int {
	var sum, total float64
	for _, f := range factors {
		sum += float64(f.Score) * f.Weight
		total += f.Weight
	}
	if total == 0 {
		return 0
	}
	return clamp(int(math.Round(sum / total)))
}
