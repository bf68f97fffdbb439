package engine

import (
	"fmt"
	"sort"
	"strings"

	"aiVisibilityGO/internal/models"
)

type recommendationTemplate struct {
	Title       string
	Description string
	Impact      string
	AutoFixable bool
	ActionCode  string
}

// factorTemplates maps factor names to canned recommendation copy. Factor
// names without an entry fall through to a generic template so a new factor
// can never break recommendation generation.
var factorTemplates = map[string]recommendationTemplate{
	"entity_density": {
		Title:       "Balance named-entity coverage",
		Description: "Mention the key people, products and organizations your topic involves, without stuffing. Aim for 5 to 15 distinct entities per 1000 words.",
		Impact:      "+10-15 points",
		ActionCode:  "entity_density",
	},
	"quotability": {
		Title:       "Write more quotable passages",
		Description: "Break content into self-contained sentences of 15 to 30 words that state one fact, definition or statistic each. Add a key-takeaways section.",
		Impact:      "+10-20 points",
		ActionCode:  "quotability",
	},
	"answer_structure": {
		Title:       "Lead with a direct answer",
		Description: "Open with a concise answer paragraph, then support it with FAQ, step-by-step and definition sections under a clear heading hierarchy.",
		Impact:      "+15-25 points",
		ActionCode:  "answer_structure",
	},
	"schema_markup": {
		Title:       "Add structured data markup",
		Description: "Add Article schema plus FAQPage or HowTo JSON-LD where the content fits. Structured data is the strongest machine-readable citation signal.",
		Impact:      "+10-20 points",
		AutoFixable: true,
		ActionCode:  "schema_markup",
	},
	"freshness": {
		Title:       "Update the content and its dates",
		Description: "Refresh the page and expose published/modified timestamps. Content untouched for over a year loses citation likelihood on every platform.",
		Impact:      "+10-15 points",
		ActionCode:  "freshness",
	},
	"eeat_signals": {
		Title:       "Strengthen expertise signals",
		Description: "Attribute claims to named experts, cite external sources, and surface author credentials on the page.",
		Impact:      "+10-15 points",
		ActionCode:  "eeat_signals",
	},
	"authority": {
		Title:       "Strengthen expertise signals",
		Description: "Attribute claims to named experts, cite external sources, and surface author credentials on the page.",
		Impact:      "+10-15 points",
		ActionCode:  "authority",
	},
	"entity_clarity": {
		Title:       "Name your subjects explicitly",
		Description: "Refer to people, products and companies by their full names instead of pronouns or shorthand, especially on first mention in each section.",
		Impact:      "+8-12 points",
		ActionCode:  "entity_clarity",
	},
	"semantic_clarity": {
		Title:       "Resolve ambiguous sentence openers",
		Description: "Sentences starting with It, They or This force a model to resolve the referent. Restate the subject by name at the start of key sentences.",
		Impact:      "+8-12 points",
		ActionCode:  "semantic_clarity",
	},
	"context_completeness": {
		Title:       "Define terms in place",
		Description: "Introduce each entity with a defining phrase so a passage quoted in isolation still makes sense.",
		Impact:      "+8-12 points",
		ActionCode:  "context_completeness",
	},
	"logical_structure": {
		Title:       "Connect ideas with transitions",
		Description: "Use transition phrases and an ordered heading flow so the argument survives being read section by section.",
		Impact:      "+5-10 points",
		ActionCode:  "logical_structure",
	},
}

func priorityFor(score int) models.Priority {
	switch {
	case score < 40:
		return models.PriorityCritical
	case score < 60:
		return models.PriorityHigh
	default:
		return models.PriorityMedium
	}
}

// recommendationsForFactors emits one recommendation per factor scoring
// under 75, in factor order.
func recommendationsForFactors(factors []models.ScoreFactor) []models.Recommendation {
	var out []models.Recommendation
	for _, f := range factors {
		if f.Score >= 75 {
			continue
		}
		tpl, ok := factorTemplates[f.Name]
		if !ok {
			tpl = recommendationTemplate{
				Title:       fmt.Sprintf("Improve %s", strings.ReplaceAll(f.Name, "_", " ")),
				Description: fmt.Sprintf("The %s factor scored %d. Review the content against this signal.", strings.ReplaceAll(f.Name, "_", " "), f.Score),
				Impact:      "+5-10 points",
			}
		}
		out = append(out, models.Recommendation{
			Priority:    priorityFor(f.Score),
			Title:       tpl.Title,
			Description: tpl.Description,
			Impact:      tpl.Impact,
			AutoFixable: tpl.AutoFixable,
			ActionCode:  tpl.ActionCode,
		})
	}
	return out
}

// BuildRecommendations flattens recommendations from every analyzer,
// dedupes by lower-cased title keeping the higher-priority instance, and
// stable-sorts by priority so equal priorities keep their original order.
func BuildRecommendations(perPlatform [][]models.Recommendation) []models.Recommendation {
	var flat []models.Recommendation
	for _, recs := range perPlatform {
		flat = append(flat, recs...)
	}

	byTitle := make(map[string]int)
	var deduped []models.Recommendation
	for _, r := range flat {
		key := strings.ToLower(r.Title)
		if idx, ok := byTitle[key]; ok {
			if r.Priority.Rank() < deduped[idx].Priority.Rank() {
				deduped[idx] = r
			}
			continue
		}
		byTitle[key] = len(deduped)
		deduped = append(deduped, r)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Priority.Rank() < deduped[j].Priority.Rank()
	})
	return deduped
}
