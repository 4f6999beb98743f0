package classifier

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	scoreBase          = decimal.RequireFromString("0.6")
	scoreRepeated      = decimal.RequireFromString("0.1")
	scoreSpecific      = decimal.RequireFromString("0.2")
	scoreRelated       = decimal.RequireFromString("0.1")
	scoreCap           = decimal.NewFromInt(1)
	highThreshold      = decimal.RequireFromString("0.8")
	mediumThreshold    = decimal.RequireFromString("0.5")
	specificKeywordLen = 10
)

// KeywordClassifier scores every matching keyword rule and keeps the best.
type KeywordClassifier struct {
	log *logrus.Logger
}

func NewKeywordClassifier(log *logrus.Logger) *KeywordClassifier {
	return &KeywordClassifier{log: log}
}

// Classify never returns an error. An internal fault degrades to General
// Medicine with low confidence.
func (c *KeywordClassifier) Classify(ctx context.Context, symptoms string) (result *entity.TriageResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("Keyword classifier panicked, using default specialty: %v", r)
			result = &entity.TriageResult{
				Specialty:  entity.SpecialtyGeneralMedicine,
				Confidence: entity.ConfidenceLow,
				Reasoning:  "Automatic triage failed; a general practitioner will assess the symptoms",
				Score:      decimal.Zero,
				Source:     entity.TriageSourceKeyword,
			}
			err = nil
		}
	}()

	text := strings.ToLower(symptoms)

	var best *keywordRule
	bestScore := decimal.Zero
	for i := range keywordRules {
		rule := &keywordRules[i]
		if !strings.Contains(text, rule.keyword) {
			continue
		}
		score := scoreRule(text, rule)
		// Strictly greater keeps the first rule on ties.
		if best == nil || score.GreaterThan(bestScore) {
			best = rule
			bestScore = score
		}
	}

	if best != nil {
		return &entity.TriageResult{
			Specialty:  best.specialty,
			Confidence: confidenceFor(bestScore),
			Reasoning:  best.reasoning,
			Score:      bestScore,
			Source:     entity.TriageSourceKeyword,
		}, nil
	}

	return generalAnalysis(text), nil
}

func scoreRule(text string, rule *keywordRule) decimal.Decimal {
	score := scoreBase
	if strings.Count(text, rule.keyword) > 1 {
		score = score.Add(scoreRepeated)
	}
	if utf8.RuneCountInString(rule.keyword) > specificKeywordLen {
		score = score.Add(scoreSpecific)
	}
	for _, word := range rule.related {
		if strings.Contains(text, word) {
			score = score.Add(scoreRelated)
			break
		}
	}
	if score.GreaterThan(scoreCap) {
		score = scoreCap
	}
	return score
}

func confidenceFor(score decimal.Decimal) entity.Confidence {
	switch {
	case score.GreaterThan(highThreshold):
		return entity.ConfidenceHigh
	case score.GreaterThan(mediumThreshold):
		return entity.ConfidenceMedium
	default:
		return entity.ConfidenceLow
	}
}

func generalAnalysis(text string) *entity.TriageResult {
	switch {
	case containsAny(text, emergencyTerms):
		return &entity.TriageResult{
			Specialty:  EmergencySpecialty,
			Confidence: entity.ConfidenceHigh,
			Reasoning:  "Symptoms suggest an emergency; seek immediate care",
			Score:      decimal.Zero,
			Source:     entity.TriageSourceKeyword,
		}
	case containsAny(text, pediatricTerms):
		return &entity.TriageResult{
			Specialty:  entity.SpecialtyPediatrics,
			Confidence: entity.ConfidenceHigh,
			Reasoning:  "Symptoms concern a child and should be seen by pediatrics",
			Score:      decimal.Zero,
			Source:     entity.TriageSourceKeyword,
		}
	case containsAny(text, femaleHealthTerms):
		return &entity.TriageResult{
			Specialty:  entity.SpecialtyGynecology,
			Confidence: entity.ConfidenceHigh,
			Reasoning:  "Symptoms relate to women's health and should be seen by gynecology",
			Score:      decimal.Zero,
			Source:     entity.TriageSourceKeyword,
		}
	default:
		return &entity.TriageResult{
			Specialty:  entity.SpecialtyGeneralMedicine,
			Confidence: entity.ConfidenceMedium,
			Reasoning:  "No specific pattern recognised; a general practitioner will assess the symptoms",
			Score:      decimal.Zero,
			Source:     entity.TriageSourceKeyword,
		}
	}
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
