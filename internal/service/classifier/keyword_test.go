package classifier

import (
	"context"
	"io"
	"testing"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestKeywordClassifier_Classify(t *testing.T) {
	c := NewKeywordClassifier(newTestLogger())

	tests := []struct {
		name       string
		symptoms   string
		specialty  string
		confidence entity.Confidence
		score      string
	}{
		{
			name:       "chest pain with shortness of breath",
			symptoms:   "dor no peito e falta de ar",
			specialty:  entity.SpecialtyCardiology,
			confidence: entity.ConfidenceHigh,
			score:      "0.9",
		},
		{
			name:       "short keyword only",
			symptoms:   "estou com febre",
			specialty:  entity.SpecialtyGeneralMedicine,
			confidence: entity.ConfidenceMedium,
			score:      "0.6",
		},
		{
			name:       "specific keyword without related words stays medium",
			symptoms:   "tenho dor de cabeça desde ontem",
			specialty:  entity.SpecialtyNeurology,
			confidence: entity.ConfidenceMedium,
			score:      "0.8",
		},
		{
			name:       "repeated keyword",
			symptoms:   "Cough all night, cough in the morning",
			specialty:  entity.SpecialtyPulmonology,
			confidence: entity.ConfidenceMedium,
			score:      "0.7",
		},
		{
			name:       "case insensitive match",
			symptoms:   "DOR DE GARGANTA e rouquidão",
			specialty:  entity.SpecialtyENT,
			confidence: entity.ConfidenceHigh,
			score:      "0.9",
		},
		{
			name:       "score is capped",
			symptoms:   "dor nas costas, dor nas costas, lombar",
			specialty:  entity.SpecialtyOrthopedics,
			confidence: entity.ConfidenceHigh,
			score:      "1",
		},
		{
			name:       "higher score beats table order",
			symptoms:   "tosse e dor de estômago com náusea",
			specialty:  entity.SpecialtyGastro,
			confidence: entity.ConfidenceHigh,
			score:      "0.9",
		},
		{
			name:       "tie keeps the earlier rule",
			symptoms:   "febre e tosse",
			specialty:  entity.SpecialtyGeneralMedicine,
			confidence: entity.ConfidenceMedium,
			score:      "0.6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := c.Classify(context.Background(), tt.symptoms)
			require.NoError(t, err)
			assert.Equal(t, tt.specialty, result.Specialty)
			assert.Equal(t, tt.confidence, result.Confidence)
			assert.True(t, decimal.RequireFromString(tt.score).Equal(result.Score), "score %s", result.Score)
			assert.Equal(t, entity.TriageSourceKeyword, result.Source)
			assert.NotEmpty(t, result.Reasoning)
		})
	}
}

func TestKeywordClassifier_GeneralAnalysis(t *testing.T) {
	c := NewKeywordClassifier(newTestLogger())

	tests := []struct {
		name       string
		symptoms   string
		specialty  string
		confidence entity.Confidence
	}{
		{"emergency term", "sangramento que não para", EmergencySpecialty, entity.ConfidenceHigh},
		{"emergency beats pediatric", "my baby had a seizure", EmergencySpecialty, entity.ConfidenceHigh},
		{"pediatric term", "minha filha está muito irritada", entity.SpecialtyPediatrics, entity.ConfidenceHigh},
		{"female health term", "atraso na menstruação", entity.SpecialtyGynecology, entity.ConfidenceHigh},
		{"nothing recognised", "sinto-me estranho", entity.SpecialtyGeneralMedicine, entity.ConfidenceMedium},
		{"empty input", "", entity.SpecialtyGeneralMedicine, entity.ConfidenceMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := c.Classify(context.Background(), tt.symptoms)
			require.NoError(t, err)
			assert.Equal(t, tt.specialty, result.Specialty)
			assert.Equal(t, tt.confidence, result.Confidence)
		})
	}
}

func TestKeywordClassifier_SingleKeywordNeverLow(t *testing.T) {
	c := NewKeywordClassifier(newTestLogger())

	for _, rule := range keywordRules {
		t.Run(rule.keyword, func(t *testing.T) {
			first, err := c.Classify(context.Background(), "patient reports "+rule.keyword)
			require.NoError(t, err)
			second, err := c.Classify(context.Background(), "patient reports "+rule.keyword)
			require.NoError(t, err)

			assert.NotEqual(t, entity.ConfidenceLow, first.Confidence)
			assert.Equal(t, first, second)
		})
	}
}

func TestConfidenceFor(t *testing.T) {
	assert.Equal(t, entity.ConfidenceHigh, confidenceFor(decimal.RequireFromString("0.81")))
	assert.Equal(t, entity.ConfidenceMedium, confidenceFor(decimal.RequireFromString("0.8")))
	assert.Equal(t, entity.ConfidenceMedium, confidenceFor(decimal.RequireFromString("0.51")))
	assert.Equal(t, entity.ConfidenceLow, confidenceFor(decimal.RequireFromString("0.5")))
}
