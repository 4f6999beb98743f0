package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyModelResponse = errors.New("classifier: model returned no JSON object")
	ErrMissingSpecialty   = errors.New("classifier: model response has no specialty")
	ErrModelNotConfigured = errors.New("classifier: model client is not configured")
)

// ModelClient is a single-turn text completion backend.
type ModelClient interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// ModelClassifier asks a language model for a specialty recommendation.
type ModelClassifier struct {
	client ModelClient
}

func NewModelClassifier(client ModelClient) *ModelClassifier {
	return &ModelClassifier{client: client}
}

type modelAnswer struct {
	Specialty  string `json:"specialty"`
	Confidence string `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

func (c *ModelClassifier) Classify(ctx context.Context, symptoms string) (*entity.TriageResult, error) {
	if c == nil || c.client == nil {
		return nil, ErrModelNotConfigured
	}

	raw, err := c.client.Complete(ctx, systemPrompt(), "Symptoms: "+strings.TrimSpace(symptoms))
	if err != nil {
		return nil, err
	}

	answer, err := parseModelAnswer(raw)
	if err != nil {
		return nil, err
	}

	confidence, ok := entity.ParseConfidence(answer.Confidence)
	if !ok {
		confidence = entity.ConfidenceMedium
	}

	return &entity.TriageResult{
		Specialty:  canonicalSpecialty(answer.Specialty),
		Confidence: confidence,
		Reasoning:  strings.TrimSpace(answer.Reasoning),
		Score:      decimal.Zero,
		Source:     entity.TriageSourceModel,
	}, nil
}

func systemPrompt() string {
	return "You are a triage assistant for a medical clinic. " +
		"Given a patient's symptoms, recommend exactly one specialty from this list: " +
		strings.Join(KnownSpecialties(), ", ") + ". " +
		"Answer with a single JSON object and nothing else: " +
		`{"specialty": "<name from the list>", "confidence": "Low|Medium|High", "reasoning": "<one sentence>"}`
}

// parseModelAnswer tolerates prose or code fences around the JSON object.
func parseModelAnswer(raw string) (*modelAnswer, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, ErrEmptyModelResponse
	}

	var answer modelAnswer
	if err := json.Unmarshal([]byte(raw[start:end+1]), &answer); err != nil {
		return nil, fmt.Errorf("classifier: decode model response: %w", err)
	}
	if strings.TrimSpace(answer.Specialty) == "" {
		return nil, ErrMissingSpecialty
	}
	return &answer, nil
}

// canonicalSpecialty fixes the casing of a known name and passes anything
// else through for the resolver to handle.
func canonicalSpecialty(name string) string {
	name = strings.TrimSpace(name)
	for _, known := range KnownSpecialties() {
		if strings.EqualFold(known, name) {
			return known
		}
	}
	return name
}
