package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type geminiGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiModel completes prompts with a Gemini model.
type GeminiModel struct {
	client    *genai.Client
	modelID   string
	generator func(system string) geminiGenerator
}

func NewGeminiModel(ctx context.Context, apiKey, modelID string) (*GeminiModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("classifier: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("classifier: failed to create gemini client: %w", err)
	}

	m := &GeminiModel{client: client, modelID: modelID}
	m.generator = func(system string) geminiGenerator {
		model := client.GenerativeModel(modelID)
		model.SetTemperature(0)
		model.SetMaxOutputTokens(300)
		model.ResponseMIMEType = "application/json"
		model.SystemInstruction = genai.NewUserContent(genai.Text(system))
		return model
	}
	return m, nil
}

func (m *GeminiModel) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := m.generator(system).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("classifier: gemini completion failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("classifier: gemini returned no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("classifier: gemini returned empty content")
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return strings.TrimSpace(text.String()), nil
}

func (m *GeminiModel) Close() error {
	if m.client == nil {
		return nil
	}
	return m.client.Close()
}
