package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModelClient struct {
	text   string
	err    error
	system string
	prompt string
}

func (s *stubModelClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	s.system = system
	s.prompt = prompt
	return s.text, s.err
}

func TestModelClassifier_Classify(t *testing.T) {
	client := &stubModelClient{
		text: "Sure! ```json\n{\"specialty\": \"cardiology\", \"confidence\": \"high\", \"reasoning\": \"Chest pain.\"}\n```",
	}
	c := NewModelClassifier(client)

	result, err := c.Classify(context.Background(), "  dor no peito ")
	require.NoError(t, err)
	assert.Equal(t, entity.SpecialtyCardiology, result.Specialty)
	assert.Equal(t, entity.ConfidenceHigh, result.Confidence)
	assert.Equal(t, "Chest pain.", result.Reasoning)
	assert.Equal(t, entity.TriageSourceModel, result.Source)
	assert.Equal(t, "Symptoms: dor no peito", client.prompt)
	assert.Contains(t, client.system, entity.SpecialtyENT)
}

func TestModelClassifier_UnknownConfidenceIsMedium(t *testing.T) {
	c := NewModelClassifier(&stubModelClient{text: `{"specialty":"Tropical Medicine","confidence":"sure"}`})

	result, err := c.Classify(context.Background(), "fever after travel")
	require.NoError(t, err)
	assert.Equal(t, "Tropical Medicine", result.Specialty)
	assert.Equal(t, entity.ConfidenceMedium, result.Confidence)
}

func TestModelClassifier_Errors(t *testing.T) {
	boom := errors.New("throttled")

	tests := []struct {
		name    string
		client  ModelClient
		wantErr error
	}{
		{"client error", &stubModelClient{err: boom}, boom},
		{"no json", &stubModelClient{text: "Cardiology"}, ErrEmptyModelResponse},
		{"missing specialty", &stubModelClient{text: `{"confidence":"High"}`}, ErrMissingSpecialty},
		{"no client", nil, ErrModelNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModelClassifier(tt.client).Classify(context.Background(), "cough")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestModelClassifier_MalformedJSON(t *testing.T) {
	_, err := NewModelClassifier(&stubModelClient{text: `{"specialty": }`}).Classify(context.Background(), "cough")
	assert.Error(t, err)
}

type stubConverseAPI struct {
	out   *bedrockruntime.ConverseOutput
	err   error
	input *bedrockruntime.ConverseInput
}

func (s *stubConverseAPI) Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	s.input = params
	return s.out, s.err
}

func TestBedrockModel_Complete(t *testing.T) {
	api := &stubConverseAPI{
		out: &bedrockruntime.ConverseOutput{
			Output: &brtypes.ConverseOutputMemberMessage{
				Value: brtypes.Message{
					Role: brtypes.ConversationRoleAssistant,
					Content: []brtypes.ContentBlock{
						&brtypes.ContentBlockMemberText{Value: `{"specialty":"Neurology",`},
						&brtypes.ContentBlockMemberText{Value: `"confidence":"High"}`},
					},
				},
			},
		},
	}
	model, err := NewBedrockModel(api, "anthropic.test")
	require.NoError(t, err)

	text, err := model.Complete(context.Background(), "system", "Symptoms: headache")
	require.NoError(t, err)
	assert.Equal(t, `{"specialty":"Neurology","confidence":"High"}`, text)
	require.NotNil(t, api.input)
	assert.Equal(t, "anthropic.test", *api.input.ModelId)
	require.Len(t, api.input.Messages, 1)
	assert.Equal(t, brtypes.ConversationRoleUser, api.input.Messages[0].Role)
}

func TestBedrockModel_EmptyOutput(t *testing.T) {
	model, err := NewBedrockModel(&stubConverseAPI{out: &bedrockruntime.ConverseOutput{}}, "anthropic.test")
	require.NoError(t, err)

	_, err = model.Complete(context.Background(), "system", "prompt")
	assert.Error(t, err)
}

func TestNewBedrockModel_Validation(t *testing.T) {
	_, err := NewBedrockModel(nil, "model")
	assert.Error(t, err)

	_, err = NewBedrockModel(&stubConverseAPI{}, " ")
	assert.Error(t, err)
}

type stubGenerator struct {
	resp *genai.GenerateContentResponse
	err  error
}

func (s *stubGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	return s.resp, s.err
}

func TestGeminiModel_Complete(t *testing.T) {
	gen := &stubGenerator{
		resp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text(` {"specialty":"Dermatology"} `)}}},
			},
		},
	}
	model := &GeminiModel{generator: func(string) geminiGenerator { return gen }}

	text, err := model.Complete(context.Background(), "system", "Symptoms: skin rash")
	require.NoError(t, err)
	assert.Equal(t, `{"specialty":"Dermatology"}`, text)
	assert.NoError(t, model.Close())
}

func TestGeminiModel_NoCandidates(t *testing.T) {
	model := &GeminiModel{generator: func(string) geminiGenerator {
		return &stubGenerator{resp: &genai.GenerateContentResponse{}}
	}}

	_, err := model.Complete(context.Background(), "system", "prompt")
	assert.Error(t, err)
}

func TestNewGeminiModel_RequiresKey(t *testing.T) {
	_, err := NewGeminiModel(context.Background(), "", "")
	assert.Error(t, err)
}
