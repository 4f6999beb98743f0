package classifier

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

type bedrockConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockModel completes prompts through the Bedrock Converse API.
type BedrockModel struct {
	api       bedrockConverseAPI
	modelID   string
	maxTokens int32
}

func NewBedrockModel(api bedrockConverseAPI, modelID string) (*BedrockModel, error) {
	if api == nil {
		return nil, errors.New("classifier: bedrock converse client cannot be nil")
	}
	if strings.TrimSpace(modelID) == "" {
		return nil, errors.New("classifier: bedrock model id is required")
	}
	return &BedrockModel{api: api, modelID: modelID, maxTokens: 300}, nil
}

func (m *BedrockModel) Complete(ctx context.Context, system, prompt string) (string, error) {
	out, err := m.api.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(m.modelID),
		System: []brtypes.SystemContentBlock{
			&brtypes.SystemContentBlockMemberText{Value: system},
		},
		Messages: []brtypes.Message{
			{
				Role: brtypes.ConversationRoleUser,
				Content: []brtypes.ContentBlock{
					&brtypes.ContentBlockMemberText{Value: prompt},
				},
			},
		},
		InferenceConfig: &brtypes.InferenceConfiguration{
			MaxTokens:   aws.Int32(m.maxTokens),
			Temperature: aws.Float32(0),
		},
	})
	if err != nil {
		return "", err
	}
	return bedrockOutputText(out)
}

func bedrockOutputText(out *bedrockruntime.ConverseOutput) (string, error) {
	if out == nil {
		return "", errors.New("classifier: bedrock response is nil")
	}
	msgOut, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return "", errors.New("classifier: bedrock response did not include a message output")
	}

	var builder strings.Builder
	for _, block := range msgOut.Value.Content {
		if textBlock, ok := block.(*brtypes.ContentBlockMemberText); ok {
			builder.WriteString(textBlock.Value)
		}
	}
	text := strings.TrimSpace(builder.String())
	if text == "" {
		return "", errors.New("classifier: bedrock response contained no text")
	}
	return text, nil
}
