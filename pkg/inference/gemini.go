package inference

import (
	"cmp"
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// GeminiInferencer implements Inferencer using Google's genai SDK. It accepts
// the same openai-style params so the gateway can stay provider-agnostic.
type GeminiInferencer struct {
	client *genai.Client
	apiKey string
	model  string
}

func NewGeminiInferencer(apiKey string, model string) (*GeminiInferencer, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &GeminiInferencer{
		client: client,
		apiKey: apiKey,
		model:  model,
	}, nil
}

// generationConfig translates the openai-style params into a genai config.
// Both Infer and Chat go through here so temperature, token limits, and the
// JSON response mode behave identically on either entry point.
func generationConfig(params *openai.ChatCompletionNewParams, system string) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleModel),
		MaxOutputTokens:   int32(cmp.Or(params.MaxCompletionTokens.Value, 4096)),
	}
	if params.ResponseFormat.OfJSONSchema != nil {
		config.ResponseMIMEType = "application/json"
	}
	if params.Temperature.Valid() {
		config.Temperature = genai.Ptr(float32(params.Temperature.Value))
	}
	return config
}

func (o *GeminiInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	}
	config := generationConfig(params, system)

	result, err := o.client.Models.GenerateContent(
		ctx,
		cmp.Or(params.Model, o.model),
		genai.Text(user),
		config,
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return result.Text(), nil
}

func (o *GeminiInferencer) Chat(ctx context.Context, params *openai.ChatCompletionNewParams, system string, history []Message) (string, error) {
	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	}
	config := generationConfig(params, system)

	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if strings.EqualFold(m.Role, "assistant") {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	result, err := o.client.Models.GenerateContent(
		ctx,
		cmp.Or(params.Model, o.model),
		contents,
		config,
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return result.Text(), nil
}
