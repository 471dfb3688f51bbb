package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// OpenAIClient implements Client using OpenAI's json_schema response format.
// Strict schemas must have an object root, so the array travels inside an
// envelope and is unwrapped before returning.
type OpenAIClient struct {
	keys    KeySource
	model   string
	baseURL string
}

// NewOpenAIClient creates an OpenAI-backed client.
func NewOpenAIClient(keys KeySource, model string) *OpenAIClient {
	return &OpenAIClient{
		keys:  keys,
		model: model,
	}
}

func (o *OpenAIClient) ProviderName() string { return "openai" }
func (o *OpenAIClient) ModelName() string    { return o.model }

func (o *OpenAIClient) CompleteJSON(ctx context.Context, req Request) (string, error) {
	apiKey, err := o.keys()
	if err != nil {
		return "", err
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if o.baseURL != "" {
		clientCfg.BaseURL = o.baseURL
	}
	client := openai.NewClientWithConfig(clientCfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
		Temperature: float32(req.Temperature),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "therapist_results",
				Schema: openAISchema(req.Schema),
				Strict: true,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API call: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	return unwrapResults([]byte(content))
}

// openAISchema builds the envelope with go-openai's jsonschema types.
func openAISchema(s RecordSchema) *jsonschema.Definition {
	props := make(map[string]jsonschema.Definition, len(s.Fields))
	for _, f := range s.Fields {
		props[f.Name] = jsonschema.Definition{
			Type:        jsonschema.String,
			Description: f.Description,
		}
	}

	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			resultsKey: {
				Type: jsonschema.Array,
				Items: &jsonschema.Definition{
					Type:                 jsonschema.Object,
					Properties:           props,
					Required:             s.Names(),
					AdditionalProperties: false,
				},
			},
		},
		Required:             []string{resultsKey},
		AdditionalProperties: false,
	}
}
