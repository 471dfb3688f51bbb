package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient implements Client with Gemini's native response schema support:
// the model output is constrained server-side to application/json matching
// the declared schema, so the reply text is the array itself.
type GeminiClient struct {
	keys    KeySource
	model   string
	baseURL string // empty means the SDK default; tests point it at httptest
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(keys KeySource, model string) *GeminiClient {
	return &GeminiClient{
		keys:  keys,
		model: model,
	}
}

func (g *GeminiClient) ProviderName() string { return "gemini" }
func (g *GeminiClient) ModelName() string    { return g.model }

func (g *GeminiClient) CompleteJSON(ctx context.Context, req Request) (string, error) {
	apiKey, err := g.keys()
	if err != nil {
		return "", err
	}

	// A fresh client per call picks up the current key.
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return "", fmt.Errorf("creating gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   geminiSchema(req.Schema),
		Temperature:      genai.Ptr(float32(req.Temperature)),
	})
	if err != nil {
		return "", fmt.Errorf("gemini API call: %w", err)
	}

	// A blocked prompt comes back with no candidates at all. That is a failed
	// call, not a model that found nothing.
	if len(resp.Candidates) == 0 {
		reason := "none"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			reason = string(resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("gemini returned no candidates (block reason %s)", reason)
	}

	return resp.Text(), nil
}

// geminiSchema translates a RecordSchema into genai's typed schema.
func geminiSchema(s RecordSchema) *genai.Schema {
	props := make(map[string]*genai.Schema, len(s.Fields))
	for _, f := range s.Fields {
		props[f.Name] = &genai.Schema{
			Type:        genai.TypeString,
			Description: f.Description,
		}
	}

	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type:             genai.TypeObject,
			Properties:       props,
			Required:         s.Names(),
			PropertyOrdering: s.Names(),
		},
	}
}
