package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

const submitToolName = "submit_therapists"

// AnthropicClient implements Client using a forced custom tool: Claude "submits"
// its answer as the tool input, which gives us schema-shaped JSON instead of
// free-form text.
type AnthropicClient struct {
	keys    KeySource
	model   string
	baseURL string
}

// NewAnthropicClient creates a Claude-backed client.
func NewAnthropicClient(keys KeySource, model string) *AnthropicClient {
	return &AnthropicClient{
		keys:  keys,
		model: model,
	}
}

func (a *AnthropicClient) ProviderName() string { return "anthropic" }
func (a *AnthropicClient) ModelName() string    { return a.model }

func (a *AnthropicClient) CompleteJSON(ctx context.Context, req Request) (string, error) {
	apiKey, err := a.keys()
	if err != nil {
		return "", err
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if a.baseURL != "" {
		opts = append(opts, option.WithBaseURL(a.baseURL))
	}
	client := anthropic.NewClient(opts...)

	submitTool := anthropic.ToolParam{
		Name:        submitToolName,
		Description: param.NewOpt("Submit the list of results you found."),
		InputSchema: anthropic.ToolInputSchemaParam{
			Properties: envelopeSchema(req.Schema),
			Required:   []string{resultsKey},
		},
	}

	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   2048,
		Temperature: param.NewOpt(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		Tools: []anthropic.ToolUnionParam{{OfTool: &submitTool}},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: submitToolName},
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call: %w", err)
	}

	for _, block := range message.Content {
		toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
		if !ok || toolUse.Name != submitToolName {
			continue
		}
		// Round-trip the tool input back to bytes for gjson.
		raw, err := json.Marshal(toolUse.Input)
		if err != nil {
			return "", fmt.Errorf("marshaling tool input: %w", err)
		}
		return unwrapResults(raw)
	}

	return "", fmt.Errorf("claude did not call %s (stop reason %s)", submitToolName, message.StopReason)
}
