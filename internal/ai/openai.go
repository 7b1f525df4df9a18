package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/choudharyanish1236-cloud/retail-task-manager/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

// completionClient is the slice of the OpenAI client the assistant needs;
// tests substitute a canned implementation.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIAssistant implements Assistant with JSON-mode chat completions.
type OpenAIAssistant struct {
	client   completionClient
	model    string
	shopType string
	log      zerolog.Logger
}

func NewOpenAIAssistant(apiKey, model, shopType string) *OpenAIAssistant {
	return &OpenAIAssistant{
		client:   openai.NewClient(apiKey),
		model:    model,
		shopType: shopType,
		log:      logger.WithComponent("assistant"),
	}
}

func (a *OpenAIAssistant) Suggest(ctx context.Context, query string) []Suggestion {
	prompt := fmt.Sprintf(
		`Suggest product names and their typical HSN codes for a %s shop starting with or related to: %q. `+
			`Respond with JSON of the form {"suggestions": [{"name": string, "hsn": string, "category": string, "estimatedRate": number}]}. `+
			`"name" and "hsn" are required for every entry.`,
		a.shopType, query,
	)

	raw, err := a.complete(ctx, prompt)
	if err != nil {
		a.log.Warn().Err(err).Str("query", query).Msg("Suggestion request failed")
		return []Suggestion{}
	}

	var parsed struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		a.log.Warn().Err(err).Msg("Failed to parse suggestion response")
		return []Suggestion{}
	}

	out := make([]Suggestion, 0, len(parsed.Suggestions))
	for _, s := range parsed.Suggestions {
		if s.Name == "" || s.HSN == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (a *OpenAIAssistant) ParseCommand(ctx context.Context, transcript string) *StockCommand {
	prompt := fmt.Sprintf(
		`Parse this retail stock voice command: %q. Extract product details. `+
			`Respond with JSON of the form {"action": "ADD_STOCK"|"REDUCE_STOCK", "productName": string, "quantity": number, "rate": number}.`,
		transcript,
	)

	raw, err := a.complete(ctx, prompt)
	if err != nil {
		a.log.Warn().Err(err).Str("transcript", transcript).Msg("Voice parse request failed")
		return nil
	}

	var cmd StockCommand
	if err := json.Unmarshal([]byte(raw), &cmd); err != nil {
		a.log.Warn().Err(err).Msg("Failed to parse voice command response")
		return nil
	}
	// Only the two known actions with a usable quantity are acted on.
	if !cmd.Action.Valid() || cmd.ProductName == "" || cmd.Quantity <= 0 {
		return nil
	}
	return &cmd
}

func (a *OpenAIAssistant) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return stripCodeFences(resp.Choices[0].Message.Content), nil
}

// stripCodeFences removes markdown fencing some models wrap JSON in.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
