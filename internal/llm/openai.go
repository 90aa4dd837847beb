package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

var openaiAliases = map[string]string{
	"gpt-mini": "gpt-4.1-mini",
}

// openaiProvider serves OpenAI and any OpenAI-compatible endpoint such as
// OpenRouter.
type openaiProvider struct {
	name   string
	client *openai.Client
	model  string
}

func newOpenAI(ep Endpoint) (*openaiProvider, error) {
	return newOpenAICompatible("openai", ep, "")
}

// newOpenRouter targets OpenRouter. Its model IDs carry a vendor prefix
// and are never aliased.
func newOpenRouter(ep Endpoint) (*openaiProvider, error) {
	p, err := newOpenAICompatible("openrouter", ep, openRouterBaseURL)
	if err != nil {
		return nil, err
	}
	p.model = ep.Model
	return p, nil
}

func newOpenAICompatible(name string, ep Endpoint, defaultBaseURL string) (*openaiProvider, error) {
	if ep.APIKey == "" {
		return nil, errMissingKey(name)
	}
	cfg := openai.DefaultConfig(ep.APIKey)
	switch {
	case ep.BaseURL != "":
		cfg.BaseURL = ep.BaseURL
	case defaultBaseURL != "":
		cfg.BaseURL = defaultBaseURL
	}
	return &openaiProvider{
		name:   name,
		client: openai.NewClientWithConfig(cfg),
		model:  alias(ep.Model, openaiAliases),
	}, nil
}

func (p *openaiProvider) ModelID() string { return p.model }

func (p *openaiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chat := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            openaiMessages(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema %s: %w", req.Schema.Name, err)
		}
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Schema:      json.RawMessage(def),
				Strict:      true,
			},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, fromStatus(p.name, apiErr.HTTPStatusCode, err)
		}
		return nil, &Error{Kind: KindUnavailable, Provider: p.name, Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &Error{Kind: KindInvalidResponse, Provider: p.name, Err: errors.New("reply has no choices")}
	}

	choice := resp.Choices[0]
	stop := StopEnd
	if choice.FinishReason == openai.FinishReasonLength {
		stop = StopMaxTokens
	}
	usage := Usage{InputTokens: resp.Usage.PromptTokens, OutputTokens: resp.Usage.CompletionTokens}
	return reply(p.name, req, choice.Message.Content, usage, resp.Model, stop)
}

func openaiMessages(req Request) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	return append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})
}
