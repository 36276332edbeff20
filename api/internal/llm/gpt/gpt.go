package gpt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	maxTokens    = 2048
	defaultModel = "gpt-4o-mini"
)

const systemPrompt = `You are a diagnostic assistant for math and physics teachers.
Answer with a single JSON object and nothing else.`

type Engine struct {
	client *openai.Client
	Model  string
	hasKey bool
}

// New builds an OpenAI chat-completions engine. An empty baseURL means the public API.
func New(apiKey, model, baseURL string) *Engine {
	apiKey = strings.TrimSpace(apiKey)
	cfg := openai.DefaultConfig(apiKey)
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &Engine{
		client: openai.NewClientWithConfig(cfg),
		Model:  strings.TrimSpace(model),
		hasKey: apiKey != "",
	}
}

func (e *Engine) Name() string     { return "gpt" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Generate(ctx context.Context, prompt string) (string, error) {
	if !e.hasKey {
		return "", errors.New("OPENAI_API_KEY is empty")
	}
	req := openai.ChatCompletionRequest{
		Model: e.Model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	// reasoning models reject max_tokens
	if isReasoningModel(e.Model) {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai chat completion: no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func isReasoningModel(model string) bool {
	for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, p) {
			return true
		}
	}
	return false
}
