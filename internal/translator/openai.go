package translator

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/valpere/dialectran/internal/numbered"
	"github.com/valpere/dialectran/internal/postprocess"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIGenerator talks to any OpenAI-compatible chat completions endpoint.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator requires an API key unless baseURL points at a
// self-hosted endpoint.
func NewOpenAIGenerator(apiKey, baseURL, model string) (*OpenAIGenerator, error) {
	if apiKey == "" && baseURL == "" {
		return nil, fmt.Errorf("OpenAI API key required")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (s *OpenAIGenerator) Name() string {
	return "openai"
}

func (s *OpenAIGenerator) Model() string {
	return s.model
}

func (s *OpenAIGenerator) Generate(ctx context.Context, prompt numbered.Prompt) (*Result, error) {
	result := &Result{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt.String()},
		},
	})
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result, fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		result.Error = "empty response from API"
		return result, ErrEmptyResponse
	}

	text := postprocess.Clean(resp.Choices[0].Message.Content)
	if text == "" {
		result.Error = "empty response from API"
		return result, ErrEmptyResponse
	}

	result.Text = text
	result.Metadata = map[string]string{
		"model":             s.model,
		"finish_reason":     string(resp.Choices[0].FinishReason),
		"prompt_tokens":     fmt.Sprintf("%d", resp.Usage.PromptTokens),
		"completion_tokens": fmt.Sprintf("%d", resp.Usage.CompletionTokens),
	}

	return result, nil
}

func (s *OpenAIGenerator) IsAvailable(ctx context.Context) error {
	if _, err := s.client.ListModels(ctx); err != nil {
		return fmt.Errorf("OpenAI endpoint not available: %w", err)
	}
	return nil
}
