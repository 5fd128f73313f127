package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/valpere/dialectran/internal/numbered"
	"github.com/valpere/dialectran/internal/postprocess"
)

const (
	DefaultGeminiURL   = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel = "gemini-2.5-pro"
)

// GeminiGenerator calls the Gemini generateContent endpoint with one API key.
type GeminiGenerator struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewGeminiGenerator(apiKey, baseURL, model string, timeout time.Duration) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key required")
	}
	if baseURL == "" {
		baseURL = DefaultGeminiURL
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &GeminiGenerator{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   strings.TrimPrefix(model, "models/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (s *GeminiGenerator) Name() string {
	return "gemini"
}

func (s *GeminiGenerator) Model() string {
	return s.model
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      *geminiContent `json:"content"`
		FinishReason string         `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

func (s *GeminiGenerator) Generate(ctx context.Context, prompt numbered.Prompt) (*Result, error) {
	result := &Result{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	body, err := json.Marshal(struct {
		Contents []geminiContent `json:"contents"`
	}{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt.String()}}}},
	})
	if err != nil {
		result.Error = fmt.Sprintf("failed to marshal request: %v", err)
		return result, err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.baseURL, s.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		result.Error = fmt.Sprintf("failed to create request: %v", err)
		return result, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read response: %v", err)
		return result, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Sprintf("API returned status %d: %s", resp.StatusCode, truncate(string(respBody), 300))
		return result, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(respBody, &gemResp); err != nil {
		result.Error = fmt.Sprintf("failed to decode response: %v", err)
		return result, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(gemResp.Candidates) == 0 || gemResp.Candidates[0].Content == nil {
		result.Error = "no candidates returned"
		if gemResp.PromptFeedback != nil && gemResp.PromptFeedback.BlockReason != "" {
			result.Error = "prompt blocked: " + gemResp.PromptFeedback.BlockReason
		}
		return result, ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range gemResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := postprocess.Clean(sb.String())
	if text == "" {
		result.Error = "empty response from API"
		return result, ErrEmptyResponse
	}

	result.Text = text
	result.Metadata = map[string]string{
		"model":         s.model,
		"finish_reason": gemResp.Candidates[0].FinishReason,
	}
	if u := gemResp.UsageMetadata; u != nil {
		result.Metadata["prompt_tokens"] = fmt.Sprintf("%d", u.PromptTokenCount)
		result.Metadata["completion_tokens"] = fmt.Sprintf("%d", u.CandidatesTokenCount)
		result.Metadata["total_tokens"] = fmt.Sprintf("%d", u.TotalTokenCount)
	}

	return result, nil
}

func (s *GeminiGenerator) IsAvailable(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("Gemini not available: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Gemini returned status %d", resp.StatusCode)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
