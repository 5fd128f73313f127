package translator

import (
	"context"
	"fmt"
	"strings"
	"time"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"

	"github.com/valpere/dialectran/internal/numbered"
)

// GoogleOptions configures the Cloud Translation backend. QuotaProject bills
// requests to that Cloud project.
type GoogleOptions struct {
	Credentials  string
	APIKey       string
	QuotaProject string
	SourceLang   string
	TargetLang   string
}

// GoogleGenerator runs plain machine translation over the prompt texts and
// renders the result as a numbered reply. The instruction part of the
// prompt is not used.
type GoogleGenerator struct {
	client *translate.Client
	source language.Tag
	target language.Tag
}

func NewGoogleGenerator(ctx context.Context, gopts GoogleOptions, opts ...option.ClientOption) (*GoogleGenerator, error) {
	if gopts.TargetLang == "" {
		return nil, fmt.Errorf("target language required")
	}
	target, err := language.Parse(gopts.TargetLang)
	if err != nil {
		return nil, fmt.Errorf("invalid target language: %w", err)
	}

	var source language.Tag
	if gopts.SourceLang != "" && gopts.SourceLang != "auto" {
		source, err = language.Parse(gopts.SourceLang)
		if err != nil {
			return nil, fmt.Errorf("invalid source language: %w", err)
		}
	}

	clientOpts := []option.ClientOption{}
	if gopts.Credentials != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(gopts.Credentials))
	}
	if gopts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(gopts.APIKey))
	}
	if gopts.QuotaProject != "" {
		clientOpts = append(clientOpts, option.WithQuotaProject(gopts.QuotaProject))
	}
	clientOpts = append(clientOpts, opts...)

	client, err := translate.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &GoogleGenerator{client: client, source: source, target: target}, nil
}

func (s *GoogleGenerator) Name() string {
	return "google"
}

func (s *GoogleGenerator) Generate(ctx context.Context, prompt numbered.Prompt) (*Result, error) {
	result := &Result{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	opts := &translate.Options{Format: translate.Text}
	if s.source != language.Und {
		opts.Source = s.source
	}

	translations, err := s.client.Translate(ctx, prompt.Texts, s.target, opts)
	if err != nil {
		result.Error = fmt.Sprintf("translation failed: %v", err)
		return result, fmt.Errorf("translation failed: %w", err)
	}
	if len(translations) == 0 {
		result.Error = "no translation returned"
		return result, ErrEmptyResponse
	}

	texts := make([]string, len(translations))
	for i, t := range translations {
		texts[i] = strings.TrimSpace(t.Text)
	}

	result.Text = numbered.Number(texts)
	result.Metadata = map[string]string{"target": s.target.String()}
	if src := translations[0].Source; src != language.Und {
		result.Metadata["detected_source"] = src.String()
	}

	return result, nil
}

func (s *GoogleGenerator) IsAvailable(ctx context.Context) error {
	if _, err := s.client.SupportedLanguages(ctx, s.target); err != nil {
		return fmt.Errorf("Google Translate not available: %w", err)
	}
	return nil
}

func (s *GoogleGenerator) Close() error {
	return s.client.Close()
}
