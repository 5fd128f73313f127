package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/valpere/dialectran/internal/config"
	"github.com/valpere/dialectran/internal/pacer"
	"github.com/valpere/dialectran/internal/translator"
)

func TestBuildGenerators(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.Config
		wantCount int
		wantName  string
		wantModel string
	}{
		{
			name:      "gemini one client per key",
			cfg:       config.Config{Backend: config.BackendGemini, APIKeys: []string{"a", "b", "c"}},
			wantCount: 3,
			wantName:  "gemini",
			wantModel: translator.DefaultGeminiModel,
		},
		{
			name:      "openai self-hosted without key",
			cfg:       config.Config{Backend: config.BackendOpenAI, BaseURL: "http://localhost:8000/v1", Model: "qwen"},
			wantCount: 1,
			wantName:  "openai",
			wantModel: "qwen",
		},
		{
			name:      "ollama one client per model",
			cfg:       config.Config{Backend: config.BackendOllama, Models: []string{"gemma2:9b", "qwen2.5:7b"}},
			wantCount: 2,
			wantName:  "ollama",
			wantModel: "gemma2:9b",
		},
		{
			name:      "ollama single model",
			cfg:       config.Config{Backend: config.BackendOllama, Model: "llama3.1:8b"},
			wantCount: 1,
			wantName:  "ollama",
			wantModel: "llama3.1:8b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gens, err := buildGenerators(context.Background(), &tt.cfg)
			if err != nil {
				t.Fatalf("buildGenerators() error = %v", err)
			}
			if len(gens) != tt.wantCount {
				t.Fatalf("got %d generators, want %d", len(gens), tt.wantCount)
			}
			if gens[0].Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", gens[0].Name(), tt.wantName)
			}
			if got := modelOf(gens[0]); got != tt.wantModel {
				t.Errorf("model = %q, want %q", got, tt.wantModel)
			}
		})
	}
}

func TestBuildGenerators_UnknownBackend(t *testing.T) {
	_, err := buildGenerators(context.Background(), &config.Config{Backend: "systran"})
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestBuildPool_NoKeys(t *testing.T) {
	_, err := buildPool(context.Background(), &config.Config{Backend: config.BackendGemini})
	if !errors.Is(err, translator.ErrNoClients) {
		t.Errorf("error = %v, want ErrNoClients", err)
	}
}

func TestNewPacer(t *testing.T) {
	p, err := newPacer(&config.Config{Pacing: config.PacingTokenBucket, Delay: time.Second})
	if err != nil {
		t.Fatalf("newPacer() error = %v", err)
	}
	if _, ok := p.(*pacer.TokenBucket); !ok {
		t.Errorf("got %T, want *pacer.TokenBucket", p)
	}

	p, err = newPacer(&config.Config{Pacing: config.PacingFixed})
	if err != nil {
		t.Fatalf("newPacer() error = %v", err)
	}
	if _, ok := p.(pacer.Noop); !ok {
		t.Errorf("zero delay: got %T, want pacer.Noop", p)
	}
}
