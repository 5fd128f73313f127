/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/valpere/dialectran/internal/config"
	"github.com/valpere/dialectran/internal/logging"
	"github.com/valpere/dialectran/internal/translator"
)

// bindFlags ties viper keys to flags of cmd, persistent ones included.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		if flag == nil {
			panic(fmt.Sprintf("flag %q not defined", name))
		}
		if err := v.BindPFlag(key, flag); err != nil {
			panic(err)
		}
	}
}

// loadConfig reads .env, the config file and the environment, then checks
// the backend settings.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadEnvFile(envFile, cmd.Flags().Changed("env-file")); err != nil {
		return nil, err
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the run logger tagged with a fresh run id.
func newLogger(cfg *config.Config) (*zap.SugaredLogger, func() error, error) {
	logger, closeFn, err := logging.New(logging.Options{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	if err != nil {
		return nil, nil, err
	}
	return logger.With("run_id", uuid.New().String()), closeFn, nil
}

// buildGenerators creates one client per API key (gemini, openai, google)
// or per model (ollama).
func buildGenerators(ctx context.Context, cfg *config.Config) ([]translator.Generator, error) {
	var list []translator.Generator

	switch cfg.Backend {
	case config.BackendGemini:
		for i, key := range cfg.APIKeys {
			g, err := translator.NewGeminiGenerator(key, cfg.BaseURL, cfg.Model, cfg.Timeout)
			if err != nil {
				return nil, fmt.Errorf("gemini client %d: %w", i+1, err)
			}
			list = append(list, g)
		}

	case config.BackendOpenAI:
		keys := cfg.APIKeys
		if len(keys) == 0 {
			keys = []string{""}
		}
		for i, key := range keys {
			g, err := translator.NewOpenAIGenerator(key, cfg.BaseURL, cfg.Model)
			if err != nil {
				return nil, fmt.Errorf("openai client %d: %w", i+1, err)
			}
			list = append(list, g)
		}

	case config.BackendOllama:
		models := cfg.Models
		if len(models) == 0 {
			models = []string{cfg.Model}
		}
		for _, model := range models {
			list = append(list, translator.NewOllamaGenerator(cfg.BaseURL, model, cfg.Timeout))
		}

	case config.BackendGoogle:
		keys := cfg.APIKeys
		if len(keys) == 0 {
			keys = []string{""}
		}
		for i, key := range keys {
			g, err := translator.NewGoogleGenerator(ctx, translator.GoogleOptions{
				Credentials:  cfg.Credentials,
				APIKey:       key,
				QuotaProject: cfg.ProjectID,
				SourceLang:   cfg.SourceLang,
				TargetLang:   cfg.TargetLang,
			})
			if err != nil {
				return nil, fmt.Errorf("google client %d: %w", i+1, err)
			}
			list = append(list, g)
		}

	default:
		return nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalidConfig, cfg.Backend)
	}

	return list, nil
}

func buildPool(ctx context.Context, cfg *config.Config) (*translator.Pool, error) {
	gens, err := buildGenerators(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return translator.NewPool(gens...)
}

// modelOf returns the model a generator is bound to, if it reports one.
func modelOf(g translator.Generator) string {
	if m, ok := g.(interface{ Model() string }); ok {
		return m.Model()
	}
	return "-"
}
