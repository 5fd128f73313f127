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
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/dialectran/internal/config"
)

var version = "0.1.0"

var (
	cfgFile string
	envFile string

	v = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "dialectran",
	Short: "CSV dialect translator",
	Long: `A CLI application that rewrites the Korean sentence columns of an NLI
dataset into a regional dialect using a hosted language model.

Rows are sent in batches as a numbered list, the numbered reply is mapped back
onto each row, and anything the model drops keeps its original text.

Supported backends: Gemini (default), OpenAI-compatible, Ollama, Google Translate

Use "dialectran translate --help" for translation options.`,
	Version:      version,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&cfgFile, "config", "", "Config file (default ./dialectran.yaml if present)")
	pf.StringVar(&envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Append JSON logs to this file")

	pf.String("backend", config.BackendGemini, "Remote backend: gemini, openai, ollama, google")
	pf.String("model", "", "Model name (backend default if empty)")
	pf.StringSlice("api-keys", nil, "API keys, one client per key (comma-separated)")
	pf.String("base-url", "", "Endpoint override for gemini, openai-compatible and ollama backends")
	pf.StringSlice("models", nil, "Ollama models, one client per model (comma-separated)")
	pf.String("credentials", "", "Path to Google Cloud credentials (google backend)")
	pf.String("project-id", "", "Google Cloud project billed for requests (google backend)")
	pf.String("source-lang", "ko", "Source language code (google backend, auto to detect)")
	pf.String("target-lang", "ko", "Target language code (google backend: plain machine translation baseline, no dialect support; must differ from --source-lang)")
	pf.Duration("timeout", 120*time.Second, "Timeout for a single remote call")

	bindFlags(rootCmd, map[string]string{
		"log.level":   "log-level",
		"log.file":    "log-file",
		"backend":     "backend",
		"model":       "model",
		"api_keys":    "api-keys",
		"base_url":    "base-url",
		"models":      "models",
		"credentials": "credentials",
		"project_id":  "project-id",
		"source_lang": "source-lang",
		"target_lang": "target-lang",
		"timeout":     "timeout",
	})
}
