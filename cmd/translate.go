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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/valpere/dialectran/internal/chunker"
	"github.com/valpere/dialectran/internal/config"
	"github.com/valpere/dialectran/internal/dataset"
	"github.com/valpere/dialectran/internal/orchestrator"
	"github.com/valpere/dialectran/internal/pacer"
	"github.com/valpere/dialectran/internal/translator"
)

var noProgress bool

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate the sentence columns of a CSV file into a dialect",
	Long: `Translate sentence1_ko and sentence2_ko of every row into the target dialect.

Rows are grouped into batches (default 20). Each batch is one remote call
carrying up to two numbered sentences per row. Batches rotate across the
configured API keys, and a pause (default 2s) separates consecutive calls.

If a call fails, the whole batch keeps its original sentences and the run
continues. Sentences missing from a reply keep their original text too.

The output has the columns gold_label, sentence1_jeju, sentence2_jeju,
ai_answer, result, one row per input row in input order.

Example:
  dialectran translate -i kornli.csv -o kornli_jeju.csv
  dialectran translate -i in.tsv -o out.tsv --delimiter tab --api-keys k1,k2,k3
  dialectran translate -i in.csv -o out.csv --backend ollama --models gemma2:9b,qwen2.5:7b`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.ValidateFiles(); err != nil {
			return err
		}

		logger, closeLog, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		pool, err := buildPool(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		summary, err := runTranslation(ctx, cfg, pool, logger, !noProgress)
		if err != nil {
			return err
		}

		fmt.Printf("Successfully translated %d rows to %s in %d batches (%s)\n",
			summary.Rows, cfg.Dialect, summary.Batches, summary.Elapsed.Round(time.Second))
		fmt.Printf("Failed batches: %d, skipped batches: %d, untranslated sentences: %d\n",
			summary.FailedBatches, summary.SkippedBatches, summary.FallbackFields)
		fmt.Printf("Output written to %s\n", cfg.Output)
		return nil
	},
}

// runTranslation reads the whole input, then streams translated batches to
// the output. The output file is closed on every exit path; batches written
// before an abort stay on disk.
func runTranslation(ctx context.Context, cfg *config.Config, pool *translator.Pool, logger *zap.SugaredLogger, showProgress bool) (summary *orchestrator.Summary, err error) {
	delim := cfg.DelimiterRune()

	ds, err := dataset.Read(cfg.Input, delim)
	if err != nil {
		return nil, err
	}
	if missing := ds.Missing(); len(missing) > 0 {
		logger.Warnw("input is missing columns, treating them as empty", "columns", missing)
	}

	p, err := newPacer(cfg)
	if err != nil {
		return nil, err
	}

	w, err := dataset.Create(cfg.Output, delim)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	total := chunker.Count(len(ds.Rows), cfg.BatchSize)
	var bar *progressbar.ProgressBar
	if showProgress && total > 0 {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription(fmt.Sprintf("%s batches", cfg.Dialect)),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
		)
	}

	orch := orchestrator.New(pool, orchestrator.Config{
		BatchSize:     cfg.BatchSize,
		Dialect:       cfg.Dialect,
		Template:      cfg.Prompt,
		Timeout:       cfg.Timeout,
		Pacer:         p,
		ProgressEvery: cfg.ProgressEvery,
		OnBatch: func(done, _ int) {
			if bar != nil {
				_ = bar.Set(done)
			}
		},
	}, logger.With("backend", cfg.Backend))

	summary, err = orch.Run(ctx, ds.Rows, w)
	if err != nil {
		return summary, fmt.Errorf("translation stopped after %d of %d rows: %w", summary.Rows, len(ds.Rows), err)
	}
	return summary, nil
}

func newPacer(cfg *config.Config) (pacer.Pacer, error) {
	kind := pacer.KindFixed
	if cfg.Pacing == config.PacingTokenBucket {
		kind = pacer.KindTokenBucket
	}
	return pacer.New(kind, cfg.Delay)
}

func init() {
	rootCmd.AddCommand(translateCmd)

	f := translateCmd.Flags()
	f.StringP("input", "i", "", "Input CSV file (required)")
	f.StringP("output", "o", "", "Output CSV file (required)")
	f.String("delimiter", ",", `Field delimiter, "tab" for TSV`)
	f.IntP("batch-size", "b", chunker.DefaultBatchSize, "Rows per remote call")
	f.StringP("dialect", "d", orchestrator.DefaultDialect, "Target dialect named in the prompt")
	f.Duration("delay", pacer.DefaultDelay, "Pause between remote calls")
	f.String("pacing", config.PacingFixed, "Pause policy: fixed or token-bucket")
	f.String("prompt", "", "Prompt template with {{count}}, {{dialect}} and {{texts}}")
	f.Int("progress-every", 5, "Log progress every N batches (0 disables)")
	f.BoolVar(&noProgress, "no-progress", false, "Hide the progress bar")

	bindFlags(translateCmd, map[string]string{
		"input":          "input",
		"output":         "output",
		"delimiter":      "delimiter",
		"batch_size":     "batch-size",
		"dialect":        "dialect",
		"delay":          "delay",
		"pacing":         "pacing",
		"prompt":         "prompt",
		"progress_every": "progress-every",
	})
}
