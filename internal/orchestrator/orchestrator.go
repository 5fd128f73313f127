// Package orchestrator drives the batch loop: it splits the rows, sends each
// batch to one client of the pool, reconciles the reply and writes the
// assembled rows before moving on.
//
// A failed remote call never aborts the run. The whole batch keeps its
// original texts and processing continues with the next batch.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/valpere/dialectran/internal/chunker"
	"github.com/valpere/dialectran/internal/dataset"
	"github.com/valpere/dialectran/internal/numbered"
	"github.com/valpere/dialectran/internal/pacer"
	"github.com/valpere/dialectran/internal/translator"
)

const DefaultDialect = "Jeju"

type Config struct {
	BatchSize int
	Dialect   string
	// Template overrides the default prompt instruction.
	Template string
	// Timeout bounds a single remote call. Zero means no limit beyond ctx.
	Timeout time.Duration
	// Pacer runs between batches, never after the last one. Nil means a
	// fixed pause of pacer.DefaultDelay.
	Pacer pacer.Pacer
	// ProgressEvery logs a progress line every N batches. Zero disables it.
	ProgressEvery int
	// OnBatch is called after each batch is written.
	OnBatch func(done, total int)
}

// RowWriter receives the output rows of each batch in input order.
type RowWriter interface {
	Write(rows []dataset.OutputRow) error
}

// BatchResult is the outcome of one remote call.
type BatchResult struct {
	Index int
	// Texts has one entry per input text.
	Texts []string
	// Client is the name of the generator that served the batch.
	Client string
	// Skipped is set when every text was blank and no call was made.
	Skipped bool
	// Failed is set when the remote call failed and the originals were kept.
	Failed bool
	// Fallbacks counts non-blank texts that kept their original value.
	Fallbacks int
	Err       error
	Latency   time.Duration
}

type Summary struct {
	Rows             int
	Batches          int
	FailedBatches    int
	SkippedBatches   int
	TranslatedFields int
	FallbackFields   int
	Elapsed          time.Duration
}

type Orchestrator struct {
	pool   *translator.Pool
	config Config
	logger *zap.SugaredLogger
}

func New(pool *translator.Pool, config Config, logger *zap.SugaredLogger) *Orchestrator {
	if config.BatchSize < 1 {
		config.BatchSize = chunker.DefaultBatchSize
	}
	if config.Dialect == "" {
		config.Dialect = DefaultDialect
	}
	if config.Pacer == nil {
		config.Pacer = pacer.NewFixed(pacer.DefaultDelay)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Orchestrator{
		pool:   pool,
		config: config,
		logger: logger,
	}
}

// TranslateBatch translates the flattened texts of one batch with the client
// selected by batchIndex. It never returns an error: on failure the result
// holds the original texts and Failed is set.
func (o *Orchestrator) TranslateBatch(ctx context.Context, texts []string, batchIndex int) BatchResult {
	result := BatchResult{Index: batchIndex}

	prompt, ok := numbered.Build(texts, o.config.Dialect, o.config.Template)
	if !ok {
		result.Texts = make([]string, len(texts))
		result.Skipped = true
		return result
	}

	gen := o.pool.Pick(batchIndex)
	result.Client = gen.Name()

	callCtx := ctx
	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := gen.Generate(callCtx, prompt)
	result.Latency = time.Since(start)
	if err == nil && res == nil {
		err = translator.ErrEmptyResponse
	}
	if err == nil && res.Error != "" {
		err = fmt.Errorf("%s: %s", res.ServiceName, res.Error)
	}
	if err != nil {
		result.Texts = keepOriginals(texts)
		result.Failed = true
		result.Fallbacks = prompt.Len()
		result.Err = err
		return result
	}

	rec := numbered.Reconcile(res.Text, texts, prompt.Texts)
	result.Texts = rec.Texts
	result.Fallbacks = rec.FallbackCount(texts)
	return result
}

// keepOriginals is the whole-batch fallback. Blank texts stay empty.
func keepOriginals(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		if !numbered.IsBlank(t) {
			out[i] = t
		}
	}
	return out
}

// Run processes every row in order and hands each assembled batch to w.
// Only write errors and context cancellation stop the run; the summary
// returned alongside an error covers the batches written so far.
func (o *Orchestrator) Run(ctx context.Context, rows []dataset.InputRow, w RowWriter) (*Summary, error) {
	start := time.Now()
	batches := chunker.Split(rows, o.config.BatchSize)
	total := len(batches)

	summary := &Summary{}
	defer func() { summary.Elapsed = time.Since(start) }()

	o.logger.Infow("starting translation",
		"rows", len(rows),
		"batches", total,
		"batch_size", o.config.BatchSize,
		"dialect", o.config.Dialect,
		"clients", o.pool.Len(),
	)

	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		texts, positions := dataset.Flatten(batch)
		br := o.TranslateBatch(ctx, texts, i)
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		switch {
		case br.Skipped:
			summary.SkippedBatches++
			o.logger.Debugw("batch skipped, all texts blank", "batch", i+1)
		case br.Failed:
			summary.FailedBatches++
			o.logger.Warnw("remote call failed, keeping original texts",
				"batch", i+1,
				"client", br.Client,
				"slot", o.pool.Slot(i),
				"error", br.Err,
			)
		default:
			o.logger.Debugw("batch translated",
				"batch", i+1,
				"client", br.Client,
				"slot", o.pool.Slot(i),
				"latency", br.Latency,
				"fallbacks", br.Fallbacks,
			)
		}
		summary.FallbackFields += br.Fallbacks
		summary.TranslatedFields += len(numbered.NonBlank(texts)) - br.Fallbacks

		if err := w.Write(dataset.Assemble(batch, positions, br.Texts)); err != nil {
			return summary, fmt.Errorf("failed to write batch %d: %w", i+1, err)
		}
		summary.Batches++
		summary.Rows += len(batch)

		if o.config.OnBatch != nil {
			o.config.OnBatch(i+1, total)
		}
		if o.config.ProgressEvery > 0 && (i+1)%o.config.ProgressEvery == 0 {
			o.logger.Infow("progress", "batches", i+1, "total", total, "rows", summary.Rows)
		}

		if i < total-1 {
			if err := o.config.Pacer.Wait(ctx); err != nil {
				return summary, err
			}
		}
	}

	o.logger.Infow("translation finished",
		"rows", summary.Rows,
		"batches", summary.Batches,
		"failed_batches", summary.FailedBatches,
		"skipped_batches", summary.SkippedBatches,
		"fallback_fields", summary.FallbackFields,
		"elapsed", time.Since(start),
	)

	return summary, nil
}
