// Package batch drives the per-dataset fan-out of LLM calls: fixed-size
// batches dispatched with bounded concurrency, checkpointed one by one, and
// aggregated in index order. One failed batch never aborts its siblings; it
// is simply absent from this run's output and retried on the next run.
package batch

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stancelab/internal/checkpoint"
	"stancelab/internal/dataset"
)

// DefaultWidth bounds how many batches are in flight at once.
const DefaultWidth = 4

// Caller issues one external call per batch. *llm.Retrier satisfies this.
type Caller interface {
	Call(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// PromptFunc builds the prompt for one batch of rows.
type PromptFunc func(rows []dataset.Row) string

// Orchestrator runs all batches for one dataset against the LLM, skipping
// batches already present in the checkpoint record.
type Orchestrator struct {
	store  *checkpoint.Store
	caller Caller
	width  int
	logger *zap.Logger
}

// Result reports one dataset run. Raw holds each batch's response text in
// batch-index order; failed batches have an empty entry.
type Result struct {
	Raw          []string
	TotalBatches int
	Completed    int
	Skipped      int
	Failed       int
}

// NewOrchestrator creates an orchestrator. Zero width falls back to
// DefaultWidth.
func NewOrchestrator(store *checkpoint.Store, caller Caller, width int, logger *zap.Logger) *Orchestrator {
	if width <= 0 {
		width = DefaultWidth
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		store:  store,
		caller: caller,
		width:  width,
		logger: logger,
	}
}

// Process splits rows into batches and runs them all. Per batch:
// already-checkpointed indices are skipped and reuse the stored text; the
// rest call the LLM, and each success is persisted before it counts as
// completed, so a crash loses no finished work. Output is assembled in
// ascending index order regardless of completion order. Failed batches are
// reported in the result, not as an error.
func (o *Orchestrator) Process(ctx context.Context, key checkpoint.Key, language string, rows []dataset.Row, batchSize int, buildPrompt PromptFunc, systemPrompt string) (*Result, error) {
	batches := Split(rows, batchSize)
	total := len(batches)
	runID := uuid.NewString()

	logger := o.logger.With(
		zap.String("run_id", runID),
		zap.String("checkpoint", key.String()),
	)

	rec, found, err := o.store.Load(key)
	if err != nil {
		return nil, err
	}
	if found && rec.TotalBatches != total {
		// Input size changed since the checkpoint was written; its batch
		// indices no longer line up with this input.
		logger.Warn("checkpoint batch count does not match input, starting fresh",
			zap.Int("checkpointed", rec.TotalBatches),
			zap.Int("computed", total))
		found = false
	}
	if !found {
		rec = checkpoint.NewRecord(key, language, total)
	}

	logger.Info("processing dataset",
		zap.Int("rows", len(rows)),
		zap.Int("batches", total),
		zap.Int("width", o.width))

	// Snapshot the resume state before dispatch; workers append to the
	// record concurrently under the store's lock.
	alreadyDone := make([]bool, total)
	for i := range alreadyDone {
		alreadyDone[i] = rec.IsProcessed(i)
	}

	var (
		mu                 sync.Mutex
		completed, skipped int
		failed             int
	)

	var g errgroup.Group
	g.SetLimit(o.width)

	for i, batchRows := range batches {
		if alreadyDone[i] {
			skipped++
			logger.Debug("batch already checkpointed, skipping", zap.Int("batch", i))
			continue
		}

		i, batchRows := i, batchRows
		g.Go(func() error {
			text, err := o.caller.Call(ctx, systemPrompt, buildPrompt(batchRows))
			if err != nil {
				// Leave the checkpoint untouched; the next run retries
				// this batch from scratch.
				logger.Warn("batch failed", zap.Int("batch", i), zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}

			if err := o.store.RecordBatch(key, i, text, rec); err != nil {
				logger.Warn("batch checkpoint write failed", zap.Int("batch", i), zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}

			logger.Info("batch completed", zap.Int("batch", i), zap.Int("rows", len(batchRows)))
			mu.Lock()
			completed++
			mu.Unlock()
			return nil
		})
	}

	// Workers always return nil; failures are counted, not propagated.
	_ = g.Wait()

	// Assemble in index order so completed-this-run and skipped-from-before
	// batches are treated uniformly.
	raw := make([]string, total)
	for i := 0; i < total; i++ {
		if text, ok := rec.Result(i); ok {
			raw[i] = text
		}
	}

	res := &Result{
		Raw:          raw,
		TotalBatches: total,
		Completed:    completed,
		Skipped:      skipped,
		Failed:       failed,
	}

	if failed > 0 {
		logger.Warn("run finished with failed batches; re-run to resume from checkpoint",
			zap.Int("failed", failed),
			zap.Int("completed", completed),
			zap.Int("skipped", skipped))
	} else {
		logger.Info("run finished",
			zap.Int("completed", completed),
			zap.Int("skipped", skipped))
	}

	return res, nil
}
