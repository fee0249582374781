package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/llms-txt/generator/internal/model"
)

// BatchProcessor handles concurrent processing of multiple target sites.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-site execution
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each target site.
	// Each site needs its own spider, store, and delay limiter, so the
	// factory receives the seed URL and builds the whole chain.
	pipelineFactory func(seedURL string) (*Pipeline, error)

	// concurrency is the maximum number of sites crawled at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed crawl results.
	// Access is synchronized via mutex.
	results []*model.CrawlResult
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent site crawls.
// Default is 1: sites are processed one at a time unless asked otherwise.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called once per target to create a
// fresh pipeline. This ensures that per-site state (rate limiters,
// output stores, robots rules) doesn't leak between targets.
func NewBatchProcessor(pipelineFactory func(seedURL string) (*Pipeline, error), opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     1,
		results:         make([]*model.CrawlResult, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch crawls multiple target sites, up to the configured number
// concurrently. Results are returned in the order the seeds were given.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each site gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// A site whose pipeline fails still yields its partial result; the first
// pipeline error is returned after all sites have been attempted, along
// with every result collected.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, seeds []string) ([]*model.CrawlResult, error) {
	bp.logger.Debug("starting batch processing",
		"total_sites", len(seeds),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain order
	bp.results = make([]*model.CrawlResult, len(seeds))

	var (
		errMu    sync.Mutex
		firstErr error
	)
	recordErr := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, seed := range seeds {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bp.logger.Debug("processing site",
				"seed", seed,
				"index", i+1,
				"total", len(seeds),
			)

			result := model.NewCrawlResult(seed)

			p, err := bp.pipelineFactory(seed)
			if err != nil {
				bp.logger.Warn("failed to build pipeline", "seed", seed, "error", err)
				recordErr(err)
				return nil
			}

			err = p.Execute(gctx, result)

			// Store the result regardless of error; a partial crawl
			// still tells the user what was reached.
			bp.mu.Lock()
			bp.results[i] = result
			bp.mu.Unlock()

			if err != nil {
				bp.logger.Warn("site processing failed",
					"seed", seed,
					"error", err,
				)
				recordErr(err)
				return nil
			}

			bp.logger.Debug("site processing completed",
				"seed", seed,
				"pages", len(result.Records),
			)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		recordErr(err)
	}

	bp.logger.Debug("batch processing complete",
		"total_sites", len(seeds),
		"elapsed", time.Since(startTime),
	)

	return bp.results, firstErr
}
