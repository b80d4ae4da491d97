// Package pipeline replays a loaded dataset to a downstream sink in batches.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/disaster-atlas/internal/domain"
	"github.com/couchcryptid/disaster-atlas/internal/observability"
)

const (
	defaultInitialBackoff = 200 * time.Millisecond
	defaultMaxBackoff     = 5 * time.Second
	defaultMaxAttempts    = 5
)

// BatchLoader writes multiple records to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, records []domain.DisasterRecord) error
}

// Replay publishes records through a BatchLoader, retrying failed batches
// with exponential backoff.
type Replay struct {
	loader    BatchLoader
	logger    *slog.Logger
	metrics   *observability.Metrics
	batchSize int

	initialBackoff time.Duration
	maxBackoff     time.Duration
	maxAttempts    int
}

// New creates a Replay. A non-positive batchSize sends everything in one batch.
func New(l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Replay {
	return &Replay{
		loader:         l,
		logger:         logger,
		metrics:        metrics,
		batchSize:      batchSize,
		initialBackoff: defaultInitialBackoff,
		maxBackoff:     defaultMaxBackoff,
		maxAttempts:    defaultMaxAttempts,
	}
}

// Run publishes records in file order and returns how many were written.
// It stops at the first batch that still fails after maxAttempts, or when
// ctx is cancelled.
func (p *Replay) Run(ctx context.Context, records []domain.DisasterRecord) (int, error) {
	size := p.batchSize
	if size <= 0 {
		size = len(records)
	}
	p.logger.Info("replay started", "records", len(records), "batch_size", size)
	p.metrics.PublishRunning.Set(1)
	defer p.metrics.PublishRunning.Set(0)

	published := 0
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		if err := p.loadWithRetry(ctx, records[start:end]); err != nil {
			p.logger.Error("replay aborted", "error", err, "published", published)
			return published, err
		}
		published += end - start
		p.metrics.RecordsPublished.Add(float64(end - start))
	}

	p.logger.Info("replay finished", "published", published)
	return published, nil
}

func (p *Replay) loadWithRetry(ctx context.Context, batch []domain.DisasterRecord) error {
	backoff := p.initialBackoff
	var err error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err = p.loader.LoadBatch(ctx, batch); err == nil {
			return nil
		}
		p.metrics.PublishErrors.Inc()
		p.logger.Warn("load batch failed",
			"error", err,
			"attempt", attempt,
			"batch_size", len(batch),
			"first_row", batch[0].Row,
		)
		if attempt == p.maxAttempts {
			break
		}
		if !sleepWithContext(ctx, backoff) {
			return ctx.Err()
		}
		backoff = nextBackoff(backoff, p.maxBackoff)
	}
	return fmt.Errorf("load batch starting at row %d: %w", batch[0].Row, err)
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
