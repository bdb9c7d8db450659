// Package poll drives repeated task status reads until a terminal state, a
// caller-supplied bound or a context cancellation ends the session.
package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/vaultpost/vaultpost/internal/log"
	"github.com/vaultpost/vaultpost/internal/model"
)

// DefaultInterval is the wait between two status reads when none is set.
const DefaultInterval = time.Second

// StatusFetcher issues exactly one status read for a task. Implementations
// never retry internally; retry policy belongs to the poller.
type StatusFetcher interface {
	TaskStatus(ctx context.Context, kind model.TaskKind, id string) (*model.Task, error)
}

// PollerConfig is the configuration for the poller.
type PollerConfig struct {
	Fetcher StatusFetcher
	// Interval is the wait between status reads.
	Interval time.Duration
	// MaxAttempts bounds the number of status reads. Zero means unbounded
	// except by context cancellation.
	MaxAttempts int
	Logger      log.Logger
}

func (c *PollerConfig) defaults() error {
	if c.Fetcher == nil {
		return fmt.Errorf("status fetcher is required")
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval must be positive")
	}
	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max attempts cannot be negative")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "poll.Poller"})
	return nil
}

// Poller polls one task at a fixed cadence. It holds no per-session state,
// so a single poller can serve any number of interleaved sessions.
type Poller struct {
	fetcher     StatusFetcher
	interval    time.Duration
	maxAttempts int
	logger      log.Logger
}

// NewPoller creates a new poller.
func NewPoller(cfg PollerConfig) (*Poller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Poller{
		fetcher:     cfg.Fetcher,
		interval:    cfg.Interval,
		maxAttempts: cfg.MaxAttempts,
		logger:      cfg.Logger,
	}, nil
}

// PollUntilComplete reads the task status on the configured interval until a
// terminal state is observed and returns the terminal snapshot.
//
// Guarantees: onProgress runs at most once per tick, strictly before the
// wait; status reads for one session never overlap; the call resolves
// exactly once. A single fetch failure aborts the whole session, a broken
// status channel cannot be trusted to heal within it. Exceeding MaxAttempts
// returns a model.ErrTimeout whose text reports the elapsed bound; the
// server-side task keeps running, the protocol has no cancel primitive.
func (p *Poller) PollUntilComplete(ctx context.Context, kind model.TaskKind, taskID string, onProgress func(model.Task)) (*model.Task, error) {
	if taskID == "" {
		return nil, fmt.Errorf("task id is required: %w", model.ErrNotValid)
	}

	attempts := 0
	for {
		task, err := p.fetcher.TaskStatus(ctx, kind, taskID)
		if err != nil {
			return nil, fmt.Errorf("status read %d for task %s failed: %w", attempts+1, taskID, err)
		}
		attempts++

		if task.State.IsTerminal() {
			p.logger.Debugf("Task %s reached %s after %d reads", taskID, task.State, attempts)
			return task, nil
		}

		if p.maxAttempts > 0 && attempts >= p.maxAttempts {
			elapsed := time.Duration(attempts) * p.interval
			return nil, fmt.Errorf("task %s not terminal after %d attempts (%s): %w", taskID, attempts, elapsed, model.ErrTimeout)
		}

		if onProgress != nil {
			onProgress(*task)
		}

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
