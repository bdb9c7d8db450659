// Package heartbeat runs the task-less periodic refresh loops that feed the
// dashboard: health, mail ping, mail counts and wallet balance.
package heartbeat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vaultpost/vaultpost/internal/frontend"
	"github.com/vaultpost/vaultpost/internal/log"
	"github.com/vaultpost/vaultpost/internal/server"
)

// Default tick intervals per probe.
const (
	DefaultHealthInterval    = 30 * time.Second
	DefaultMailPingInterval  = 60 * time.Second
	DefaultMailCountInterval = 60 * time.Second
	DefaultBalanceInterval   = 120 * time.Second
)

// RunnerConfig is the configuration for the heartbeat runner.
type RunnerConfig struct {
	API  server.Heartbeat
	Sink frontend.StatusSink
	// Wallet is the wallet whose balance the balance probe refreshes, on
	// the wallet-path axis (conversion is handled by the server client).
	Wallet string

	HealthInterval    time.Duration
	MailPingInterval  time.Duration
	MailCountInterval time.Duration
	BalanceInterval   time.Duration

	Logger log.Logger
}

func (c *RunnerConfig) defaults() error {
	if c.API == nil {
		return fmt.Errorf("heartbeat api is required")
	}
	if c.Sink == nil {
		return fmt.Errorf("status sink is required")
	}
	if c.Wallet == "" {
		return fmt.Errorf("wallet is required")
	}
	if c.HealthInterval <= 0 {
		c.HealthInterval = DefaultHealthInterval
	}
	if c.MailPingInterval <= 0 {
		c.MailPingInterval = DefaultMailPingInterval
	}
	if c.MailCountInterval <= 0 {
		c.MailCountInterval = DefaultMailCountInterval
	}
	if c.BalanceInterval <= 0 {
		c.BalanceInterval = DefaultBalanceInterval
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "heartbeat.Runner"})
	return nil
}

// Runner ticks every probe on its own timer for the lifetime of the owning
// view. Timers are independent and may overlap each other, but a single
// timer never overlaps itself: the next tick is scheduled only after the
// previous call settled and updated the sink. A failed tick is logged and
// reflected into the sink, never raised, and never stops the loop.
type Runner struct {
	api    server.Heartbeat
	sink   frontend.StatusSink
	wallet string

	healthInterval    time.Duration
	mailPingInterval  time.Duration
	mailCountInterval time.Duration
	balanceInterval   time.Duration

	logger log.Logger
}

// NewRunner creates a new heartbeat runner.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Runner{
		api:               cfg.API,
		sink:              cfg.Sink,
		wallet:            cfg.Wallet,
		healthInterval:    cfg.HealthInterval,
		mailPingInterval:  cfg.MailPingInterval,
		mailCountInterval: cfg.MailCountInterval,
		balanceInterval:   cfg.BalanceInterval,
		logger:            cfg.Logger,
	}, nil
}

// Run blocks ticking all probes until the context is cancelled. The first
// tick of every probe fires immediately so the dashboard is populated
// without waiting a full interval.
func (r *Runner) Run(ctx context.Context) error {
	probes := []struct {
		name     string
		interval time.Duration
		tick     func(context.Context)
	}{
		{name: "health", interval: r.healthInterval, tick: r.tickHealth},
		{name: "mail-ping", interval: r.mailPingInterval, tick: r.tickMailPing},
		{name: "mail-count", interval: r.mailCountInterval, tick: r.tickMailCount},
		{name: "balance", interval: r.balanceInterval, tick: r.tickBalance},
	}

	var wg sync.WaitGroup
	for _, p := range probes {
		wg.Add(1)
		go func(name string, interval time.Duration, tick func(context.Context)) {
			defer wg.Done()
			r.loop(ctx, name, interval, tick)
		}(p.name, p.interval, p.tick)
	}
	wg.Wait()

	return nil
}

func (r *Runner) loop(ctx context.Context, name string, interval time.Duration, tick func(context.Context)) {
	for {
		if ctx.Err() != nil {
			return
		}
		tick(ctx)

		// Rescheduling only after the tick settled keeps one timer from
		// overlapping itself.
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (r *Runner) tickHealth(ctx context.Context) {
	health, err := r.api.Health(ctx)
	if err != nil {
		r.logger.Debugf("Health tick failed: %v", err)
		r.sink.SetConnected(false, "")
		return
	}
	r.sink.SetConnected(health.Ready, health.Version)
}

func (r *Runner) tickMailPing(ctx context.Context) {
	if err := r.api.MailPing(ctx); err != nil {
		r.logger.Debugf("Mail ping tick failed: %v", err)
		r.sink.SetMailReachable(false)
		return
	}
	r.sink.SetMailReachable(true)
}

func (r *Runner) tickMailCount(ctx context.Context) {
	counts, err := r.api.MailCount(ctx)
	if err != nil {
		r.logger.Debugf("Mail count tick failed: %v", err)
		return
	}
	r.sink.SetMailCounts(counts.Unread, counts.Total)
}

func (r *Runner) tickBalance(ctx context.Context) {
	balance, err := r.api.WalletBalance(ctx, r.wallet)
	if err != nil {
		r.logger.Debugf("Balance tick failed: %v", err)
		return
	}
	r.sink.SetWalletBalance(balance)
}
