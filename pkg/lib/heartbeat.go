package lib

import (
	"context"
	"fmt"
	"time"

	"github.com/vaultpost/vaultpost/internal/heartbeat"
)

// HeartbeatOpts tune the periodic probe intervals. Zero values use the
// defaults (health 30s, mail ping 60s, mail count 60s, balance 120s).
type HeartbeatOpts struct {
	HealthInterval    time.Duration
	MailPingInterval  time.Duration
	MailCountInterval time.Duration
	BalanceInterval   time.Duration
}

// Health reads the server health summary once.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	status, err := c.api.Health(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get server health: %w", err)
	}
	return status, nil
}

// RunHeartbeat blocks running the periodic connectivity and summary probes,
// feeding sink until the context is cancelled. Probe failures are reflected
// into the sink and never stop the loop.
func (c *Client) RunHeartbeat(ctx context.Context, sink StatusSink, opts *HeartbeatOpts) error {
	if opts == nil {
		opts = &HeartbeatOpts{}
	}

	runner, err := heartbeat.NewRunner(heartbeat.RunnerConfig{
		API:               c.api,
		Sink:              sink,
		Wallet:            c.wallet,
		HealthInterval:    opts.HealthInterval,
		MailPingInterval:  opts.MailPingInterval,
		MailCountInterval: opts.MailCountInterval,
		BalanceInterval:   opts.BalanceInterval,
		Logger:            c.logger,
	})
	if err != nil {
		return fmt.Errorf("could not create heartbeat runner: %w", err)
	}

	return runner.Run(ctx)
}
