// Package term implements the frontend boundary for a terminal shell:
// notifications go to a printer, the dashboard state is kept in memory and
// rendered on demand.
package term

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vaultpost/vaultpost/internal/frontend"
	"github.com/vaultpost/vaultpost/internal/log"
	"github.com/vaultpost/vaultpost/internal/model"
	"github.com/vaultpost/vaultpost/internal/printer"
	"github.com/vaultpost/vaultpost/internal/server"
)

// NotifierConfig is the configuration for the terminal notifier.
type NotifierConfig struct {
	Printer printer.Printer
	Logger  log.Logger
}

func (c *NotifierConfig) defaults() error {
	if c.Printer == nil {
		return fmt.Errorf("printer is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	return nil
}

// Notifier renders notification events as printer lines. A terminal has no
// auto-expiring toasts, so the event duration is ignored.
type Notifier struct {
	printer printer.Printer
	logger  log.Logger
}

// NewNotifier creates a new terminal notifier.
func NewNotifier(cfg NotifierConfig) (*Notifier, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Notifier{printer: cfg.Printer, logger: cfg.Logger}, nil
}

// Notify satisfies frontend.Notifier.
func (n *Notifier) Notify(_ context.Context, event model.NotificationEvent) {
	if err := n.printer.PrintNotification(event); err != nil {
		n.logger.Errorf("Could not print notification: %v", err)
	}
}

// StatusSink keeps the dashboard state in memory. Writes are last-write-wins
// by arrival order; every write stamps the update time.
type StatusSink struct {
	mu    sync.Mutex
	state frontend.DashboardState

	now func() time.Time
}

// NewStatusSink creates a new in-memory status sink.
func NewStatusSink() *StatusSink {
	return &StatusSink{now: time.Now}
}

// SetConnected satisfies frontend.StatusSink.
func (s *StatusSink) SetConnected(connected bool, serverVersion string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Connected = connected
	s.state.ServerVersion = serverVersion
	s.state.UpdatedAt = s.now()
}

// SetMailReachable satisfies frontend.StatusSink.
func (s *StatusSink) SetMailReachable(reachable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.MailReachable = reachable
	s.state.UpdatedAt = s.now()
}

// SetWalletBalance satisfies frontend.StatusSink.
func (s *StatusSink) SetWalletBalance(balance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.HasBalance = true
	s.state.Balance = balance
	s.state.UpdatedAt = s.now()
}

// SetMailCounts satisfies frontend.StatusSink.
func (s *StatusSink) SetMailCounts(unread, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.HasMailCounts = true
	s.state.MailUnread = unread
	s.state.MailTotal = total
	s.state.UpdatedAt = s.now()
}

// Snapshot returns a copy of the current dashboard state.
func (s *StatusSink) Snapshot() frontend.DashboardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RefresherConfig is the configuration for the terminal refresher.
type RefresherConfig struct {
	API server.Heartbeat
	// Wallet is the wallet the balance refresh reads.
	Wallet string
	// Sink receives refreshed values. Optional.
	Sink   frontend.StatusSink
	Logger log.Logger
}

func (c *RefresherConfig) defaults() error {
	if c.API == nil {
		return fmt.Errorf("heartbeat api is required")
	}
	if c.Wallet == "" {
		return fmt.Errorf("wallet is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "term.Refresher"})
	return nil
}

// Refresher reloads the wallet balance and mailbox summaries from the server
// after a task resolves, feeding the sink when one is attached.
type Refresher struct {
	api    server.Heartbeat
	wallet string
	sink   frontend.StatusSink
	logger log.Logger
}

// NewRefresher creates a new terminal refresher.
func NewRefresher(cfg RefresherConfig) (*Refresher, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Refresher{
		api:    cfg.API,
		wallet: cfg.Wallet,
		sink:   cfg.Sink,
		logger: cfg.Logger,
	}, nil
}

// RefreshWalletBalance satisfies frontend.Refresher.
func (r *Refresher) RefreshWalletBalance(ctx context.Context) error {
	balance, err := r.api.WalletBalance(ctx, r.wallet)
	if err != nil {
		return fmt.Errorf("could not refresh wallet balance: %w", err)
	}

	r.logger.Debugf("Wallet balance refreshed: %.2f", balance)
	if r.sink != nil {
		r.sink.SetWalletBalance(balance)
	}
	return nil
}

// RefreshMailbox satisfies frontend.Refresher.
func (r *Refresher) RefreshMailbox(ctx context.Context) error {
	counts, err := r.api.MailCount(ctx)
	if err != nil {
		return fmt.Errorf("could not refresh mailbox: %w", err)
	}

	r.logger.Debugf("Mailbox refreshed: %d unread / %d total", counts.Unread, counts.Total)
	if r.sink != nil {
		r.sink.SetMailCounts(counts.Unread, counts.Total)
	}
	return nil
}
