package exportcoins

import (
	"context"
	"fmt"

	"github.com/vaultpost/vaultpost/internal/frontend"
	"github.com/vaultpost/vaultpost/internal/log"
	"github.com/vaultpost/vaultpost/internal/model"
	"github.com/vaultpost/vaultpost/internal/notify"
	"github.com/vaultpost/vaultpost/internal/poll"
	"github.com/vaultpost/vaultpost/internal/server"
)

// ServiceConfig is the configuration for the export service.
type ServiceConfig struct {
	Starter   server.Starter
	Poller    *poll.Poller
	Bridge    *notify.Bridge
	Refresher frontend.Refresher
	Logger    log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Starter == nil {
		return fmt.Errorf("starter is required")
	}
	if c.Poller == nil {
		return fmt.Errorf("poller is required")
	}
	if c.Bridge == nil {
		return fmt.Errorf("notification bridge is required")
	}
	if c.Refresher == nil {
		return fmt.Errorf("refresher is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ExportCoins"})
	return nil
}

// Service submits coin exports and tracks them to completion.
type Service struct {
	starter   server.Starter
	poller    *poll.Poller
	bridge    *notify.Bridge
	refresher frontend.Refresher
	logger    log.Logger
}

// NewService creates a new export service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		starter:   cfg.Starter,
		poller:    cfg.Poller,
		bridge:    cfg.Bridge,
		refresher: cfg.Refresher,
		logger:    cfg.Logger,
	}, nil
}

// Request are the export parameters.
type Request struct {
	// Amount is a whole-unit decimal amount of coins to export.
	Amount float64
	// Wallet is the source wallet.
	Wallet string
	// Tag is an optional receipt tag.
	Tag string
	// OnProgress receives every non-terminal task snapshot. Optional.
	OnProgress func(model.Task)
}

// Result is the resolved outcome of an export.
type Result struct {
	OK    bool
	Event model.NotificationEvent
	Task  *model.Task
	Err   error
}

// Run validates, submits and polls one export.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	mreq := model.ExportRequest{Amount: req.Amount, Wallet: req.Wallet, Tag: req.Tag}
	if err := mreq.Validate(); err != nil {
		s.bridge.Failed(ctx, model.TaskKindExport, err)
		return nil, err
	}

	start, err := s.starter.StartExport(ctx, mreq)
	if err != nil {
		event := s.bridge.Failed(ctx, model.TaskKindExport, err)
		return &Result{Event: event, Err: err}, nil
	}

	if !start.Async() {
		event := s.bridge.SyncCompleted(ctx, model.TaskKindExport, start.Message)
		s.refreshWallet(ctx)
		return &Result{OK: true, Event: event}, nil
	}

	task, err := s.poller.PollUntilComplete(ctx, model.TaskKindExport, start.TaskID, req.OnProgress)
	if err != nil {
		event := s.bridge.Failed(ctx, model.TaskKindExport, err)
		return &Result{Event: event, Err: err}, nil
	}

	event := s.bridge.CompletedTask(ctx, *task)
	res := &Result{Event: event, Task: task}
	if task.State == model.TaskStateSuccess && task.Result != nil {
		res.OK = true
		s.logger.Infof("Exported %.2f coins", task.Result.Amount)
		s.refreshWallet(ctx)
	} else {
		res.Err = fmt.Errorf("%s: %w", task.Message, model.ErrServerFailure)
	}

	return res, nil
}

func (s *Service) refreshWallet(ctx context.Context) {
	if err := s.refresher.RefreshWalletBalance(ctx); err != nil {
		s.logger.Warningf("Could not refresh wallet balance: %v", err)
	}
}
