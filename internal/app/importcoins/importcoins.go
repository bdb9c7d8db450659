package importcoins

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

// ServiceConfig is the configuration for the import service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ImportCoins"})
	return nil
}

// Service submits coin file imports and tracks them to completion.
type Service struct {
	starter   server.Starter
	poller    *poll.Poller
	bridge    *notify.Bridge
	refresher frontend.Refresher
	logger    log.Logger
}

// NewService creates a new import service.
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

// Request are the import parameters.
type Request struct {
	// Paths are the coin files to import.
	Paths []string
	// Wallet is the destination wallet.
	Wallet string
	// OnProgress receives every non-terminal task snapshot, at most one
	// per poll tick. Optional.
	OnProgress func(model.Task)
}

// Result is the resolved outcome of an import. Exactly one notification has
// been published by the time Run returns.
type Result struct {
	OK    bool
	Event model.NotificationEvent
	// Task is the terminal task snapshot, nil when the server completed
	// the operation synchronously or it failed before reaching one.
	Task *model.Task
	// Err classifies the failure when OK is false.
	Err error
}

// Run validates, submits and polls one import. Validation failures are
// returned as an error before any network call; every other failure mode is
// folded into the result.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	mreq := model.ImportRequest{Paths: req.Paths, Wallet: req.Wallet}
	if err := mreq.Validate(); err != nil {
		s.bridge.Failed(ctx, model.TaskKindImport, err)
		return nil, err
	}

	start, err := s.starter.StartImport(ctx, mreq)
	if err != nil {
		event := s.bridge.Failed(ctx, model.TaskKindImport, err)
		return &Result{Event: event, Err: err}, nil
	}

	if !start.Async() {
		// The server finished synchronously, nothing to poll.
		event := s.bridge.SyncCompleted(ctx, model.TaskKindImport, start.Message)
		s.refreshWallet(ctx)
		return &Result{OK: true, Event: event}, nil
	}

	task, err := s.poller.PollUntilComplete(ctx, model.TaskKindImport, start.TaskID, req.OnProgress)
	if err != nil {
		event := s.bridge.Failed(ctx, model.TaskKindImport, err)
		return &Result{Event: event, Err: err}, nil
	}

	event := s.bridge.CompletedTask(ctx, *task)
	res := &Result{Event: event, Task: task}
	if task.State == model.TaskStateSuccess && task.Result != nil {
		res.OK = true
		s.logger.Infof("Imported %d coins (%d bank, %d fracked, %d counterfeit)",
			task.Result.TotalCoins(), task.Result.PownBank, task.Result.PownFracked, task.Result.PownCounterfeit)
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
