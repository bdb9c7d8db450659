package lockerget

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

// ServiceConfig is the configuration for the locker download service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.LockerGet"})
	return nil
}

// Service claims the contents of a locker and tracks the transfer to
// completion.
type Service struct {
	starter   server.Starter
	poller    *poll.Poller
	bridge    *notify.Bridge
	refresher frontend.Refresher
	logger    log.Logger
}

// NewService creates a new locker download service.
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

// Request are the locker download parameters.
type Request struct {
	// Code is the locker code, normalized to uppercase before validation.
	Code string
	// Wallet is the destination wallet.
	Wallet string
	// OnProgress receives every non-terminal task snapshot. Optional.
	OnProgress func(model.Task)
}

// Result is the resolved outcome of a locker download.
type Result struct {
	OK    bool
	Event model.NotificationEvent
	Task  *model.Task
	Err   error
}

// Run validates, submits and polls one locker download.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	mreq := model.LockerDownloadRequest{Code: req.Code, Wallet: req.Wallet}
	if err := mreq.Validate(); err != nil {
		s.bridge.Failed(ctx, model.TaskKindLockerDownload, err)
		return nil, err
	}

	start, err := s.starter.StartLockerDownload(ctx, mreq)
	if err != nil {
		event := s.bridge.Failed(ctx, model.TaskKindLockerDownload, err)
		return &Result{Event: event, Err: err}, nil
	}

	if !start.Async() {
		event := s.bridge.SyncCompleted(ctx, model.TaskKindLockerDownload, start.Message)
		s.refreshWallet(ctx)
		return &Result{OK: true, Event: event}, nil
	}

	task, err := s.poller.PollUntilComplete(ctx, model.TaskKindLockerDownload, start.TaskID, req.OnProgress)
	if err != nil {
		event := s.bridge.Failed(ctx, model.TaskKindLockerDownload, err)
		return &Result{Event: event, Err: err}, nil
	}

	event := s.bridge.CompletedTask(ctx, *task)
	res := &Result{Event: event, Task: task}
	if task.State == model.TaskStateSuccess && task.Result != nil {
		res.OK = true
		s.logger.Infof("Locker download complete, received %.2f coins", task.Result.Amount)
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
