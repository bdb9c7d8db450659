package sendmail

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

// ServiceConfig is the configuration for the send mail service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.SendMail"})
	return nil
}

// Service submits outgoing mail and tracks the send to completion.
type Service struct {
	starter   server.Starter
	poller    *poll.Poller
	bridge    *notify.Bridge
	refresher frontend.Refresher
	logger    log.Logger
}

// NewService creates a new send mail service.
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

// Request are the mail parameters.
type Request struct {
	To      string
	Subject string
	Body    string
	// OnProgress receives every non-terminal task snapshot. Optional.
	OnProgress func(model.Task)
}

// Result is the resolved outcome of a mail send.
type Result struct {
	OK    bool
	Event model.NotificationEvent
	Task  *model.Task
	Err   error
}

// Run validates, submits and polls one mail send. On success the mailbox
// view is refreshed, not the wallet.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	mreq := model.SendMailRequest{To: req.To, Subject: req.Subject, Body: req.Body}
	if err := mreq.Validate(); err != nil {
		s.bridge.Failed(ctx, model.TaskKindSendMail, err)
		return nil, err
	}

	start, err := s.starter.StartSendMail(ctx, mreq)
	if err != nil {
		event := s.bridge.Failed(ctx, model.TaskKindSendMail, err)
		return &Result{Event: event, Err: err}, nil
	}

	if !start.Async() {
		event := s.bridge.SyncCompleted(ctx, model.TaskKindSendMail, start.Message)
		s.refreshMailbox(ctx)
		return &Result{OK: true, Event: event}, nil
	}

	task, err := s.poller.PollUntilComplete(ctx, model.TaskKindSendMail, start.TaskID, req.OnProgress)
	if err != nil {
		event := s.bridge.Failed(ctx, model.TaskKindSendMail, err)
		return &Result{Event: event, Err: err}, nil
	}

	event := s.bridge.CompletedTask(ctx, *task)
	res := &Result{Event: event, Task: task}
	if task.State == model.TaskStateSuccess && task.Result != nil {
		res.OK = true
		s.logger.Infof("Mail sent, receipt %s", task.Result.ReceiptID)
		s.refreshMailbox(ctx)
	} else {
		res.Err = fmt.Errorf("%s: %w", task.Message, model.ErrServerFailure)
	}

	return res, nil
}

func (s *Service) refreshMailbox(ctx context.Context) {
	if err := s.refresher.RefreshMailbox(ctx); err != nil {
		s.logger.Warningf("Could not refresh mailbox: %v", err)
	}
}
