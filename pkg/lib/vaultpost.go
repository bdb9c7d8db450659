package lib

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/vaultpost/vaultpost/internal/app/exportcoins"
	"github.com/vaultpost/vaultpost/internal/app/importcoins"
	"github.com/vaultpost/vaultpost/internal/app/lockerget"
	"github.com/vaultpost/vaultpost/internal/app/lockerput"
	"github.com/vaultpost/vaultpost/internal/app/sendmail"
	"github.com/vaultpost/vaultpost/internal/frontend/term"
	"github.com/vaultpost/vaultpost/internal/log"
	"github.com/vaultpost/vaultpost/internal/notify"
	"github.com/vaultpost/vaultpost/internal/poll"
	"github.com/vaultpost/vaultpost/internal/server"
)

// Config configures the SDK client.
//
// All fields are optional and have sensible defaults. An empty Config{} talks
// to the default local server address with the "Default" wallet.
type Config struct {
	// ServerURL is the base URL of the local vaultpost server.
	// Default: "http://127.0.0.1:8006".
	ServerURL string

	// Wallet is the wallet operations act on.
	// Default: "Default".
	Wallet string

	// PollInterval is the wait between task status reads.
	// Default: 1s.
	PollInterval time.Duration

	// PollMaxAttempts bounds task polling. Zero (the default) polls until
	// the task settles or the context ends.
	PollMaxAttempts int

	// HTTPClient is the HTTP client used for all requests.
	// Default: a client with a 30s timeout.
	HTTPClient *http.Client

	// Notifier receives every notification event as it is produced.
	// Default: events are only available on the returned [TaskOutcome].
	Notifier Notifier

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Wallet == "" {
		c.Wallet = "Default"
	}
	if c.Notifier == nil {
		c.Notifier = noopNotifier{}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	return nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(_ context.Context, _ NotificationEvent) {}

// Client is the main SDK entry point for driving a vaultpost server
// programmatically.
//
// Create a Client with [New]. A Client is safe for concurrent use.
type Client struct {
	api       *server.HTTPClient
	wallet    string
	logger    log.Logger
	importSvc *importcoins.Service
	exportSvc *exportcoins.Service
	putSvc    *lockerput.Service
	getSvc    *lockerget.Service
	mailSvc   *sendmail.Service
}

// New creates a new SDK client.
func New(cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	api, err := server.NewHTTPClient(server.HTTPClientConfig{
		BaseURL:    cfg.ServerURL,
		HTTPClient: cfg.HTTPClient,
		Logger:     cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create server client: %w", err)
	}

	poller, err := poll.NewPoller(poll.PollerConfig{
		Fetcher:     api,
		Interval:    cfg.PollInterval,
		MaxAttempts: cfg.PollMaxAttempts,
		Logger:      cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create poller: %w", err)
	}

	bridge, err := notify.NewBridge(notify.BridgeConfig{
		Notifier: cfg.Notifier,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create notification bridge: %w", err)
	}

	refresher, err := term.NewRefresher(term.RefresherConfig{
		API:    api,
		Wallet: cfg.Wallet,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create refresher: %w", err)
	}

	c := &Client{
		api:    api,
		wallet: cfg.Wallet,
		logger: cfg.Logger,
	}

	c.importSvc, err = importcoins.NewService(importcoins.ServiceConfig{
		Starter: api, Poller: poller, Bridge: bridge, Refresher: refresher, Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create import service: %w", err)
	}

	c.exportSvc, err = exportcoins.NewService(exportcoins.ServiceConfig{
		Starter: api, Poller: poller, Bridge: bridge, Refresher: refresher, Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create export service: %w", err)
	}

	c.putSvc, err = lockerput.NewService(lockerput.ServiceConfig{
		Starter: api, Poller: poller, Bridge: bridge, Refresher: refresher, Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create locker upload service: %w", err)
	}

	c.getSvc, err = lockerget.NewService(lockerget.ServiceConfig{
		Starter: api, Poller: poller, Bridge: bridge, Refresher: refresher, Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create locker download service: %w", err)
	}

	c.mailSvc, err = sendmail.NewService(sendmail.ServiceConfig{
		Starter: api, Poller: poller, Bridge: bridge, Refresher: refresher, Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create mail service: %w", err)
	}

	return c, nil
}
