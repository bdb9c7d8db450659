package commands

import (
	"fmt"

	"github.com/vaultpost/vaultpost/internal/config"
	"github.com/vaultpost/vaultpost/internal/frontend/term"
	"github.com/vaultpost/vaultpost/internal/notify"
	"github.com/vaultpost/vaultpost/internal/poll"
	"github.com/vaultpost/vaultpost/internal/printer"
	"github.com/vaultpost/vaultpost/internal/server"
)

// taskEnv is the wired set of collaborators every task-submitting command
// needs: the server client, the poller, the notification bridge and the
// refresher. Commands build one per run.
type taskEnv struct {
	cfg       *config.Config
	client    *server.HTTPClient
	poller    *poll.Poller
	bridge    *notify.Bridge
	refresher *term.Refresher
	printer   printer.Printer
}

// newTaskEnv wires the common task-submission collaborators from the root
// command and the configuration file.
func newTaskEnv(rootCmd *RootCommand, format string) (*taskEnv, error) {
	logger := rootCmd.Logger

	cfg, err := rootCmd.LoadConfig()
	if err != nil {
		return nil, err
	}

	client, err := server.NewHTTPClient(server.HTTPClientConfig{
		BaseURL: cfg.ServerURL,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create server client: %w", err)
	}

	poller, err := poll.NewPoller(poll.PollerConfig{
		Fetcher:     client,
		Interval:    cfg.PollInterval,
		MaxAttempts: cfg.PollMaxAttempts,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create poller: %w", err)
	}

	p := newPrinter(rootCmd, format)

	notifier, err := term.NewNotifier(term.NotifierConfig{
		Printer: p,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create notifier: %w", err)
	}

	bridge, err := notify.NewBridge(notify.BridgeConfig{
		Notifier: notifier,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create notification bridge: %w", err)
	}

	refresher, err := term.NewRefresher(term.RefresherConfig{
		API:    client,
		Wallet: cfg.Wallet,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create refresher: %w", err)
	}

	return &taskEnv{
		cfg:       cfg,
		client:    client,
		poller:    poller,
		bridge:    bridge,
		refresher: refresher,
		printer:   p,
	}, nil
}

// newPrinter returns the printer for the selected output format.
func newPrinter(rootCmd *RootCommand, format string) printer.Printer {
	switch format {
	case "json":
		return printer.NewJSONPrinter(rootCmd.Stdout)
	default: // table
		return printer.NewTablePrinter(rootCmd.Stdout)
	}
}
