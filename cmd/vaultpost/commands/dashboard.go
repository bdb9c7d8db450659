package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"

	"github.com/vaultpost/vaultpost/internal/frontend/term"
	"github.com/vaultpost/vaultpost/internal/heartbeat"
	"github.com/vaultpost/vaultpost/internal/server"
)

type DashboardCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	refresh time.Duration
	format  string
}

// NewDashboardCommand returns the dashboard command.
func NewDashboardCommand(rootCmd *RootCommand, app *kingpin.Application) *DashboardCommand {
	c := &DashboardCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("dashboard", "Show live server, wallet and mailbox status.")
	c.Cmd.Flag("refresh", "How often the dashboard is re-rendered.").Default("5s").DurationVar(&c.refresh)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c DashboardCommand) Name() string { return c.Cmd.FullCommand() }

func (c DashboardCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.rootCmd.LoadConfig()
	if err != nil {
		return err
	}

	client, err := server.NewHTTPClient(server.HTTPClientConfig{
		BaseURL: cfg.ServerURL,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create server client: %w", err)
	}

	sink := term.NewStatusSink()

	runner, err := heartbeat.NewRunner(heartbeat.RunnerConfig{
		API:               client,
		Sink:              sink,
		Wallet:            cfg.Wallet,
		HealthInterval:    cfg.Heartbeat.Health,
		MailPingInterval:  cfg.Heartbeat.MailPing,
		MailCountInterval: cfg.Heartbeat.MailCount,
		BalanceInterval:   cfg.Heartbeat.Balance,
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("could not create heartbeat runner: %w", err)
	}

	p := newPrinter(c.rootCmd, c.format)

	// Run heartbeat probes and the render loop until the context ends.
	var g run.Group

	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				return runner.Run(ctx)
			},
			func(_ error) {
				cancel()
			},
		)
	}

	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				ticker := time.NewTicker(c.refresh)
				defer ticker.Stop()

				for {
					if err := p.PrintDashboard(sink.Snapshot()); err != nil {
						return fmt.Errorf("could not print dashboard: %w", err)
					}

					select {
					case <-ctx.Done():
						return nil
					case <-ticker.C:
					}
				}
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}
