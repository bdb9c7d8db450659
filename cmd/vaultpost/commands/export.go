package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/vaultpost/vaultpost/internal/app/exportcoins"
	"github.com/vaultpost/vaultpost/internal/model"
)

type ExportCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	amount float64
	tag    string
	format string
	watch  bool
}

// NewExportCommand returns the export command.
func NewExportCommand(rootCmd *RootCommand, app *kingpin.Application) *ExportCommand {
	c := &ExportCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("export", "Export an amount of coins out of the wallet.")
	c.Cmd.Arg("amount", "Amount of coins to export.").Required().Float64Var(&c.amount)
	c.Cmd.Flag("tag", "Optional tag recorded on the export receipt.").StringVar(&c.tag)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")
	c.Cmd.Flag("watch", "Show a progress bar while the export runs.").BoolVar(&c.watch)

	return c
}

func (c ExportCommand) Name() string { return c.Cmd.FullCommand() }

func (c ExportCommand) Run(ctx context.Context) error {
	env, err := newTaskEnv(c.rootCmd, c.format)
	if err != nil {
		return err
	}

	svc, err := exportcoins.NewService(exportcoins.ServiceConfig{
		Starter:   env.client,
		Poller:    env.poller,
		Bridge:    env.bridge,
		Refresher: env.refresher,
		Logger:    c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	req := exportcoins.Request{
		Amount: c.amount,
		Wallet: env.cfg.Wallet,
		Tag:    c.tag,
	}

	var bar *taskProgressBar
	if c.watch {
		bar = newTaskProgressBar("export")
		req.OnProgress = func(t model.Task) { bar.Update(t) }
	}

	res, err := svc.Run(ctx, req)
	if bar != nil {
		bar.Done(err == nil && res.OK)
	}
	if err != nil {
		return fmt.Errorf("could not export coins: %w", err)
	}
	if !res.OK {
		return fmt.Errorf("export did not complete: %w", res.Err)
	}

	return nil
}
