package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/vaultpost/vaultpost/internal/app/importcoins"
	"github.com/vaultpost/vaultpost/internal/model"
)

type ImportCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	paths  []string
	format string
	watch  bool
}

// NewImportCommand returns the import command.
func NewImportCommand(rootCmd *RootCommand, app *kingpin.Application) *ImportCommand {
	c := &ImportCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("import", "Import coin files into the wallet.")
	c.Cmd.Arg("path", "Coin file to import (repeatable).").Required().StringsVar(&c.paths)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")
	c.Cmd.Flag("watch", "Show a progress bar while the import runs.").BoolVar(&c.watch)

	return c
}

func (c ImportCommand) Name() string { return c.Cmd.FullCommand() }

func (c ImportCommand) Run(ctx context.Context) error {
	env, err := newTaskEnv(c.rootCmd, c.format)
	if err != nil {
		return err
	}

	svc, err := importcoins.NewService(importcoins.ServiceConfig{
		Starter:   env.client,
		Poller:    env.poller,
		Bridge:    env.bridge,
		Refresher: env.refresher,
		Logger:    c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	req := importcoins.Request{
		Paths:  c.paths,
		Wallet: env.cfg.Wallet,
	}

	var bar *taskProgressBar
	if c.watch {
		bar = newTaskProgressBar("import")
		req.OnProgress = func(t model.Task) { bar.Update(t) }
	}

	res, err := svc.Run(ctx, req)
	if bar != nil {
		bar.Done(err == nil && res.OK)
	}
	if err != nil {
		return fmt.Errorf("could not import coins: %w", err)
	}
	if !res.OK {
		return fmt.Errorf("import did not complete: %w", res.Err)
	}

	return nil
}
