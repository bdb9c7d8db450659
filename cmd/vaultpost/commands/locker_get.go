package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/vaultpost/vaultpost/internal/app/lockerget"
	"github.com/vaultpost/vaultpost/internal/model"
)

type LockerGetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	code   string
	format string
	watch  bool
}

// NewLockerGetCommand returns the locker get command.
func NewLockerGetCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *LockerGetCommand {
	c := &LockerGetCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("get", "Retrieve the coins held in a locker.")
	c.Cmd.Arg("code", "Locker code (e.g. XKM-29TQ).").Required().StringVar(&c.code)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")
	c.Cmd.Flag("watch", "Show a progress bar while the download runs.").BoolVar(&c.watch)

	return c
}

func (c LockerGetCommand) Name() string { return c.Cmd.FullCommand() }

func (c LockerGetCommand) Run(ctx context.Context) error {
	env, err := newTaskEnv(c.rootCmd, c.format)
	if err != nil {
		return err
	}

	svc, err := lockerget.NewService(lockerget.ServiceConfig{
		Starter:   env.client,
		Poller:    env.poller,
		Bridge:    env.bridge,
		Refresher: env.refresher,
		Logger:    c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	req := lockerget.Request{
		Code:   c.code,
		Wallet: env.cfg.Wallet,
	}

	var bar *taskProgressBar
	if c.watch {
		bar = newTaskProgressBar("locker get")
		req.OnProgress = func(t model.Task) { bar.Update(t) }
	}

	res, err := svc.Run(ctx, req)
	if bar != nil {
		bar.Done(err == nil && res.OK)
	}
	if err != nil {
		return fmt.Errorf("could not download from locker: %w", err)
	}
	if !res.OK {
		return fmt.Errorf("locker download did not complete: %w", res.Err)
	}

	return nil
}
