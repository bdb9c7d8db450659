package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/vaultpost/vaultpost/internal/app/lockerput"
	"github.com/vaultpost/vaultpost/internal/model"
)

type LockerPutCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	amount float64
	code   string
	format string
	watch  bool
}

// NewLockerPutCommand returns the locker put command.
func NewLockerPutCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *LockerPutCommand {
	c := &LockerPutCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("put", "Place an amount of coins in a locker.")
	c.Cmd.Arg("amount", "Amount of coins to place in the locker.").Required().Float64Var(&c.amount)
	c.Cmd.Arg("code", "Locker code (e.g. XKM-29TQ).").Required().StringVar(&c.code)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")
	c.Cmd.Flag("watch", "Show a progress bar while the upload runs.").BoolVar(&c.watch)

	return c
}

func (c LockerPutCommand) Name() string { return c.Cmd.FullCommand() }

func (c LockerPutCommand) Run(ctx context.Context) error {
	env, err := newTaskEnv(c.rootCmd, c.format)
	if err != nil {
		return err
	}

	svc, err := lockerput.NewService(lockerput.ServiceConfig{
		Starter:   env.client,
		Poller:    env.poller,
		Bridge:    env.bridge,
		Refresher: env.refresher,
		Logger:    c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	req := lockerput.Request{
		Amount: c.amount,
		Code:   c.code,
		Wallet: env.cfg.Wallet,
	}

	var bar *taskProgressBar
	if c.watch {
		bar = newTaskProgressBar("locker put")
		req.OnProgress = func(t model.Task) { bar.Update(t) }
	}

	res, err := svc.Run(ctx, req)
	if bar != nil {
		bar.Done(err == nil && res.OK)
	}
	if err != nil {
		return fmt.Errorf("could not upload to locker: %w", err)
	}
	if !res.OK {
		return fmt.Errorf("locker upload did not complete: %w", res.Err)
	}

	return nil
}
