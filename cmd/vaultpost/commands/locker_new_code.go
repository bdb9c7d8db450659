package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/vaultpost/vaultpost/internal/model"
)

type LockerNewCodeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewLockerNewCodeCommand returns the locker new-code command.
func NewLockerNewCodeCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *LockerNewCodeCommand {
	c := &LockerNewCodeCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("new-code", "Generate a fresh random locker code.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c LockerNewCodeCommand) Name() string { return c.Cmd.FullCommand() }

func (c LockerNewCodeCommand) Run(_ context.Context) error {
	code, err := model.GenerateLockerCode()
	if err != nil {
		return fmt.Errorf("could not generate locker code: %w", err)
	}

	p := newPrinter(c.rootCmd, c.format)
	if err := p.PrintMessage(code); err != nil {
		return fmt.Errorf("could not print locker code: %w", err)
	}

	return nil
}
