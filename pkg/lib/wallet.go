package lib

import (
	"context"
	"fmt"

	"github.com/vaultpost/vaultpost/internal/app/exportcoins"
	"github.com/vaultpost/vaultpost/internal/app/importcoins"
)

// ImportOpts are the options for [Client.ImportCoins].
type ImportOpts struct {
	// Paths are the coin files to import.
	Paths []string
	// OnProgress receives every non-terminal task snapshot, at most one per
	// poll tick. Optional.
	OnProgress func(Task)
}

// ImportCoins imports coin files into the wallet and tracks the resulting
// task to completion.
func (c *Client) ImportCoins(ctx context.Context, opts ImportOpts) (*TaskOutcome, error) {
	res, err := c.importSvc.Run(ctx, importcoins.Request{
		Paths:      opts.Paths,
		Wallet:     c.wallet,
		OnProgress: opts.OnProgress,
	})
	if err != nil {
		return nil, err
	}
	return &TaskOutcome{OK: res.OK, Event: res.Event, Task: res.Task, Err: res.Err}, nil
}

// ExportOpts are the options for [Client.ExportCoins].
type ExportOpts struct {
	// Amount is a whole-unit decimal amount of coins to export.
	Amount float64
	// Tag is an optional receipt tag.
	Tag string
	// OnProgress receives every non-terminal task snapshot. Optional.
	OnProgress func(Task)
}

// ExportCoins exports an amount of coins out of the wallet and tracks the
// resulting task to completion.
func (c *Client) ExportCoins(ctx context.Context, opts ExportOpts) (*TaskOutcome, error) {
	res, err := c.exportSvc.Run(ctx, exportcoins.Request{
		Amount:     opts.Amount,
		Wallet:     c.wallet,
		Tag:        opts.Tag,
		OnProgress: opts.OnProgress,
	})
	if err != nil {
		return nil, err
	}
	return &TaskOutcome{OK: res.OK, Event: res.Event, Task: res.Task, Err: res.Err}, nil
}

// WalletBalance reads the current wallet balance from the server.
func (c *Client) WalletBalance(ctx context.Context) (float64, error) {
	balance, err := c.api.WalletBalance(ctx, c.wallet)
	if err != nil {
		return 0, fmt.Errorf("could not get wallet balance: %w", err)
	}
	return balance, nil
}
