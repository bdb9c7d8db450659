package lib

import (
	"context"
	"fmt"

	"github.com/vaultpost/vaultpost/internal/app/lockerget"
	"github.com/vaultpost/vaultpost/internal/app/lockerput"
	"github.com/vaultpost/vaultpost/internal/model"
)

// LockerPutOpts are the options for [Client.LockerPut].
type LockerPutOpts struct {
	// Amount is a whole-unit decimal amount of coins to place in the locker.
	Amount float64
	// Code is the locker code. It is normalized to uppercase before
	// validation.
	Code string
	// OnProgress receives every non-terminal task snapshot. Optional.
	OnProgress func(Task)
}

// LockerPut places an amount of coins in a shared locker and tracks the
// resulting task to completion.
func (c *Client) LockerPut(ctx context.Context, opts LockerPutOpts) (*TaskOutcome, error) {
	res, err := c.putSvc.Run(ctx, lockerput.Request{
		Amount:     opts.Amount,
		Code:       opts.Code,
		Wallet:     c.wallet,
		OnProgress: opts.OnProgress,
	})
	if err != nil {
		return nil, err
	}
	return &TaskOutcome{OK: res.OK, Event: res.Event, Task: res.Task, Err: res.Err}, nil
}

// LockerGetOpts are the options for [Client.LockerGet].
type LockerGetOpts struct {
	// Code is the locker code. It is normalized to uppercase before
	// validation.
	Code string
	// OnProgress receives every non-terminal task snapshot. Optional.
	OnProgress func(Task)
}

// LockerGet retrieves the coins held in a shared locker into the wallet and
// tracks the resulting task to completion.
func (c *Client) LockerGet(ctx context.Context, opts LockerGetOpts) (*TaskOutcome, error) {
	res, err := c.getSvc.Run(ctx, lockerget.Request{
		Code:       opts.Code,
		Wallet:     c.wallet,
		OnProgress: opts.OnProgress,
	})
	if err != nil {
		return nil, err
	}
	return &TaskOutcome{OK: res.OK, Event: res.Event, Task: res.Task, Err: res.Err}, nil
}

// NewLockerCode generates a fresh random locker code using the unambiguous
// code alphabet.
func (c *Client) NewLockerCode() (string, error) {
	code, err := model.GenerateLockerCode()
	if err != nil {
		return "", fmt.Errorf("could not generate locker code: %w", err)
	}
	return code, nil
}
