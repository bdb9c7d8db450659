package lib

import (
	"context"
	"fmt"

	"github.com/vaultpost/vaultpost/internal/app/sendmail"
)

// SendMailOpts are the options for [Client.SendMail].
type SendMailOpts struct {
	// To is the recipient address.
	To string
	// Subject is the message subject.
	Subject string
	// Body is the message body. Optional.
	Body string
	// OnProgress receives every non-terminal task snapshot. Optional.
	OnProgress func(Task)
}

// SendMail sends a mail message and tracks the resulting task to completion.
func (c *Client) SendMail(ctx context.Context, opts SendMailOpts) (*TaskOutcome, error) {
	res, err := c.mailSvc.Run(ctx, sendmail.Request{
		To:         opts.To,
		Subject:    opts.Subject,
		Body:       opts.Body,
		OnProgress: opts.OnProgress,
	})
	if err != nil {
		return nil, err
	}
	return &TaskOutcome{OK: res.OK, Event: res.Event, Task: res.Task, Err: res.Err}, nil
}

// MailCount reads the mailbox unread and total counts from the server.
func (c *Client) MailCount(ctx context.Context) (*MailCounts, error) {
	counts, err := c.api.MailCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get mail counts: %w", err)
	}
	return counts, nil
}
