package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/vaultpost/vaultpost/internal/app/sendmail"
	"github.com/vaultpost/vaultpost/internal/model"
)

type MailSendCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	to      string
	subject string
	body    string
	format  string
	watch   bool
}

// NewMailSendCommand returns the mail send command.
func NewMailSendCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *MailSendCommand {
	c := &MailSendCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("send", "Send a mail message.")
	c.Cmd.Flag("to", "Recipient address.").Required().StringVar(&c.to)
	c.Cmd.Flag("subject", "Message subject.").Required().StringVar(&c.subject)
	c.Cmd.Flag("body", "Message body.").StringVar(&c.body)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")
	c.Cmd.Flag("watch", "Show a progress bar while the send runs.").BoolVar(&c.watch)

	return c
}

func (c MailSendCommand) Name() string { return c.Cmd.FullCommand() }

func (c MailSendCommand) Run(ctx context.Context) error {
	env, err := newTaskEnv(c.rootCmd, c.format)
	if err != nil {
		return err
	}

	svc, err := sendmail.NewService(sendmail.ServiceConfig{
		Starter:   env.client,
		Poller:    env.poller,
		Bridge:    env.bridge,
		Refresher: env.refresher,
		Logger:    c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	req := sendmail.Request{
		To:      c.to,
		Subject: c.subject,
		Body:    c.body,
	}

	var bar *taskProgressBar
	if c.watch {
		bar = newTaskProgressBar("mail send")
		req.OnProgress = func(t model.Task) { bar.Update(t) }
	}

	res, err := svc.Run(ctx, req)
	if bar != nil {
		bar.Done(err == nil && res.OK)
	}
	if err != nil {
		return fmt.Errorf("could not send mail: %w", err)
	}
	if !res.OK {
		return fmt.Errorf("mail send did not complete: %w", res.Err)
	}

	return nil
}
