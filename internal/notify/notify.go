// Package notify converts resolved task outcomes into user notifications.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/vaultpost/vaultpost/internal/frontend"
	"github.com/vaultpost/vaultpost/internal/log"
	"github.com/vaultpost/vaultpost/internal/model"
)

// Static fallback texts used when the server supplied no message of its own.
var (
	fallbackSuccess = map[model.TaskKind]string{
		model.TaskKindImport:         "Coins imported",
		model.TaskKindExport:         "Coins exported",
		model.TaskKindLockerUpload:   "Coins uploaded to locker",
		model.TaskKindLockerDownload: "Coins downloaded from locker",
		model.TaskKindSendMail:       "Mail sent",
	}
	fallbackFailure = map[model.TaskKind]string{
		model.TaskKindImport:         "Import failed",
		model.TaskKindExport:         "Export failed",
		model.TaskKindLockerUpload:   "Locker upload failed",
		model.TaskKindLockerDownload: "Locker download failed",
		model.TaskKindSendMail:       "Mail could not be sent",
	}
)

const parseFailureText = "The server returned an unexpected result, the operation outcome is unknown"

// BridgeConfig is the configuration for the notification bridge.
type BridgeConfig struct {
	Notifier frontend.Notifier
	Logger   log.Logger
}

func (c *BridgeConfig) defaults() error {
	if c.Notifier == nil {
		return fmt.Errorf("notifier is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "notify.Bridge"})
	return nil
}

// Bridge produces exactly one notification per completed user action. The
// message precedence is: server message on the terminal payload, then server
// error string, then the operation's static fallback text. It never
// fabricates a success message from an ambiguous payload.
type Bridge struct {
	notifier frontend.Notifier
	logger   log.Logger
}

// NewBridge creates a new notification bridge.
func NewBridge(cfg BridgeConfig) (*Bridge, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Bridge{notifier: cfg.Notifier, logger: cfg.Logger}, nil
}

// CompletedTask publishes the notification for a polled task that reached a
// terminal state.
func (b *Bridge) CompletedTask(ctx context.Context, task model.Task) model.NotificationEvent {
	var event model.NotificationEvent

	switch {
	case task.State.IsFailure():
		text := task.Message
		if text == "" {
			text = fallbackFailure[task.Kind]
		}
		event = model.NotificationEvent{
			Severity: model.SeverityError,
			Text:     text,
			Duration: model.DefaultErrorDuration,
		}

	case task.State == model.TaskStateSuccess && task.Result == nil:
		// An un-decodable success payload is a failure, never a guessed
		// success.
		event = model.NotificationEvent{
			Severity: model.SeverityError,
			Text:     parseFailureText,
			Duration: model.DefaultErrorDuration,
		}

	default:
		text := task.Message
		if text == "" {
			text = fallbackSuccess[task.Kind]
		}
		event = model.NotificationEvent{
			Severity: model.SeveritySuccess,
			Text:     text,
			Duration: model.DefaultSuccessDuration,
		}
	}

	b.publish(ctx, event)
	return event
}

// SyncCompleted publishes the notification for an operation the server
// finished synchronously, without a task.
func (b *Bridge) SyncCompleted(ctx context.Context, kind model.TaskKind, message string) model.NotificationEvent {
	if message == "" {
		message = fallbackSuccess[kind]
	}
	event := model.NotificationEvent{
		Severity: model.SeveritySuccess,
		Text:     message,
		Duration: model.DefaultSuccessDuration,
	}
	b.publish(ctx, event)
	return event
}

// Failed publishes the notification for an operation that never reached a
// terminal success: validation failures surface as warnings, everything else
// as errors.
func (b *Bridge) Failed(ctx context.Context, kind model.TaskKind, err error) model.NotificationEvent {
	var event model.NotificationEvent

	switch {
	case errors.Is(err, model.ErrNotValid):
		event = model.NotificationEvent{
			Severity: model.SeverityWarning,
			Text:     validationText(err),
			Duration: model.DefaultWarningDuration,
		}
	case errors.Is(err, model.ErrParse):
		event = model.NotificationEvent{
			Severity: model.SeverityError,
			Text:     parseFailureText,
			Duration: model.DefaultErrorDuration,
		}
	default:
		text := err.Error()
		if text == "" {
			text = fallbackFailure[kind]
		}
		event = model.NotificationEvent{
			Severity: model.SeverityError,
			Text:     text,
			Duration: model.DefaultErrorDuration,
		}
	}

	b.publish(ctx, event)
	return event
}

func (b *Bridge) publish(ctx context.Context, event model.NotificationEvent) {
	b.logger.Debugf("Notification (%s): %s", event.Severity, event.Text)
	b.notifier.Notify(ctx, event)
}

// validationText strips the sentinel suffix so the user sees only the
// human part of a validation error.
func validationText(err error) string {
	text := err.Error()
	suffix := ": " + model.ErrNotValid.Error()
	if len(text) > len(suffix) && text[len(text)-len(suffix):] == suffix {
		return text[:len(text)-len(suffix)]
	}
	return text
}
