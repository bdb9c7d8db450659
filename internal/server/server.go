// Package server is the boundary with the external vaultpost server process.
// Everything durable (wallets, lockers, mailboxes) lives on the other side of
// this boundary; the client only starts operations, polls task status and
// reads heartbeat summaries.
package server

import (
	"context"

	"github.com/vaultpost/vaultpost/internal/model"
)

// StartResult is the outcome of a start-operation call. A non-empty TaskID
// means the server accepted the operation asynchronously and it must be
// polled. An empty TaskID means the operation already completed
// synchronously and polling must be skipped.
type StartResult struct {
	TaskID  string
	Message string
}

// Async reports whether the operation needs polling.
func (r StartResult) Async() bool { return r.TaskID != "" }

// Starter exposes the one-shot start endpoints, one per operation kind.
// Implementations never poll: a start failure is returned immediately and
// must keep the poller out of the picture.
type Starter interface {
	StartImport(ctx context.Context, req model.ImportRequest) (*StartResult, error)
	StartExport(ctx context.Context, req model.ExportRequest) (*StartResult, error)
	StartLockerUpload(ctx context.Context, req model.LockerUploadRequest) (*StartResult, error)
	StartLockerDownload(ctx context.Context, req model.LockerDownloadRequest) (*StartResult, error)
	StartSendMail(ctx context.Context, req model.SendMailRequest) (*StartResult, error)
}

// StatusGetter reads the current state of one task. It issues exactly one
// request per call and never retries; retry policy belongs to the poller.
type StatusGetter interface {
	TaskStatus(ctx context.Context, kind model.TaskKind, id string) (*model.Task, error)
}

// HealthStatus is the server health heartbeat summary.
type HealthStatus struct {
	Ready   bool
	Version string
}

// MailCounts is the mailbox summary heartbeat payload.
type MailCounts struct {
	Unread int
	Total  int
}

// Heartbeat exposes the task-less periodic endpoints consumed by the
// dashboard refresh loop.
type Heartbeat interface {
	Health(ctx context.Context) (*HealthStatus, error)
	MailPing(ctx context.Context) error
	WalletBalance(ctx context.Context, wallet string) (float64, error)
	MailCount(ctx context.Context) (*MailCounts, error)
}

// Client is the full server API surface the application uses.
type Client interface {
	Starter
	StatusGetter
	Heartbeat
}
