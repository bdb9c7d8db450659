package lib

import (
	"github.com/vaultpost/vaultpost/internal/frontend"
	"github.com/vaultpost/vaultpost/internal/model"
	"github.com/vaultpost/vaultpost/internal/server"
)

// Task is a server-side task snapshot.
type Task = model.Task

// TaskState is the lifecycle state of a task.
type TaskState = model.TaskState

// TaskResult is the decoded payload of a successfully finished task.
type TaskResult = model.TaskResult

// TaskKind identifies the operation a task belongs to.
type TaskKind = model.TaskKind

// Task lifecycle states.
const (
	TaskStatePending = model.TaskStatePending
	TaskStateRunning = model.TaskStateRunning
	TaskStateSuccess = model.TaskStateSuccess
	TaskStateFailed  = model.TaskStateFailed
	TaskStateError   = model.TaskStateError
)

// NotificationEvent is one transient user notification.
type NotificationEvent = model.NotificationEvent

// Severity is the notification severity.
type Severity = model.Severity

// Notification severities.
const (
	SeveritySuccess = model.SeveritySuccess
	SeverityError   = model.SeverityError
	SeverityWarning = model.SeverityWarning
	SeverityInfo    = model.SeverityInfo
)

// Sentinel errors returned (wrapped) by the SDK. Match with [errors.Is].
var (
	// ErrNotValid marks a request rejected locally before any network call.
	ErrNotValid = model.ErrNotValid
	// ErrTransport marks a network or HTTP level failure.
	ErrTransport = model.ErrTransport
	// ErrServerFailure marks an operation the server refused or failed.
	ErrServerFailure = model.ErrServerFailure
	// ErrTimeout marks a task that did not settle within the polling budget.
	ErrTimeout = model.ErrTimeout
	// ErrParse marks a server payload that could not be decoded.
	ErrParse = model.ErrParse
)

// Notifier receives notification events as operations resolve.
type Notifier = frontend.Notifier

// StatusSink receives heartbeat connectivity and summary updates.
type StatusSink = frontend.StatusSink

// DashboardState is the connectivity and summary state kept by the heartbeat
// probes.
type DashboardState = frontend.DashboardState

// HealthStatus is the server health summary.
type HealthStatus = server.HealthStatus

// MailCounts is the mailbox summary.
type MailCounts = server.MailCounts

// TaskOutcome is the resolved outcome of one submitted operation. Exactly one
// notification event has been produced by the time it is returned.
type TaskOutcome struct {
	// OK reports whether the operation completed successfully.
	OK bool
	// Event is the notification produced for this operation.
	Event NotificationEvent
	// Task is the terminal task snapshot, nil when the server completed the
	// operation synchronously or it failed before reaching one.
	Task *Task
	// Err classifies the failure when OK is false. Match with [errors.Is]
	// against the sentinel errors.
	Err error
}
