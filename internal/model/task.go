package model

import (
	"time"
)

// TaskState represents the server-side state of an asynchronous task.
type TaskState string

const (
	TaskStatePending TaskState = "pending"
	TaskStateRunning TaskState = "running"
	TaskStateSuccess TaskState = "success"
	// TaskStateFailed and TaskStateError are both terminal failures, the
	// server does not distinguish them consistently so neither do we.
	TaskStateFailed TaskState = "failed"
	TaskStateError  TaskState = "error"
)

// IsTerminal returns true when no further polling makes sense for the state.
func (s TaskState) IsTerminal() bool {
	switch s {
	case TaskStateSuccess, TaskStateFailed, TaskStateError:
		return true
	}
	return false
}

// IsFailure returns true for the terminal failure states.
func (s TaskState) IsFailure() bool {
	return s == TaskStateFailed || s == TaskStateError
}

// TaskKind identifies which long-running operation a task belongs to. It
// drives result decoding and the fallback notification texts.
type TaskKind string

const (
	TaskKindImport         TaskKind = "import"
	TaskKindExport         TaskKind = "export"
	TaskKindLockerUpload   TaskKind = "lockerUpload"
	TaskKindLockerDownload TaskKind = "lockerDownload"
	TaskKindSendMail       TaskKind = "sendMail"
)

// Task is a snapshot of one server-side asynchronous job. Instances are
// created when a submitter receives a task id and replaced (not mutated) on
// every status poll; nothing is persisted.
type Task struct {
	ID        string
	Kind      TaskKind
	State     TaskState
	Progress  int // 0-100, not guaranteed strictly monotonic by the server.
	Message   string
	Result    *TaskResult // Only set on terminal success.
	CreatedAt time.Time
}

// TaskResult is the operation-specific payload attached to a terminal
// success state. Only the fields matching the task kind are meaningful.
type TaskResult struct {
	// Import.
	PownBank        int
	PownFracked     int
	PownCounterfeit int

	// Export and locker download.
	Amount float64

	// Locker upload and mail send.
	ReceiptID string
}

// TotalCoins returns the number of coins the server processed in an import.
func (r TaskResult) TotalCoins() int {
	return r.PownBank + r.PownFracked + r.PownCounterfeit
}
