package model

import "time"

// Severity classifies a user notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Default display durations per severity. Errors stay on screen longer.
const (
	DefaultSuccessDuration = 3500 * time.Millisecond
	DefaultErrorDuration   = 6 * time.Second
	DefaultWarningDuration = 5 * time.Second
	DefaultInfoDuration    = 3500 * time.Millisecond
)

// NotificationEvent is one transient user-visible message. Events are
// ephemeral: the display layer auto-expires them after Duration.
type NotificationEvent struct {
	Severity Severity
	Text     string
	Duration time.Duration
}
