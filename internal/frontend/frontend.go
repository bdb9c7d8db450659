// Package frontend is the boundary with the embedding shell: whatever
// renders notifications and domain views implements these interfaces.
package frontend

import (
	"context"
	"time"

	"github.com/vaultpost/vaultpost/internal/model"
)

// DashboardState is the displayed connectivity and summary state the
// heartbeat loops keep refreshed.
type DashboardState struct {
	Connected     bool
	ServerVersion string
	MailReachable bool

	HasBalance bool
	Balance    float64

	HasMailCounts bool
	MailUnread    int
	MailTotal     int

	UpdatedAt time.Time
}

// Notifier displays one transient user notification. Implementations
// auto-expire the event after its duration.
type Notifier interface {
	Notify(ctx context.Context, event model.NotificationEvent)
}

// Refresher reloads domain views after a task resolves successfully.
type Refresher interface {
	RefreshWalletBalance(ctx context.Context) error
	RefreshMailbox(ctx context.Context) error
}

// StatusSink receives heartbeat connectivity and summary updates. Writes
// follow last-write-wins by arrival order: a heartbeat refresh and a
// user-triggered refresh may both overwrite the displayed state, and the
// small staleness window that creates is accepted.
type StatusSink interface {
	SetConnected(connected bool, serverVersion string)
	SetMailReachable(reachable bool)
	SetWalletBalance(balance float64)
	SetMailCounts(unread, total int)
}
