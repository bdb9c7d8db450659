// Package frontendmock has mocks for the frontend collaborator interfaces.
package frontendmock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vaultpost/vaultpost/internal/frontend"
	"github.com/vaultpost/vaultpost/internal/model"
)

// MockNotifier is a testify mock of frontend.Notifier.
type MockNotifier struct {
	mock.Mock
}

var _ frontend.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Notify(ctx context.Context, event model.NotificationEvent) {
	m.Called(ctx, event)
}

// MockRefresher is a testify mock of frontend.Refresher.
type MockRefresher struct {
	mock.Mock
}

var _ frontend.Refresher = (*MockRefresher)(nil)

func (m *MockRefresher) RefreshWalletBalance(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRefresher) RefreshMailbox(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockStatusSink is a testify mock of frontend.StatusSink.
type MockStatusSink struct {
	mock.Mock
}

var _ frontend.StatusSink = (*MockStatusSink)(nil)

func (m *MockStatusSink) SetConnected(connected bool, serverVersion string) {
	m.Called(connected, serverVersion)
}

func (m *MockStatusSink) SetMailReachable(reachable bool) {
	m.Called(reachable)
}

func (m *MockStatusSink) SetWalletBalance(balance float64) {
	m.Called(balance)
}

func (m *MockStatusSink) SetMailCounts(unread, total int) {
	m.Called(unread, total)
}
