package lockerget_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vaultpost/vaultpost/internal/app/lockerget"
	"github.com/vaultpost/vaultpost/internal/frontend/frontendmock"
	"github.com/vaultpost/vaultpost/internal/model"
	"github.com/vaultpost/vaultpost/internal/notify"
	"github.com/vaultpost/vaultpost/internal/poll"
	"github.com/vaultpost/vaultpost/internal/server"
	"github.com/vaultpost/vaultpost/internal/server/servermock"
)

func newTestService(t *testing.T) (*lockerget.Service, *servermock.MockClient, *frontendmock.MockNotifier, *frontendmock.MockRefresher) {
	t.Helper()

	client := &servermock.MockClient{}
	notifier := &frontendmock.MockNotifier{}
	refresher := &frontendmock.MockRefresher{}

	poller, err := poll.NewPoller(poll.PollerConfig{Fetcher: client, Interval: time.Millisecond})
	require.NoError(t, err)
	bridge, err := notify.NewBridge(notify.BridgeConfig{Notifier: notifier})
	require.NoError(t, err)

	svc, err := lockerget.NewService(lockerget.ServiceConfig{
		Starter:   client,
		Poller:    poller,
		Bridge:    bridge,
		Refresher: refresher,
	})
	require.NoError(t, err)

	return svc, client, notifier, refresher
}

func TestRunRejectsBadCode(t *testing.T) {
	svc, client, notifier, _ := newTestService(t)

	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e model.NotificationEvent) bool {
		return e.Severity == model.SeverityWarning
	})).Once()

	res, err := svc.Run(context.Background(), lockerget.Request{Code: "short", Wallet: "Default"})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotValid)
	assert.Nil(t, res)
	client.AssertNotCalled(t, "StartLockerDownload", mock.Anything, mock.Anything)
	notifier.AssertExpectations(t)
}

func TestRunLockerDownloadSuccess(t *testing.T) {
	svc, client, notifier, refresher := newTestService(t)

	client.On("StartLockerDownload", mock.Anything, mock.Anything).
		Return(&server.StartResult{TaskID: "t9"}, nil).Once()
	client.On("TaskStatus", mock.Anything, model.TaskKindLockerDownload, "t9").
		Return(&model.Task{
			ID: "t9", Kind: model.TaskKindLockerDownload, State: model.TaskStateSuccess,
			Progress: 100, Message: "Received 50 coins", Result: &model.TaskResult{Amount: 50},
		}, nil).Once()
	notifier.On("Notify", mock.Anything, model.NotificationEvent{
		Severity: model.SeveritySuccess,
		Text:     "Received 50 coins",
		Duration: model.DefaultSuccessDuration,
	}).Once()
	refresher.On("RefreshWalletBalance", mock.Anything).Return(nil).Once()

	res, err := svc.Run(context.Background(), lockerget.Request{Code: "qrs-7899", Wallet: "Default"})

	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, float64(50), res.Task.Result.Amount)
	notifier.AssertExpectations(t)
	refresher.AssertExpectations(t)
}

func TestRunLockerDownloadParseFailure(t *testing.T) {
	// A terminal success whose payload cannot be decoded must never be
	// reported as success.
	svc, client, notifier, refresher := newTestService(t)

	client.On("StartLockerDownload", mock.Anything, mock.Anything).
		Return(&server.StartResult{TaskID: "t9"}, nil).Once()
	parseErr := &model.Task{ID: "t9", Kind: model.TaskKindLockerDownload, State: model.TaskStateSuccess}
	client.On("TaskStatus", mock.Anything, model.TaskKindLockerDownload, "t9").
		Return(parseErr, nil).Once()
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e model.NotificationEvent) bool {
		return e.Severity == model.SeverityError
	})).Once()

	res, err := svc.Run(context.Background(), lockerget.Request{Code: "QRS-7899", Wallet: "Default"})

	require.NoError(t, err)
	assert.False(t, res.OK)
	refresher.AssertNotCalled(t, "RefreshWalletBalance", mock.Anything)
	notifier.AssertExpectations(t)
}
