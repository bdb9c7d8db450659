package poll_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultpost/vaultpost/internal/model"
	"github.com/vaultpost/vaultpost/internal/poll"
)

// scriptedFetcher replays a fixed sequence of status responses.
type scriptedFetcher struct {
	script []scriptedStep
	calls  int
}

type scriptedStep struct {
	task *model.Task
	err  error
}

func (f *scriptedFetcher) TaskStatus(_ context.Context, kind model.TaskKind, id string) (*model.Task, error) {
	step := f.script[f.calls]
	f.calls++
	if step.err != nil {
		return nil, step.err
	}
	t := *step.task
	t.ID = id
	t.Kind = kind
	return &t, nil
}

func pendingN(n int) []scriptedStep {
	steps := make([]scriptedStep, 0, n)
	for i := 0; i < n; i++ {
		steps = append(steps, scriptedStep{task: &model.Task{State: model.TaskStatePending, Progress: i * 10}})
	}
	return steps
}

func newTestPoller(t *testing.T, fetcher poll.StatusFetcher, maxAttempts int) *poll.Poller {
	t.Helper()

	p, err := poll.NewPoller(poll.PollerConfig{
		Fetcher:     fetcher,
		Interval:    time.Millisecond,
		MaxAttempts: maxAttempts,
	})
	require.NoError(t, err)

	return p
}

func TestNewPoller(t *testing.T) {
	tests := map[string]struct {
		cfg    poll.PollerConfig
		expErr bool
		errMsg string
	}{
		"Valid config should work.": {
			cfg: poll.PollerConfig{Fetcher: &scriptedFetcher{}},
		},
		"Missing fetcher should fail.": {
			cfg:    poll.PollerConfig{},
			expErr: true,
			errMsg: "status fetcher is required",
		},
		"Negative interval should fail.": {
			cfg:    poll.PollerConfig{Fetcher: &scriptedFetcher{}, Interval: -time.Second},
			expErr: true,
			errMsg: "interval must be positive",
		},
		"Negative max attempts should fail.": {
			cfg:    poll.PollerConfig{Fetcher: &scriptedFetcher{}, MaxAttempts: -1},
			expErr: true,
			errMsg: "max attempts cannot be negative",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := poll.NewPoller(tt.cfg)

			if tt.expErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, p)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, p)
			}
		})
	}
}

func TestPollUntilCompleteMonotonicTermination(t *testing.T) {
	// Pending N times then success: resolves after exactly N+1 fetches and
	// invokes onProgress exactly N times.
	const n = 4

	fetcher := &scriptedFetcher{script: append(pendingN(n), scriptedStep{
		task: &model.Task{
			State:    model.TaskStateSuccess,
			Progress: 100,
			Message:  "all coins authenticated",
			Result:   &model.TaskResult{PownBank: 2},
		},
	})}
	p := newTestPoller(t, fetcher, 0)

	progressCalls := 0
	task, err := p.PollUntilComplete(context.Background(), model.TaskKindImport, "t1", func(model.Task) {
		progressCalls++
	})

	require.NoError(t, err)
	assert.Equal(t, n+1, fetcher.calls)
	assert.Equal(t, n, progressCalls)
	assert.Equal(t, model.TaskStateSuccess, task.State)
	assert.Equal(t, "all coins authenticated", task.Message)
	assert.Equal(t, &model.TaskResult{PownBank: 2}, task.Result)
}

func TestPollUntilCompleteTimeout(t *testing.T) {
	// Always pending with MaxAttempts=3: timeout after exactly 3 fetches,
	// not 4.
	fetcher := &scriptedFetcher{script: pendingN(10)}
	p := newTestPoller(t, fetcher, 3)

	task, err := p.PollUntilComplete(context.Background(), model.TaskKindExport, "t1", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrTimeout)
	assert.Nil(t, task)
	assert.Equal(t, 3, fetcher.calls)
}

func TestPollUntilCompleteTerminalFailure(t *testing.T) {
	fetcher := &scriptedFetcher{script: []scriptedStep{
		{task: &model.Task{State: model.TaskStateRunning, Progress: 50}},
		{task: &model.Task{State: model.TaskStateError, Message: "locker already taken"}},
	}}
	p := newTestPoller(t, fetcher, 0)

	task, err := p.PollUntilComplete(context.Background(), model.TaskKindLockerUpload, "t1", nil)

	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
	assert.True(t, task.State.IsFailure())
	assert.Equal(t, "locker already taken", task.Message)
}

func TestPollUntilCompleteFetchFailureAborts(t *testing.T) {
	fetchErr := fmt.Errorf("boom: %w", model.ErrTransport)
	fetcher := &scriptedFetcher{script: []scriptedStep{{err: fetchErr}}}
	p := newTestPoller(t, fetcher, 0)

	progressCalls := 0
	task, err := p.PollUntilComplete(context.Background(), model.TaskKindImport, "t1", func(model.Task) {
		progressCalls++
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrTransport)
	assert.Nil(t, task)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 0, progressCalls)
}

func TestPollUntilCompleteEmptyTaskID(t *testing.T) {
	fetcher := &scriptedFetcher{script: pendingN(1)}
	p := newTestPoller(t, fetcher, 0)

	task, err := p.PollUntilComplete(context.Background(), model.TaskKindImport, "", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotValid)
	assert.Nil(t, task)
	assert.Equal(t, 0, fetcher.calls, "validation failures must not reach the fetcher")
}

func TestPollUntilCompleteCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	fetcher := &scriptedFetcher{script: pendingN(10)}
	p, err := poll.NewPoller(poll.PollerConfig{
		Fetcher:  fetcher,
		Interval: time.Hour, // Cancellation must not wait for the tick.
	})
	require.NoError(t, err)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	task, err := p.PollUntilComplete(ctx, model.TaskKindImport, "t1", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, task)
	assert.Equal(t, 1, fetcher.calls)
}

func TestPollUntilCompleteProgressBeforeSleep(t *testing.T) {
	// The progress callback must see every non-terminal snapshot in order.
	fetcher := &scriptedFetcher{script: append(pendingN(3), scriptedStep{
		task: &model.Task{State: model.TaskStateSuccess, Result: &model.TaskResult{}},
	})}
	p := newTestPoller(t, fetcher, 0)

	var seen []int
	_, err := p.PollUntilComplete(context.Background(), model.TaskKindSendMail, "t1", func(task model.Task) {
		seen = append(seen, task.Progress)
	})

	require.NoError(t, err)
	assert.Equal(t, []int{0, 10, 20}, seen)
}

func TestPollUntilCompleteResolvesOnceWithUnboundedErrors(t *testing.T) {
	// A later scripted error must never be reached once a terminal state has
	// resolved the session.
	fetcher := &scriptedFetcher{script: []scriptedStep{
		{task: &model.Task{State: model.TaskStateSuccess, Result: &model.TaskResult{}}},
		{err: errors.New("must never be fetched")},
	}}
	p := newTestPoller(t, fetcher, 0)

	task, err := p.PollUntilComplete(context.Background(), model.TaskKindExport, "t1", nil)

	require.NoError(t, err)
	assert.NotNil(t, task)
	assert.Equal(t, 1, fetcher.calls)
}
