package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultpost/vaultpost/internal/model"
	"github.com/vaultpost/vaultpost/internal/server"
)

// newTestClient creates an HTTPClient backed by an httptest server.
func newTestClient(t *testing.T, handler http.Handler) *server.HTTPClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := server.NewHTTPClient(server.HTTPClientConfig{BaseURL: srv.URL})
	require.NoError(t, err)

	return c
}

func jsonHandler(status int, body map[string]any) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

func TestHTTPClientStartImport(t *testing.T) {
	tests := map[string]struct {
		status    int
		body      map[string]any
		expResult *server.StartResult
		expErr    error
	}{
		"A task id means async accepted.": {
			status:    http.StatusOK,
			body:      map[string]any{"task_id": "t1"},
			expResult: &server.StartResult{TaskID: "t1"},
		},
		"The camel case task id variant should be accepted.": {
			status:    http.StatusOK,
			body:      map[string]any{"taskId": "t2"},
			expResult: &server.StartResult{TaskID: "t2"},
		},
		"No task id with success true means completed synchronously.": {
			status:    http.StatusOK,
			body:      map[string]any{"success": true, "message": "imported"},
			expResult: &server.StartResult{Message: "imported"},
		},
		"Success false is a server reported failure.": {
			status: http.StatusOK,
			body:   map[string]any{"success": false, "error": "bad coins"},
			expErr: model.ErrServerFailure,
		},
		"Non 2xx is a transport failure.": {
			status: http.StatusInternalServerError,
			body:   map[string]any{},
			expErr: model.ErrTransport,
		},
		"Neither task id nor success flag fails closed.": {
			status: http.StatusOK,
			body:   map[string]any{"whatever": 42},
			expErr: model.ErrParse,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, jsonHandler(tt.status, tt.body))

			res, err := c.StartImport(context.Background(), model.ImportRequest{
				Paths:  []string{"a.bin"},
				Wallet: "Default",
			})

			if tt.expErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expErr)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expResult, res)
			}
		})
	}
}

func TestHTTPClientStartNormalizesParameters(t *testing.T) {
	var got map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"task_id": "t1"})
	})

	c := newTestClient(t, handler)

	_, err := c.StartLockerUpload(context.Background(), model.LockerUploadRequest{
		Amount: 5,
		Code:   "abc-2345",
		Wallet: "wallets/Default",
	})
	require.NoError(t, err)

	// Code is uppercased, wallet is on the backslash axis.
	assert.Equal(t, "ABC-2345", got["code"])
	assert.Equal(t, `wallets\Default`, got["wallet"])
}

func TestHTTPClientTaskStatus(t *testing.T) {
	tests := map[string]struct {
		kind     model.TaskKind
		body     map[string]any
		expState model.TaskState
		expProg  int
		expMsg   string
		expRes   *model.TaskResult
		expErr   error
	}{
		"A pending task should decode with progress and message.": {
			kind:     model.TaskKindImport,
			body:     map[string]any{"task_id": "t1", "status": "pending", "progress": 10, "message": "queued"},
			expState: model.TaskStatePending,
			expProg:  10,
			expMsg:   "queued",
		},
		"The state field variant should be accepted.": {
			kind:     model.TaskKindImport,
			body:     map[string]any{"id": "t1", "state": "running", "text": "powning"},
			expState: model.TaskStateRunning,
			expMsg:   "powning",
		},
		"Progress above 100 should be clamped.": {
			kind:     model.TaskKindImport,
			body:     map[string]any{"task_id": "t1", "status": "running", "progress": 250},
			expState: model.TaskStateRunning,
			expProg:  100,
		},
		"Terminal import success should decode pown results.": {
			kind: model.TaskKindImport,
			body: map[string]any{
				"task_id": "t1", "status": "success", "progress": 100,
				"pown_results": map[string]any{"bank": 2, "fracked": 1},
			},
			expState: model.TaskStateSuccess,
			expProg:  100,
			expRes:   &model.TaskResult{PownBank: 2, PownFracked: 1},
		},
		"Terminal export success should decode the exported amount.": {
			kind:     model.TaskKindExport,
			body:     map[string]any{"task_id": "t1", "status": "success", "exported": 250.0},
			expState: model.TaskStateSuccess,
			expRes:   &model.TaskResult{Amount: 250},
		},
		"Terminal locker upload success should decode the receipt id.": {
			kind:     model.TaskKindLockerUpload,
			body:     map[string]any{"task_id": "t1", "status": "success", "receipt_id": "r-9"},
			expState: model.TaskStateSuccess,
			expRes:   &model.TaskResult{ReceiptID: "r-9"},
		},
		"A failed task should decode without a result.": {
			kind:     model.TaskKindImport,
			body:     map[string]any{"task_id": "t1", "status": "failed", "message": "counterfeit batch"},
			expState: model.TaskStateFailed,
			expMsg:   "counterfeit batch",
		},
		"Terminal success with a missing payload fails closed.": {
			kind:   model.TaskKindImport,
			body:   map[string]any{"task_id": "t1", "status": "success"},
			expErr: model.ErrParse,
		},
		"Missing status and state fields fail closed.": {
			kind:   model.TaskKindImport,
			body:   map[string]any{"task_id": "t1", "progress": 50},
			expErr: model.ErrParse,
		},
		"An unknown state fails closed.": {
			kind:   model.TaskKindImport,
			body:   map[string]any{"task_id": "t1", "status": "exploded"},
			expErr: model.ErrParse,
		},
		"A missing task id in the body fails closed.": {
			kind:   model.TaskKindImport,
			body:   map[string]any{"status": "pending"},
			expErr: model.ErrParse,
		},
		"A mismatched task id in the body fails closed.": {
			kind:   model.TaskKindImport,
			body:   map[string]any{"task_id": "other", "status": "pending"},
			expErr: model.ErrParse,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, jsonHandler(http.StatusOK, tt.body))

			task, err := c.TaskStatus(context.Background(), tt.kind, "t1")

			if tt.expErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expErr)
				assert.Nil(t, task)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "t1", task.ID)
			assert.Equal(t, tt.kind, task.Kind)
			assert.Equal(t, tt.expState, task.State)
			assert.Equal(t, tt.expProg, task.Progress)
			assert.Equal(t, tt.expMsg, task.Message)
			assert.Equal(t, tt.expRes, task.Result)
		})
	}
}

func TestHTTPClientTaskStatusIdempotent(t *testing.T) {
	body := map[string]any{"task_id": "t1", "status": "running", "progress": 40, "message": "working"}
	c := newTestClient(t, jsonHandler(http.StatusOK, body))

	first, err := c.TaskStatus(context.Background(), model.TaskKindImport, "t1")
	require.NoError(t, err)
	second, err := c.TaskStatus(context.Background(), model.TaskKindImport, "t1")
	require.NoError(t, err)

	// Structurally equal snapshots aside from timestamps.
	first.CreatedAt = second.CreatedAt
	assert.Equal(t, first, second)
}

func TestHTTPClientTaskStatusEmptyID(t *testing.T) {
	called := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := c.TaskStatus(context.Background(), model.TaskKindImport, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotValid)
	assert.False(t, called, "validation failures must not reach the network")
}

func TestHTTPClientHeartbeats(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "version": "1.4.2"})
	})
	mux.HandleFunc("/api/v1/mail/ping", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"pong": true})
	})
	mux.HandleFunc("/api/v1/wallet/balance", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Default", r.URL.Query().Get("wallet"))
		_ = json.NewEncoder(w).Encode(map[string]any{"balance": 1250.5})
	})
	mux.HandleFunc("/api/v1/mail/count", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"unread": 3, "total": 17})
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.True(t, health.Ready)
	assert.Equal(t, "1.4.2", health.Version)

	require.NoError(t, c.MailPing(ctx))

	balance, err := c.WalletBalance(ctx, "Default")
	require.NoError(t, err)
	assert.Equal(t, 1250.5, balance)

	counts, err := c.MailCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, &server.MailCounts{Unread: 3, Total: 17}, counts)
}

func TestHTTPClientHeartbeatFailures(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	ctx := context.Background()

	_, err := c.Health(ctx)
	assert.ErrorIs(t, err, model.ErrTransport)

	assert.ErrorIs(t, c.MailPing(ctx), model.ErrTransport)

	_, err = c.WalletBalance(ctx, "Default")
	assert.ErrorIs(t, err, model.ErrTransport)

	_, err = c.MailCount(ctx)
	assert.ErrorIs(t, err, model.ErrTransport)
}
