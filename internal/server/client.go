package server

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/vaultpost/vaultpost/internal/log"
	"github.com/vaultpost/vaultpost/internal/model"
)

const (
	// DefaultBaseURL is where the local server process listens by default.
	DefaultBaseURL = "http://127.0.0.1:8006"

	apiPrefix = "/api/v1"
)

// HTTPClientConfig configures the HTTP server client.
type HTTPClientConfig struct {
	// BaseURL is the server base URL (e.g. "http://127.0.0.1:8006").
	BaseURL string
	// HTTPClient is the HTTP client used for all requests.
	HTTPClient *http.Client
	// Logger for logging.
	Logger log.Logger
}

func (c *HTTPClientConfig) defaults() error {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "server.HTTPClient"})
	return nil
}

// HTTPClient talks to the server process over HTTP+JSON. It implements
// Client.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     log.Logger
}

// NewHTTPClient creates a new HTTP server client.
func NewHTTPClient(cfg HTTPClientConfig) (*HTTPClient, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &HTTPClient{
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}, nil
}

var _ Client = (*HTTPClient)(nil)

// do issues one request and returns the response body. Network problems,
// non-2xx statuses and unreadable bodies are all transport failures.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	u := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %v: %w", path, err, model.ErrTransport)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response from %s: %w", path, model.ErrTransport)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("server returned %d for %s: %w", resp.StatusCode, path, model.ErrTransport)
	}

	return respBody, nil
}

// startOperation runs one start-endpoint call and classifies the response:
// task id means async accepted, an explicit success flag without a task id
// means the operation completed synchronously.
func (c *HTTPClient) startOperation(ctx context.Context, path string, payload interface{}) (*StartResult, error) {
	body, err := c.do(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	if env.Success != nil && !*env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.message()
		}
		if msg == "" {
			msg = "operation rejected by server"
		}
		return nil, fmt.Errorf("%s: %w", msg, model.ErrServerFailure)
	}

	if id := env.taskID(); id != "" {
		c.logger.Debugf("Operation %s accepted as task %s", path, id)
		return &StartResult{TaskID: id, Message: env.message()}, nil
	}

	if env.Success != nil && *env.Success {
		return &StartResult{Message: env.message()}, nil
	}

	return nil, fmt.Errorf("start response has neither task id nor success flag: %w", model.ErrParse)
}

func (c *HTTPClient) StartImport(ctx context.Context, req model.ImportRequest) (*StartResult, error) {
	req = req.Normalized()
	return c.startOperation(ctx, "/wallet/import", map[string]interface{}{
		"paths":  req.Paths,
		"wallet": req.Wallet,
	})
}

func (c *HTTPClient) StartExport(ctx context.Context, req model.ExportRequest) (*StartResult, error) {
	req = req.Normalized()
	payload := map[string]interface{}{
		"amount": req.Amount,
		"wallet": req.Wallet,
	}
	if req.Tag != "" {
		payload["tag"] = req.Tag
	}
	return c.startOperation(ctx, "/wallet/export", payload)
}

func (c *HTTPClient) StartLockerUpload(ctx context.Context, req model.LockerUploadRequest) (*StartResult, error) {
	req = req.Normalized()
	return c.startOperation(ctx, "/locker/upload", map[string]interface{}{
		"amount": req.Amount,
		"code":   req.Code,
		"wallet": req.Wallet,
	})
}

func (c *HTTPClient) StartLockerDownload(ctx context.Context, req model.LockerDownloadRequest) (*StartResult, error) {
	req = req.Normalized()
	return c.startOperation(ctx, "/locker/download", map[string]interface{}{
		"code":   req.Code,
		"wallet": req.Wallet,
	})
}

func (c *HTTPClient) StartSendMail(ctx context.Context, req model.SendMailRequest) (*StartResult, error) {
	return c.startOperation(ctx, "/mail/send", map[string]interface{}{
		"to":      req.To,
		"subject": req.Subject,
		"body":    req.Body,
	})
}

// TaskStatus reads the current snapshot of one task. It never retries.
func (c *HTTPClient) TaskStatus(ctx context.Context, kind model.TaskKind, id string) (*model.Task, error) {
	if id == "" {
		return nil, fmt.Errorf("task id is required: %w", model.ErrNotValid)
	}

	body, err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	if got := env.taskID(); got == "" {
		return nil, fmt.Errorf("status response has no task id: %w", model.ErrParse)
	} else if got != id {
		return nil, fmt.Errorf("status response is for task %q, wanted %q: %w", got, id, model.ErrParse)
	}

	state, err := env.taskState()
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:        id,
		Kind:      kind,
		State:     state,
		Progress:  env.progress(),
		Message:   env.message(),
		CreatedAt: time.Now(),
	}

	if state == model.TaskStateSuccess {
		result, err := env.decodeResult(kind)
		if err != nil {
			return nil, err
		}
		task.Result = result
	}

	return task, nil
}

func (c *HTTPClient) Health(ctx context.Context) (*HealthStatus, error) {
	body, err := c.do(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("could not decode health response: %w", model.ErrParse)
	}

	return &HealthStatus{
		Ready:   resp.Status == "ok" || resp.Status == "ready",
		Version: resp.Version,
	}, nil
}

func (c *HTTPClient) MailPing(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/mail/ping", nil, nil)
	return err
}

func (c *HTTPClient) WalletBalance(ctx context.Context, wallet string) (float64, error) {
	q := url.Values{}
	q.Set("wallet", model.NormalizeWalletPath(wallet))

	body, err := c.do(ctx, http.MethodGet, "/wallet/balance", q, nil)
	if err != nil {
		return 0, err
	}

	var resp struct {
		Balance *float64 `json:"balance"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.Balance == nil {
		return 0, fmt.Errorf("could not decode balance response: %w", model.ErrParse)
	}

	return *resp.Balance, nil
}

func (c *HTTPClient) MailCount(ctx context.Context) (*MailCounts, error) {
	body, err := c.do(ctx, http.MethodGet, "/mail/count", nil, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Unread *int `json:"unread"`
		Total  *int `json:"total"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.Unread == nil || resp.Total == nil {
		return nil, fmt.Errorf("could not decode mail count response: %w", model.ErrParse)
	}

	return &MailCounts{Unread: *resp.Unread, Total: *resp.Total}, nil
}
