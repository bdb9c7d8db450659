package server

import (
	"encoding/json"
	"fmt"

	"github.com/vaultpost/vaultpost/internal/model"
)

// The server grew several field-name variants over time (task_id vs taskId,
// status vs state, message vs text). All of them are mapped here, once, into
// a single canonical shape. Anything that matches none of the accepted
// variants fails closed with model.ErrParse instead of being guessed at.

type wireEnvelope struct {
	TaskID    string `json:"task_id"`
	TaskIDAlt string `json:"taskId"`
	ID        string `json:"id"`

	Status string `json:"status"`
	State  string `json:"state"`

	Message string `json:"message"`
	Text    string `json:"text"`

	Progress *int   `json:"progress"`
	Success  *bool  `json:"success"`
	Error    string `json:"error"`

	// Terminal result payloads, per operation kind.
	PownResults *wirePownResults `json:"pown_results"`
	Exported    *float64         `json:"exported"`
	Amount      *float64         `json:"amount"`
	ReceiptID   string           `json:"receipt_id"`
}

type wirePownResults struct {
	Bank        int `json:"bank"`
	Fracked     int `json:"fracked"`
	Counterfeit int `json:"counterfeit"`
}

func decodeEnvelope(body []byte) (*wireEnvelope, error) {
	env := &wireEnvelope{}
	if err := json.Unmarshal(body, env); err != nil {
		return nil, fmt.Errorf("could not decode response body: %w", model.ErrParse)
	}
	return env, nil
}

// taskID returns the task id under any of its accepted names.
func (e *wireEnvelope) taskID() string {
	switch {
	case e.TaskID != "":
		return e.TaskID
	case e.TaskIDAlt != "":
		return e.TaskIDAlt
	default:
		return e.ID
	}
}

// message returns the human readable message under any of its accepted names.
func (e *wireEnvelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Text
}

// taskState maps the status/state field onto the fixed state enumeration,
// failing closed on anything outside it.
func (e *wireEnvelope) taskState() (model.TaskState, error) {
	raw := e.Status
	if raw == "" {
		raw = e.State
	}
	if raw == "" {
		return "", fmt.Errorf("response has no status or state field: %w", model.ErrParse)
	}

	state := model.TaskState(raw)
	switch state {
	case model.TaskStatePending, model.TaskStateRunning, model.TaskStateSuccess,
		model.TaskStateFailed, model.TaskStateError:
		return state, nil
	}
	return "", fmt.Errorf("unknown task state %q: %w", raw, model.ErrParse)
}

// progress returns the clamped progress percentage, zero when absent.
func (e *wireEnvelope) progress() int {
	if e.Progress == nil {
		return 0
	}
	p := *e.Progress
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// decodeResult extracts the kind-specific terminal payload. It is only
// called on terminal success and fails closed when the fields the kind
// requires are missing.
func (e *wireEnvelope) decodeResult(kind model.TaskKind) (*model.TaskResult, error) {
	switch kind {
	case model.TaskKindImport:
		if e.PownResults == nil {
			return nil, fmt.Errorf("import result has no pown_results: %w", model.ErrParse)
		}
		return &model.TaskResult{
			PownBank:        e.PownResults.Bank,
			PownFracked:     e.PownResults.Fracked,
			PownCounterfeit: e.PownResults.Counterfeit,
		}, nil

	case model.TaskKindExport:
		if e.Exported == nil {
			return nil, fmt.Errorf("export result has no exported amount: %w", model.ErrParse)
		}
		return &model.TaskResult{Amount: *e.Exported}, nil

	case model.TaskKindLockerUpload:
		if e.ReceiptID == "" {
			return nil, fmt.Errorf("locker upload result has no receipt_id: %w", model.ErrParse)
		}
		return &model.TaskResult{ReceiptID: e.ReceiptID}, nil

	case model.TaskKindLockerDownload:
		if e.Amount == nil {
			return nil, fmt.Errorf("locker download result has no amount: %w", model.ErrParse)
		}
		return &model.TaskResult{Amount: *e.Amount}, nil

	case model.TaskKindSendMail:
		if e.ReceiptID == "" {
			return nil, fmt.Errorf("send mail result has no receipt_id: %w", model.ErrParse)
		}
		return &model.TaskResult{ReceiptID: e.ReceiptID}, nil
	}

	return nil, fmt.Errorf("unknown task kind %q: %w", kind, model.ErrParse)
}
