package printer

import (
	"encoding/json"
	"io"

	"github.com/vaultpost/vaultpost/internal/frontend"
	"github.com/vaultpost/vaultpost/internal/model"
)

// JSONPrinter prints client output in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// notificationOutput represents one notification event.
type notificationOutput struct {
	Severity   string `json:"severity"`
	Text       string `json:"text"`
	DurationMS int64  `json:"duration_ms"`
}

// dashboardOutput represents the dashboard state.
type dashboardOutput struct {
	Connected     bool     `json:"connected"`
	ServerVersion string   `json:"server_version,omitempty"`
	MailReachable bool     `json:"mail_reachable"`
	Balance       *float64 `json:"balance,omitempty"`
	MailUnread    *int     `json:"mail_unread,omitempty"`
	MailTotal     *int     `json:"mail_total,omitempty"`
	UpdatedAt     string   `json:"updated_at,omitempty"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

func (j *JSONPrinter) encode(v interface{}) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintNotification prints one notification event in JSON format.
func (j *JSONPrinter) PrintNotification(event model.NotificationEvent) error {
	return j.encode(notificationOutput{
		Severity:   string(event.Severity),
		Text:       event.Text,
		DurationMS: event.Duration.Milliseconds(),
	})
}

// PrintDashboard prints the dashboard state in JSON format.
func (j *JSONPrinter) PrintDashboard(state frontend.DashboardState) error {
	out := dashboardOutput{
		Connected:     state.Connected,
		ServerVersion: state.ServerVersion,
		MailReachable: state.MailReachable,
	}
	if state.HasBalance {
		out.Balance = &state.Balance
	}
	if state.HasMailCounts {
		out.MailUnread = &state.MailUnread
		out.MailTotal = &state.MailTotal
	}
	if !state.UpdatedAt.IsZero() {
		out.UpdatedAt = FormatTimestamp(state.UpdatedAt.UTC())
	}

	return j.encode(out)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}
