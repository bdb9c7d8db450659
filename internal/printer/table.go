package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vaultpost/vaultpost/internal/frontend"
	"github.com/vaultpost/vaultpost/internal/model"
)

// TablePrinter prints client output in a human readable format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// severityTags are the prefixes notifications are rendered with.
var severityTags = map[model.Severity]string{
	model.SeveritySuccess: "OK",
	model.SeverityError:   "ERROR",
	model.SeverityWarning: "WARN",
	model.SeverityInfo:    "INFO",
}

// PrintNotification prints one transient notification line.
func (t *TablePrinter) PrintNotification(event model.NotificationEvent) error {
	tag, ok := severityTags[event.Severity]
	if !ok {
		tag = "INFO"
	}
	_, err := fmt.Fprintf(t.writer, "[%s] %s\n", tag, event.Text)
	return err
}

// PrintDashboard prints the connectivity and summary state.
func (t *TablePrinter) PrintDashboard(state frontend.DashboardState) error {
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	server := "disconnected"
	if state.Connected {
		server = "connected"
		if state.ServerVersion != "" {
			server = fmt.Sprintf("connected (v%s)", state.ServerVersion)
		}
	}

	mail := "unreachable"
	if state.MailReachable {
		mail = "reachable"
	}

	balance := "-"
	if state.HasBalance {
		balance = fmt.Sprintf("%.2f", state.Balance)
	}

	counts := "-"
	if state.HasMailCounts {
		counts = fmt.Sprintf("%d unread / %d total", state.MailUnread, state.MailTotal)
	}

	fmt.Fprintf(tw, "SERVER\t%s\n", server)
	fmt.Fprintf(tw, "MAIL\t%s\n", mail)
	fmt.Fprintf(tw, "BALANCE\t%s\n", balance)
	fmt.Fprintf(tw, "MAILBOX\t%s\n", counts)
	if !state.UpdatedAt.IsZero() {
		fmt.Fprintf(tw, "UPDATED\t%s\n", TimeAgo(state.UpdatedAt))
	}

	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
