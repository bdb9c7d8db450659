package printer

import (
	"github.com/vaultpost/vaultpost/internal/frontend"
	"github.com/vaultpost/vaultpost/internal/model"
)

// Printer knows how to print client output in different formats.
type Printer interface {
	PrintNotification(event model.NotificationEvent) error
	PrintDashboard(state frontend.DashboardState) error
	PrintMessage(msg string) error
}
