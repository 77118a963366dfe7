package notify

import (
	"context"
	"fmt"

	"github.com/savorbowl/storefront-backend/internal/cart"
	"github.com/savorbowl/storefront-backend/pkg/enums"
	"github.com/savorbowl/storefront-backend/pkg/logger"
)

// LoggerNotifier writes cart feedback events to the structured log. The API
// tier has no toast channel of its own, so notifications land in the log
// stream alongside the request they belong to.
type LoggerNotifier struct {
	logg *logger.Logger
}

func NewLoggerNotifier(logg *logger.Logger) (*LoggerNotifier, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &LoggerNotifier{logg: logg}, nil
}

// Notify implements cart.Notifier.
func (n *LoggerNotifier) Notify(ctx context.Context, note cart.Notification) {
	ctx = n.logg.WithFields(ctx, map[string]any{
		"title":       note.Title,
		"description": note.Description,
		"severity":    note.Severity.String(),
	})
	if note.Severity == enums.NotificationSeverityError {
		n.logg.Warn(ctx, "cart.notification")
		return
	}
	n.logg.Info(ctx, "cart.notification")
}
