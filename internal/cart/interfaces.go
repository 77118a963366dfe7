package cart

import (
	"context"

	"github.com/savorbowl/storefront-backend/pkg/enums"
)

// Store persists a session's line items between requests. Load runs once
// when the engine is built; Save runs after every mutation. Failures are
// surfaced to the user as warnings and never roll back in-memory state.
type Store interface {
	Load(ctx context.Context) ([]LineItem, error)
	Save(ctx context.Context, items []LineItem) error
}

// Notification is a user-facing feedback event emitted alongside mutations.
type Notification struct {
	Title       string
	Description string
	Severity    enums.NotificationSeverity
}

// Notifier receives fire-and-forget feedback events. Implementations must
// not block the calling operation; the engine never waits on them.
type Notifier interface {
	Notify(ctx context.Context, note Notification)
}
