package ports

import (
	"context"

	"github.com/melih/docker-agent/internal/core/domain"
)

// Notifier posts advisory events to the automation receiver. Implementations
// must bound their own duration and never panic; the returned Delivery is
// informational only.
type Notifier interface {
	Notify(ctx context.Context, path string, payload any) domain.Delivery
	// BaseURL is the receiver address notifications are sent to.
	BaseURL() string
}
