package ports

import (
	"context"

	"github.com/aretw0/clui/pkg/domain"
)

// EventPublisher ships session transitions to an external system (a broker,
// a log pipeline). Publishing must not block the session for long.
type EventPublisher interface {
	Publish(ctx context.Context, evt domain.Event) error
}
