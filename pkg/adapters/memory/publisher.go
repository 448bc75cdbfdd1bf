package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/clui/pkg/domain"
)

// DefaultHistory is the number of events a Publisher keeps when none is given.
const DefaultHistory = 256

// Publisher implements ports.EventPublisher in memory, keeping the most recent events.
// Safe for concurrent use.
type Publisher struct {
	mu     sync.RWMutex
	events []domain.Event
	limit  int
}

// NewPublisher creates a publisher keeping at most limit events.
func NewPublisher(limit int) *Publisher {
	if limit <= 0 {
		limit = DefaultHistory
	}
	return &Publisher{limit: limit}
}

// Publish records evt, dropping the oldest event once the history is full.
func (p *Publisher) Publish(ctx context.Context, evt domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	if over := len(p.events) - p.limit; over > 0 {
		p.events = slices.Delete(p.events, 0, over)
	}
	return nil
}

// Events returns a copy of the recorded history, oldest first.
func (p *Publisher) Events() []domain.Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.events)
}
