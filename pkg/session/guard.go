package session

import (
	"sync"

	"github.com/aretw0/clui/pkg/domain"
)

// Guard serializes access to a Session for hosts that serve it from several
// goroutines (HTTP handlers, MCP tools). The session itself takes no locks.
type Guard struct {
	mu sync.Mutex
	s  *Session
}

// NewGuard wraps s.
func NewGuard(s *Session) *Guard {
	return &Guard{s: s}
}

// Do runs fn while holding the lock.
// Callbacks reached from fn (OnDone, observers) must not call back into the Guard.
func (g *Guard) Do(fn func(s *Session)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.s)
}

// Snapshot returns the session snapshot under the lock.
func (g *Guard) Snapshot() (snap domain.Snapshot) {
	g.Do(func(s *Session) {
		snap = s.Snapshot()
	})
	return snap
}
