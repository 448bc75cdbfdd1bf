package session

import (
	"log/slog"
	"time"

	"github.com/aretw0/clui/internal/logging"
	"github.com/aretw0/clui/pkg/domain"
)

// Observer receives transition notifications.
// Observers run synchronously, after the state change has been applied.
type Observer func(domain.Event)

type subscription struct {
	id int
	fn Observer
}

// Session is the cursor state machine that reveals its steps one at a time.
// It is not safe for concurrent use; see Guard.
type Session struct {
	name         string
	initialIndex int
	index        int

	children []any    // raw declared input, compared by identity
	declared Sequence // normalized children
	inserted Sequence // units appended at runtime

	onDone func()
	parent *Handle

	handle *Handle // current control handle, nil when stale

	subs   []subscription
	nextID int

	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithInitialIndex sets the starting cursor position. Negative values start at 0.
func WithInitialIndex(index int) Option {
	return func(s *Session) {
		s.initialIndex = max(index, 0)
	}
}

// WithOnDone sets the callback invoked when Next is called on an exhausted session.
func WithOnDone(fn func()) Option {
	return func(s *Session) {
		s.onDone = fn
	}
}

// WithParent links the session to the handle of an enclosing session.
// The link is only used to forward Next once this session is exhausted.
func WithParent(h *Handle) Option {
	return func(s *Session) {
		s.parent = h
	}
}

// WithObserver registers a transition observer.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.subscribe(o)
		}
	}
}

// WithName labels the session in events and logs.
func WithName(name string) Option {
	return func(s *Session) {
		s.name = name
	}
}

// WithLogger configures a logger for transition debugging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a session over the given children.
// Children are normalized with Normalize; see SetChildren for update semantics.
func New(children []any, opts ...Option) *Session {
	s := &Session{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.index = s.initialIndex
	s.children = children
	s.declared = Normalize(children...)
	return s
}

// Name returns the label given with WithName.
func (s *Session) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// CurrentIndex returns the cursor position.
func (s *Session) CurrentIndex() int {
	if s == nil {
		return 0
	}
	return s.index
}

// Len returns the length of the sequence, inserted units included.
func (s *Session) Len() int {
	if s == nil {
		return 0
	}
	return len(s.declared) + len(s.inserted)
}

// Sequence returns a copy of the full sequence.
func (s *Session) Sequence() Sequence {
	if s == nil {
		return nil
	}
	seq := make(Sequence, 0, s.Len())
	seq = append(seq, s.declared...)
	return append(seq, s.inserted...)
}

// Visible returns the revealed prefix of the sequence: every step whose
// position is at most the cursor.
func (s *Session) Visible() Sequence {
	return s.Sequence()[:s.visibleLen()]
}

// Done reports whether every step of the sequence is visible.
func (s *Session) Done() bool {
	return s.visibleLen() == s.Len()
}

func (s *Session) visibleLen() int {
	n := s.Len()
	if n == 0 {
		return 0
	}
	return min(s.index, n-1) + 1
}

// Next reveals the next step. On an exhausted session it invokes the completion
// callback or, if there is none, forwards the call to the parent handle.
// Exactly one of these happens per call; with neither configured it is a no-op.
func (s *Session) Next() {
	if s == nil {
		return
	}
	switch {
	case s.visibleLen() < s.Len():
		s.index++
		s.invalidate()
		s.logger.Debug("session advanced", "session", s.name, "index", s.index)
		s.emit(domain.EventAdvance, 0)
	case s.onDone != nil:
		s.logger.Debug("session done", "session", s.name, "index", s.index)
		s.emit(domain.EventDone, 0)
		s.onDone()
	case s.parent != nil:
		s.logger.Debug("session forwarding to parent", "session", s.name, "index", s.index)
		s.emit(domain.EventForward, 0)
		s.parent.Next()
	}
}

// Reset rewinds the cursor to zero. Inserted units are kept.
func (s *Session) Reset() {
	if s == nil {
		return
	}
	if s.index != 0 {
		s.index = 0
		s.invalidate()
	}
	s.logger.Debug("session reset", "session", s.name)
	s.emit(domain.EventReset, 0)
}

// Insert appends units to the end of the sequence. Units go through Normalize,
// so invalid entries are dropped. The cursor is not moved.
func (s *Session) Insert(units ...any) {
	if s == nil {
		return
	}
	added := Normalize(units...)
	if len(added) == 0 {
		return
	}
	s.inserted = append(s.inserted, added...)
	s.invalidate()
	s.logger.Debug("session insert", "session", s.name, "count", len(added), "length", s.Len())
	s.emit(domain.EventInsert, len(added))
}

// SetChildren replaces the declared children. The sequence is rebuilt only when
// the identity of the slice changed; passing the same slice again is free.
func (s *Session) SetChildren(children []any) {
	if s == nil || sameInput(s.children, children) {
		return
	}
	s.children = children
	s.declared = Normalize(children...)
	s.invalidate()
	s.emit(domain.EventChildren, 0)
}

// Mount returns the session to the state of a freshly mounted container:
// the cursor goes back to the initial index, inserted units are discarded and
// declared steps implementing Remounter are rearmed.
func (s *Session) Mount() {
	if s == nil {
		return
	}
	s.index = s.initialIndex
	s.inserted = nil
	for _, st := range s.declared {
		if r, ok := st.(Remounter); ok {
			r.Remount()
		}
	}
	s.invalidate()
	s.emit(domain.EventMount, 0)
}

// SetOnDone replaces the completion callback.
func (s *Session) SetOnDone(fn func()) {
	if s == nil {
		return
	}
	s.onDone = fn
	s.invalidate()
}

// SetParent replaces the parent link. Linking a session to its own handle is ignored.
func (s *Session) SetParent(h *Handle) {
	if s == nil || h == s.parent {
		return
	}
	if h != nil && h.s == s {
		return
	}
	s.parent = h
	s.invalidate()
}

// Bind makes a Session usable as a step of another session: the enclosing
// session's handle becomes the parent link.
func (s *Session) Bind(h *Handle) {
	s.SetParent(h)
}

// Subscribe registers an observer and returns a function that removes it.
func (s *Session) Subscribe(o Observer) (unsubscribe func()) {
	if s == nil || o == nil {
		return func() {}
	}
	id := s.subscribe(o)
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) subscribe(o Observer) int {
	s.nextID++
	s.subs = append(s.subs, subscription{id: s.nextID, fn: o})
	return s.nextID
}

func (s *Session) emit(typ domain.EventType, count int) {
	if len(s.subs) == 0 {
		return
	}
	evt := domain.Event{
		Timestamp: s.now(),
		Type:      typ,
		Session:   s.name,
		Index:     s.index,
		Visible:   s.visibleLen(),
		Length:    s.Len(),
		Count:     count,
	}
	// Observers may unsubscribe while being notified.
	subs := append([]subscription(nil), s.subs...)
	for _, sub := range subs {
		sub.fn(evt)
	}
}
