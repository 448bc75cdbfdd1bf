package session

// Handle is the control object shared with every visible step.
//
// A new Handle is issued whenever the cursor, the sequence length, the completion
// callback or the parent link changes, so steps can compare handles by pointer
// to detect that something moved. A Handle holds no state besides the cursor
// position it was issued at; its methods act on the live session.
type Handle struct {
	s     *Session
	index int
}

// Next advances the owning session (see Session.Next).
func (h *Handle) Next() {
	if h == nil {
		return
	}
	h.s.Next()
}

// Reset rewinds the owning session to position zero.
func (h *Handle) Reset() {
	if h == nil {
		return
	}
	h.s.Reset()
}

// Insert appends units to the end of the owning session.
func (h *Handle) Insert(units ...any) {
	if h == nil {
		return
	}
	h.s.Insert(units...)
}

// CurrentIndex returns the cursor position this handle was issued at.
func (h *Handle) CurrentIndex() int {
	if h == nil {
		return 0
	}
	return h.index
}

// Handle returns the current control handle, issuing a new one if the previous
// handle went stale.
func (s *Session) Handle() *Handle {
	if s == nil {
		return nil
	}
	if s.handle == nil {
		s.handle = &Handle{s: s, index: s.index}
	}
	return s.handle
}

func (s *Session) invalidate() {
	s.handle = nil
}
