package session

import "slices"

// Active returns the innermost session at the cursor: while the newest visible
// step is itself a session, Active descends into it. Every level on the way is
// rendered so its visible steps are bound to the current handle.
func (s *Session) Active() *Session {
	path := s.activePath()
	if len(path) == 0 {
		return nil
	}
	return path[len(path)-1]
}

func (s *Session) activePath() []*Session {
	if s == nil {
		return nil
	}
	path := []*Session{s}
	for cur := s; ; {
		cur.Render(nil)
		vis := cur.Visible()
		if len(vis) == 0 {
			return path
		}
		child, ok := vis[len(vis)-1].(*Session)
		if !ok || slices.Contains(path, child) {
			return path
		}
		path = append(path, child)
		cur = child
	}
}

// Advance is Next for hosts that drive the session without a runner.
// The call goes to the innermost active session, so nested sessions reveal
// their own steps before the enclosing one moves on. A nested session that
// becomes active through the call is mounted first.
func (s *Session) Advance() {
	if s == nil {
		return
	}
	known := s.activePath()
	known[len(known)-1].Next()
	s.mountActivated(known)
}

// Rewind is Reset for hosts that drive the session without a runner: the
// cursor goes back to zero and a nested session shown at the new cursor is
// mounted again.
func (s *Session) Rewind() {
	if s == nil {
		return
	}
	s.Reset()
	s.mountActivated([]*Session{s})
}

// mountActivated mounts every session on the active path that is not in known.
func (s *Session) mountActivated(known []*Session) {
	for {
		var fresh *Session
		for _, sub := range s.activePath()[1:] {
			if !slices.Contains(known, sub) {
				fresh = sub
				break
			}
		}
		if fresh == nil {
			return
		}
		fresh.Mount()
		known = append(known, fresh)
	}
}
