package session

import (
	"fmt"

	"github.com/aretw0/clui/pkg/domain"
)

// Entry is one visible step as seen by a renderer.
type Entry struct {
	Position int
	Step     Step
	Handle   *Handle
}

// Render binds the current handle to every visible step, in order, and passes
// each of them to visit. Steps past the cursor are neither bound nor visited.
func (s *Session) Render(visit func(Entry)) {
	if s == nil {
		return
	}
	h := s.Handle()
	for pos, st := range s.Visible() {
		st.Bind(h)
		if visit != nil {
			visit(Entry{Position: pos, Step: st, Handle: h})
		}
	}
}

// Snapshot describes the session for remote hosts.
// Steps may implement fmt.Stringer and Kind() string to fill in the views.
func (s *Session) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		Session:      s.Name(),
		CurrentIndex: s.CurrentIndex(),
		Length:       s.Len(),
		Done:         s.Done(),
		Visible:      []domain.StepView{},
	}
	for pos, st := range s.Visible() {
		snap.Visible = append(snap.Visible, describe(pos, st))
	}
	return snap
}

func describe(pos int, st Step) domain.StepView {
	view := domain.StepView{Position: pos}
	if k, ok := st.(interface{ Kind() string }); ok {
		view.Kind = k.Kind()
	}
	switch v := st.(type) {
	case *Session:
		view.Kind = domain.KindSession
		view.Text = v.Name()
	case fmt.Stringer:
		view.Text = v.String()
	}
	return view
}
