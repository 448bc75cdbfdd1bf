package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/clui/internal/logging"
	"github.com/aretw0/clui/pkg/domain"
	"github.com/aretw0/clui/pkg/session"
)

// Runner handles the activation loop of a reveal session using the provided IO.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	// Handler is the strategy for IO.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// AutoAdvance makes revealed steps that are not Activators call Next themselves.
	AutoAdvance bool
}

// NewRunner creates a new Runner with default Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		AutoAdvance: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	return r
}

// Run activates revealed steps until the session stops growing: either the flow
// is finished, or the newest step returned without advancing.
// A closed input stream ends the run without error.
func (r *Runner) Run(ctx context.Context, s *session.Session) error {
	if s == nil {
		return fmt.Errorf("runner: nil session")
	}
	err := r.drive(ctx, s, 0)
	if errors.Is(err, io.EOF) {
		r.Logger.Debug("input closed", "session", s.Name())
		return nil
	}
	return err
}

func (r *Runner) drive(ctx context.Context, s *session.Session, depth int) error {
	// Reset, Mount and new children restart the transcript from the first step.
	rewind := false
	unsubscribe := s.Subscribe(func(e domain.Event) {
		switch e.Type {
		case domain.EventReset, domain.EventMount, domain.EventChildren:
			rewind = true
		}
	})
	defer unsubscribe()

	activated := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var entries []session.Entry
		s.Render(func(e session.Entry) {
			entries = append(entries, e)
		})

		if activated >= len(entries) {
			r.Logger.Debug("session idle",
				"session", s.Name(),
				"index", s.CurrentIndex(),
				"done", s.Done(),
				"depth", depth,
			)
			return nil
		}

		entry := entries[activated]
		activated++
		if entry.Position < s.CurrentIndex() {
			if err := r.replay(ctx, entry); err != nil {
				return err
			}
			continue
		}
		if err := r.activate(ctx, entry, depth); err != nil {
			return err
		}

		if rewind {
			rewind = false
			activated = 0
		}
	}
}

func (r *Runner) activate(ctx context.Context, e session.Entry, depth int) error {
	switch st := e.Step.(type) {
	case *session.Session:
		r.Logger.Debug("entering nested session", "session", st.Name(), "position", e.Position, "depth", depth)
		// A nested session revealed (again) starts from its mounted state.
		st.Mount()
		return r.drive(ctx, st, depth+1)
	case Activator:
		r.Logger.Debug("activating step", "position", e.Position, "depth", depth)
		if err := st.Activate(ctx, r.Handler); err != nil {
			return fmt.Errorf("step %d: %w", e.Position, err)
		}
	default:
		if r.AutoAdvance {
			e.Handle.Next()
		}
	}
	return nil
}

func (r *Runner) replay(ctx context.Context, e session.Entry) error {
	rp, ok := e.Step.(Replayer)
	if !ok {
		return nil
	}
	if err := rp.Replay(ctx, r.Handler); err != nil {
		return fmt.Errorf("step %d: %w", e.Position, err)
	}
	return nil
}
