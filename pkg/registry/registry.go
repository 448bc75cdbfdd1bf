package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/clui/pkg/domain"
	"github.com/aretw0/clui/pkg/session"
	"github.com/aretw0/clui/pkg/steps"
)

// Env is what a Factory may use besides the spec itself.
type Env struct {
	// Memory is shared by every step of a compiled script.
	Memory *steps.Memory

	// Build compiles nested specs (sub-session children, prompt follow-ups).
	Build func(specs []domain.StepSpec) ([]any, error)

	// SessionOptions are applied to every nested session.
	SessionOptions []session.Option
}

// Factory turns a declarative step into a live one.
type Factory func(spec domain.StepSpec, env Env) (session.Step, error)

// Registry manages the available step kinds.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// NewDefault creates a registry with the built-in kinds: message, prompt,
// confirm and session.
func NewDefault() *Registry {
	r := NewRegistry()
	r.Register(domain.KindMessage, messageFactory)
	r.Register(domain.KindPrompt, promptFactory)
	r.Register(domain.KindConfirm, confirmFactory)
	r.Register(domain.KindSession, sessionFactory)
	return r
}

// Register adds a kind to the registry.
// If a kind with the same name exists, it is overwritten.
func (r *Registry) Register(kind string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = fn
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[kind]
	return ok
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Build looks up the factory for spec.Kind and runs it.
// Returns domain.ErrUnknownStepKind if the kind is not registered.
func (r *Registry) Build(spec domain.StepSpec, env Env) (session.Step, error) {
	r.mu.RLock()
	fn, ok := r.factories[spec.Kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStepKind, spec.Kind)
	}
	return fn(spec, env)
}

func messageFactory(spec domain.StepSpec, env Env) (session.Step, error) {
	return steps.NewMessage(spec.Text, env.Memory), nil
}

func promptFactory(spec domain.StepSpec, env Env) (session.Step, error) {
	p := steps.NewPrompt(spec.Key, spec.Text, env.Memory)
	p.Default = spec.Default
	if len(spec.Insert) == 0 {
		return p, nil
	}
	if env.Build == nil {
		return nil, fmt.Errorf("prompt %q: follow-ups need a builder", spec.Key)
	}

	p.FollowUps = make(map[string]steps.FollowUp, len(spec.Insert))
	for answer, specs := range spec.Insert {
		// Build once up front so malformed follow-ups fail at compile time.
		if _, err := env.Build(specs); err != nil {
			return nil, fmt.Errorf("prompt %q, answer %q: %w", spec.Key, answer, err)
		}
		p.FollowUps[answer] = func() ([]any, error) {
			return env.Build(specs)
		}
	}
	return p, nil
}

func confirmFactory(spec domain.StepSpec, env Env) (session.Step, error) {
	c := steps.NewConfirm(spec.Text, spec.ResetOnNo, env.Memory)
	c.Key = spec.Key
	return c, nil
}

func sessionFactory(spec domain.StepSpec, env Env) (session.Step, error) {
	var children []any
	if len(spec.Steps) > 0 {
		if env.Build == nil {
			return nil, fmt.Errorf("session %q: children need a builder", spec.Key)
		}
		var err error
		if children, err = env.Build(spec.Steps); err != nil {
			return nil, fmt.Errorf("session %q: %w", spec.Key, err)
		}
	}

	name := spec.Key
	if name == "" {
		name = spec.Text
	}
	opts := append(slices.Clone(env.SessionOptions),
		session.WithName(name),
		session.WithInitialIndex(spec.InitialIndex),
	)
	return session.New(children, opts...), nil
}
