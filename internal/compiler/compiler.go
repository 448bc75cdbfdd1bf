package compiler

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/clui/internal/logging"
	"github.com/aretw0/clui/pkg/domain"
	"github.com/aretw0/clui/pkg/registry"
	"github.com/aretw0/clui/pkg/session"
	"github.com/aretw0/clui/pkg/steps"
)

// Option configures Compile.
type Option func(*config)

type config struct {
	registry  *registry.Registry
	memory    *steps.Memory
	observers []session.Observer
	logger    *slog.Logger
	onDone    func()
}

// WithRegistry sets the kind registry (default registry.NewDefault()).
func WithRegistry(r *registry.Registry) Option {
	return func(c *config) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithMemory shares an answer store with the caller.
func WithMemory(m *steps.Memory) Option {
	return func(c *config) {
		if m != nil {
			c.memory = m
		}
	}
}

// WithObserver subscribes o to the root session and every nested session.
func WithObserver(o session.Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithLogger sets the logger handed to every compiled session.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOnDone sets the completion callback of the root session.
func WithOnDone(fn func()) Option {
	return func(c *config) {
		c.onDone = fn
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		registry: registry.NewDefault(),
		memory:   steps.NewMemory(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) sessionOptions() []session.Option {
	common := []session.Option{session.WithLogger(c.logger)}
	for _, o := range c.observers {
		common = append(common, session.WithObserver(o))
	}
	return common
}

func (c *config) env() registry.Env {
	env := registry.Env{
		Memory:         c.memory,
		SessionOptions: c.sessionOptions(),
	}
	env.Build = func(specs []domain.StepSpec) ([]any, error) {
		units := make([]any, 0, len(specs))
		for i, spec := range specs {
			st, err := c.registry.Build(spec, env)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			units = append(units, st)
		}
		return units, nil
	}
	return env
}

// Compile validates script and builds the live session tree.
func Compile(script domain.Script, opts ...Option) (*session.Session, error) {
	c := newConfig(opts)

	if err := Validate(script, c.registry); err != nil {
		return nil, err
	}

	children, err := c.env().Build(script.Steps)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", script.Name, err)
	}

	rootOpts := append(c.sessionOptions(),
		session.WithName(script.Name),
		session.WithInitialIndex(script.InitialIndex),
	)
	if c.onDone != nil {
		rootOpts = append(rootOpts, session.WithOnDone(c.onDone))
	}

	c.logger.Debug("script compiled", "script", script.Name, "steps", len(children))
	return session.New(children, rootOpts...), nil
}

// BuildSteps decodes, validates and builds loosely typed steps, ready to be
// inserted into a session compiled with the same options.
func BuildSteps(raw []any, opts ...Option) ([]any, error) {
	c := newConfig(opts)

	specs := make([]domain.StepSpec, 0, len(raw))
	for i, r := range raw {
		spec, err := DecodeStep(r)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		specs = append(specs, spec)
	}
	if err := Validate(domain.Script{Steps: specs}, c.registry); err != nil {
		return nil, err
	}
	return c.env().Build(specs)
}
