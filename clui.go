package clui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/clui/internal/compiler"
	"github.com/aretw0/clui/pkg/adapters/file"
	loamAdapter "github.com/aretw0/clui/pkg/adapters/loam"
	"github.com/aretw0/clui/pkg/domain"
	"github.com/aretw0/clui/pkg/ports"
	"github.com/aretw0/clui/pkg/registry"
	"github.com/aretw0/clui/pkg/runner"
	"github.com/aretw0/clui/pkg/session"
	"github.com/aretw0/clui/pkg/steps"
)

// Engine is the high-level entry point for the clui library.
// It loads a script, compiles it into a session tree and keeps the answers.
type Engine struct {
	loader     ports.ScriptLoader
	registry   *registry.Registry
	memory     *steps.Memory
	observers  []session.Observer
	publishers []ports.EventPublisher
	onDone     func()
	logger     *slog.Logger

	script  domain.Script
	session *session.Session

	Name string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom ScriptLoader, bypassing path-based loading.
func WithLoader(l ports.ScriptLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithObserver subscribes o to every session of the compiled script.
func WithObserver(o session.Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// WithPublisher forwards every transition to p. Publish failures are logged
// and never interrupt the session.
func WithPublisher(p ports.EventPublisher) Option {
	return func(e *Engine) {
		if p != nil {
			e.publishers = append(e.publishers, p)
		}
	}
}

// WithRegistry replaces the step kind registry.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithOnDone sets the callback fired when the root session is exhausted.
func WithOnDone(fn func()) Option {
	return func(e *Engine) {
		e.onDone = fn
	}
}

// WithMemory shares an answer store, e.g. to pre-fill answers.
func WithMemory(m *steps.Memory) Option {
	return func(e *Engine) {
		e.memory = m
	}
}

// LoaderFor picks the loader for path: YAML and JSON files are read directly,
// anything else is opened as a Loam repository.
func LoaderFor(path string) (ports.ScriptLoader, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required when no custom loader is provided")
	}
	if file.Supports(path) {
		return file.New(path), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("unsupported script %q: expected .yaml, .yml, .json or a directory", path)
	}
	return loamAdapter.Open(path)
}

// New loads the script at path and compiles it.
// If WithLoader option is provided, path can be empty and is only used as a label.
func New(path string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		loader, err := LoaderFor(path)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
	}
	if path != "" {
		eng.Name = filepath.Base(path)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.memory == nil {
		eng.memory = steps.NewMemory()
	}
	if eng.registry == nil {
		eng.registry = registry.NewDefault()
	}

	script, err := eng.loader.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load script: %w", err)
	}
	if script.Name == "" {
		script.Name = eng.Name
	}
	eng.Name = script.Name
	eng.logger = eng.logger.With("script", eng.Name)

	sess, err := compiler.Compile(script, eng.compilerOptions(compiler.WithOnDone(eng.onDone))...)
	if err != nil {
		return nil, err
	}

	eng.script = script
	eng.session = sess
	return eng, nil
}

func (e *Engine) compilerOptions(extra ...compiler.Option) []compiler.Option {
	opts := []compiler.Option{
		compiler.WithRegistry(e.registry),
		compiler.WithMemory(e.memory),
		compiler.WithLogger(e.logger),
	}
	for _, o := range e.observers {
		opts = append(opts, compiler.WithObserver(o))
	}
	for _, p := range e.publishers {
		opts = append(opts, compiler.WithObserver(e.publish(p)))
	}
	return append(opts, extra...)
}

func (e *Engine) publish(p ports.EventPublisher) session.Observer {
	return func(evt domain.Event) {
		if err := p.Publish(context.Background(), evt); err != nil {
			e.logger.Warn("event publish failed", "type", evt.Type, "session", evt.Session, "err", err)
		}
	}
}

// Session returns the root session.
func (e *Engine) Session() *session.Session {
	return e.session
}

// Memory returns the answers collected so far.
func (e *Engine) Memory() *steps.Memory {
	return e.memory
}

// Script returns the loaded script.
func (e *Engine) Script() domain.Script {
	return e.script
}

// Snapshot describes the root session.
func (e *Engine) Snapshot() domain.Snapshot {
	return e.session.Snapshot()
}

// BuildSteps builds loosely typed steps (as found in a script) for insertion
// into the running session. It satisfies ports.StepBuilder.
func (e *Engine) BuildSteps(raw []any) ([]any, error) {
	return compiler.BuildSteps(raw, e.compilerOptions()...)
}

// Run drives the session interactively until it stops growing.
func (e *Engine) Run(ctx context.Context, opts ...runner.Option) error {
	opts = append([]runner.Option{runner.WithLogger(e.logger)}, opts...)
	return runner.NewRunner(opts...).Run(ctx, e.session)
}
