package dsl

import (
	"fmt"

	"github.com/aretw0/clui/pkg/adapters/memory"
	"github.com/aretw0/clui/pkg/domain"
)

// Builder manages the script construction. Steps are kept in declaration order.
type Builder struct {
	script domain.Script
	steps  []*StepBuilder
}

// New creates a new script builder.
func New(name string) *Builder {
	return &Builder{script: domain.Script{Name: name}}
}

// StartAt sets the initial cursor position of the script.
func (b *Builder) StartAt(index int) *Builder {
	b.script.InitialIndex = index
	return b
}

func (b *Builder) add(spec domain.StepSpec) *StepBuilder {
	sb := &StepBuilder{spec: spec}
	b.steps = append(b.steps, sb)
	return sb
}

// Message appends a step that shows text and advances.
func (b *Builder) Message(text string) *StepBuilder {
	return b.add(domain.StepSpec{Kind: domain.KindMessage, Text: text})
}

// Prompt appends a question whose answer is stored under key.
func (b *Builder) Prompt(key, text string) *StepBuilder {
	return b.add(domain.StepSpec{Kind: domain.KindPrompt, Key: key, Text: text})
}

// Confirm appends a yes/no question.
func (b *Builder) Confirm(text string) *StepBuilder {
	return b.add(domain.StepSpec{Kind: domain.KindConfirm, Text: text})
}

// Sub appends a nested session whose steps are declared by fn.
func (b *Builder) Sub(name string, fn func(sub *Builder)) *StepBuilder {
	sub := New(name)
	if fn != nil {
		fn(sub)
	}
	inner := sub.Script()
	return b.add(domain.StepSpec{
		Kind:         domain.KindSession,
		Key:          name,
		Steps:        inner.Steps,
		InitialIndex: inner.InitialIndex,
	})
}

// Step appends an already declared step, for kinds the builder has no helper for.
func (b *Builder) Step(spec domain.StepSpec) *StepBuilder {
	return b.add(spec)
}

// Script returns the declared script.
func (b *Builder) Script() domain.Script {
	script := b.script
	script.Steps = make([]domain.StepSpec, 0, len(b.steps))
	for _, sb := range b.steps {
		script.Steps = append(script.Steps, sb.spec)
	}
	return script
}

// Build compiles the script into a MemoryLoader.
func (b *Builder) Build() (*memory.Loader, error) {
	loader, err := memory.NewFromScript(b.Script())
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
