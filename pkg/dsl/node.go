package dsl

import (
	"github.com/aretw0/clui/pkg/domain"
)

// StepBuilder provides a fluent API for configuring a single step.
type StepBuilder struct {
	spec domain.StepSpec
}

// Key sets the answer slot (prompts and confirms).
func (sb *StepBuilder) Key(key string) *StepBuilder {
	sb.spec.Key = key
	return sb
}

// Default sets the answer used when a prompt is submitted empty.
func (sb *StepBuilder) Default(value string) *StepBuilder {
	sb.spec.Default = value
	return sb
}

// ResetOnNo makes a confirm rewind its session when answered "no".
func (sb *StepBuilder) ResetOnNo() *StepBuilder {
	sb.spec.ResetOnNo = true
	return sb
}

// StartAt sets the initial cursor of a nested session.
func (sb *StepBuilder) StartAt(index int) *StepBuilder {
	sb.spec.InitialIndex = index
	return sb
}

// On declares the follow-up steps a prompt appends when answered with answer.
// Use domain.AnyAnswer ("*") to match any answer.
func (sb *StepBuilder) On(answer string, fn func(b *Builder)) *StepBuilder {
	follow := New("")
	if fn != nil {
		fn(follow)
	}
	if sb.spec.Insert == nil {
		sb.spec.Insert = make(map[string][]domain.StepSpec)
	}
	sb.spec.Insert[answer] = append(sb.spec.Insert[answer], follow.Script().Steps...)
	return sb
}

// Spec returns the step declared so far.
func (sb *StepBuilder) Spec() domain.StepSpec {
	return sb.spec
}
