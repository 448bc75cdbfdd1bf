package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/clui/pkg/domain"
	"github.com/aretw0/clui/pkg/registry"
)

// Validate reports every problem found in script, joined into one error.
// A nil registry means registry.NewDefault().
func Validate(script domain.Script, reg *registry.Registry) error {
	if reg == nil {
		reg = registry.NewDefault()
	}
	v := &validator{reg: reg}
	if len(script.Steps) == 0 {
		v.fail("steps", domain.ErrEmptyScript)
	}
	v.steps("steps", script.Steps)
	return errors.Join(v.errs...)
}

type validator struct {
	reg  *registry.Registry
	errs []error
}

func (v *validator) fail(path string, err error) {
	v.errs = append(v.errs, fmt.Errorf("%s: %w", path, err))
}

func (v *validator) steps(path string, specs []domain.StepSpec) {
	for i, spec := range specs {
		v.step(fmt.Sprintf("%s[%d]", path, i), spec)
	}
}

func (v *validator) step(path string, spec domain.StepSpec) {
	if spec.Kind == "" {
		v.fail(path, fmt.Errorf("%w: missing kind", domain.ErrInvalidScript))
		return
	}
	if !v.reg.Has(spec.Kind) {
		v.fail(path, fmt.Errorf("%w: %q", domain.ErrUnknownStepKind, spec.Kind))
		return
	}

	switch spec.Kind {
	case domain.KindMessage:
		if strings.TrimSpace(spec.Text) == "" {
			v.fail(path, fmt.Errorf("%w: message without text", domain.ErrInvalidScript))
		}
	case domain.KindPrompt:
		if spec.Key == "" {
			v.fail(path, fmt.Errorf("%w: prompt without key", domain.ErrInvalidScript))
		}
		for answer, follow := range spec.Insert {
			v.steps(fmt.Sprintf("%s.insert[%s]", path, answer), follow)
		}
	case domain.KindConfirm:
		if strings.TrimSpace(spec.Text) == "" {
			v.fail(path, fmt.Errorf("%w: confirm without text", domain.ErrInvalidScript))
		}
	case domain.KindSession:
		if len(spec.Steps) == 0 {
			v.fail(path, domain.ErrEmptyScript)
		}
		v.steps(path+".steps", spec.Steps)
	}
}
