package domain

import "errors"

// ErrUnknownStepKind is returned when a script references a kind no factory is registered for.
var ErrUnknownStepKind = errors.New("unknown step kind")

// ErrEmptyScript is returned when a script (or nested session) declares no steps.
var ErrEmptyScript = errors.New("script has no steps")

// ErrInvalidScript is returned when a script cannot be decoded.
var ErrInvalidScript = errors.New("invalid script")
