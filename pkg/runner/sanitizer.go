package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxInputSize bounds a single answer (bytes).
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize overrides DefaultMaxInputSize.
	EnvMaxInputSize = "CLUI_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Sanitizer is the input policy applied to answers before steps see them.
type Sanitizer struct {
	MaxSize int
}

// DefaultSanitizer reads the size limit from the environment.
func DefaultSanitizer() Sanitizer {
	limit := DefaultMaxInputSize
	if raw := os.Getenv(EnvMaxInputSize); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	return Sanitizer{MaxSize: limit}
}

// Clean trims surrounding whitespace, rejects oversized or invalid UTF-8
// answers and strips control characters other than newline, tab and CR.
// Oversized input is rejected rather than truncated so answers stay deterministic.
func (s Sanitizer) Clean(input string) (string, error) {
	if s.MaxSize > 0 && len(input) > s.MaxSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), s.MaxSize)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}
	input = strings.TrimSpace(input)
	if strings.IndexFunc(input, isUnsafeControl) < 0 {
		return input, nil
	}
	return strings.Map(func(r rune) rune {
		if isUnsafeControl(r) {
			return -1
		}
		return r
	}, input), nil
}

// SanitizeInput applies DefaultSanitizer to input.
func SanitizeInput(input string) (string, error) {
	return DefaultSanitizer().Clean(input)
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
