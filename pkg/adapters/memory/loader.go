package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/clui/pkg/domain"
)

// Loader implements ports.ScriptLoader from a script held in memory.
// The script is kept serialized so every Load returns an independent copy.
type Loader struct {
	raw []byte
}

// NewLoader creates a Loader from raw JSON.
func NewLoader(data string) *Loader {
	return &Loader{raw: []byte(data)}
}

// NewFromScript creates a Loader from a domain object.
// This handles serialization automatically, improving DX for tests.
func NewFromScript(script domain.Script) (*Loader, error) {
	raw, err := json.Marshal(script)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal script %q: %w", script.Name, err)
	}
	return &Loader{raw: raw}, nil
}

// Load decodes a fresh copy of the script.
func (l *Loader) Load(ctx context.Context) (domain.Script, error) {
	var script domain.Script
	if err := ctx.Err(); err != nil {
		return script, err
	}
	if err := json.Unmarshal(l.raw, &script); err != nil {
		return script, fmt.Errorf("%w: %v", domain.ErrInvalidScript, err)
	}
	return script, nil
}
