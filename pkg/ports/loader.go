package ports

import (
	"context"

	"github.com/aretw0/clui/pkg/domain"
)

// ScriptLoader defines how a host retrieves the script it compiles.
// This allows the storage layer (Loam, files, memory) to be decoupled.
type ScriptLoader interface {
	// Load reads and decodes the whole script.
	Load(ctx context.Context) (domain.Script, error)
}

// ScriptLoaderFunc adapts a function to ScriptLoader.
type ScriptLoaderFunc func(ctx context.Context) (domain.Script, error)

func (f ScriptLoaderFunc) Load(ctx context.Context) (domain.Script, error) {
	return f(ctx)
}
