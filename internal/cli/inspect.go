package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/clui"
	"github.com/aretw0/clui/internal/compiler"
	"github.com/aretw0/clui/internal/presentation/graph"
	"github.com/aretw0/clui/pkg/registry"
)

// Validate loads the script at path and reports every problem found.
func Validate(ctx context.Context, path string) error {
	loader, err := clui.LoaderFor(path)
	if err != nil {
		return err
	}
	script, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}
	return compiler.Validate(script, registry.NewDefault())
}

// Graph writes a Mermaid flowchart of the script at path.
// With overlay set, the steps visible at start are highlighted.
func Graph(w io.Writer, path string, overlay bool) error {
	eng, err := clui.New(path)
	if err != nil {
		return fmt.Errorf("error initializing engine: %w", err)
	}
	var ov *graph.Overlay
	if overlay {
		ov = &graph.Overlay{Visible: len(eng.Snapshot().Visible)}
	}
	_, err = fmt.Fprint(w, graph.GenerateMermaid(eng.Script(), ov))
	return err
}
