package tests

import (
	"context"
	"reflect"
	"testing"

	"github.com/aretw0/clui/pkg/domain"
	"github.com/aretw0/clui/pkg/ports"
)

// ScriptLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.ScriptLoader.
func ScriptLoaderContractTest(t *testing.T, loader ports.ScriptLoader, want domain.Script) {
	t.Helper()

	// 1. Load returns the seeded script
	t.Run("Load_Success", func(t *testing.T) {
		got, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading script: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("script mismatch.\ngot  %+v\nwant %+v", got, want)
		}
	})

	// 2. Load is repeatable
	t.Run("Load_Repeatable", func(t *testing.T) {
		first, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error on first load: %v", err)
		}
		second, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error on second load: %v", err)
		}
		if len(first.Steps) != len(second.Steps) {
			t.Errorf("expected %d steps on reload, got %d", len(first.Steps), len(second.Steps))
		}
	})

	// 3. A cancelled context is honored
	t.Run("Load_Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := loader.Load(ctx); err == nil {
			t.Error("expected error for cancelled context, got nil")
		}
	})
}
