package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/clui/pkg/adapters/memory"
	"github.com/aretw0/clui/pkg/domain"
	contract "github.com/aretw0/clui/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	script := domain.Script{
		Name: "greeting",
		Steps: []domain.StepSpec{
			{Kind: domain.KindMessage, Text: "Hello World"},
			{Kind: domain.KindPrompt, Key: "name", Text: "Name?", Insert: map[string][]domain.StepSpec{
				"*": {{Kind: domain.KindMessage, Text: "Goodbye"}},
			}},
		},
	}

	loader, err := memory.NewFromScript(script)
	require.NoError(t, err)

	contract.ScriptLoaderContractTest(t, loader, script)
}

func TestInMemoryLoader_Isolation(t *testing.T) {
	loader := memory.NewLoader(`{"name":"x","steps":[{"kind":"message","text":"a"}]}`)

	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	first.Steps[0].Text = "mutated"

	second, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", second.Steps[0].Text)
}

func TestInMemoryLoader_InvalidJSON(t *testing.T) {
	_, err := memory.NewLoader(`{`).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidScript)
}

func TestPublisher_KeepsRecentHistory(t *testing.T) {
	p := memory.NewPublisher(2)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, p.Publish(ctx, domain.Event{Type: domain.EventAdvance, Index: i}))
	}

	events := p.Events()
	require.Len(t, events, 2)
	assert.Equal(t, 2, events[0].Index)
	assert.Equal(t, 3, events[1].Index)
}
