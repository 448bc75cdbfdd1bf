package loam

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"

	"github.com/aretw0/clui/internal/testutils"
	"github.com/aretw0/clui/pkg/domain"
	contract "github.com/aretw0/clui/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, tmpDir, files)
	return New(loam.NewTypedRepository[StepMetadata](repo), "tour")
}

func TestLoader_Contract(t *testing.T) {
	loader := seed(t, map[string]string{
		"welcome.md": `---
order: 1
---
# Welcome`,
		"name.md": `---
order: 2
kind: prompt
key: name
default: friend
insert:
  "*":
    - message: Thanks {{ .name }}
---
What is your name?`,
		"done.json": `{"order": 3, "kind": "confirm", "text": "Start over?", "reset_on_no": true}`,
	})

	want := domain.Script{
		Name: "tour",
		Steps: []domain.StepSpec{
			{Kind: domain.KindMessage, Text: "# Welcome"},
			{Kind: domain.KindPrompt, Key: "name", Default: "friend", Text: "What is your name?",
				Insert: map[string][]domain.StepSpec{
					"*": {{Kind: domain.KindMessage, Text: "Thanks {{ .name }}"}},
				}},
			{Kind: domain.KindConfirm, Text: "Start over?", ResetOnNo: true},
		},
	}

	contract.ScriptLoaderContractTest(t, loader, want)
}

func TestLoader_OrdersByIDWithoutOrder(t *testing.T) {
	loader := seed(t, map[string]string{
		"b.md": "Second",
		"a.md": "First",
		"c.md": `---
order: -1
---
Zeroth`,
	})

	script, err := loader.Load(context.Background())
	require.NoError(t, err)

	texts := make([]string, 0, len(script.Steps))
	for _, s := range script.Steps {
		texts = append(texts, s.Text)
	}
	assert.Equal(t, []string{"Zeroth", "First", "Second"}, texts)
}

func TestLoader_NestedSession(t *testing.T) {
	loader := seed(t, map[string]string{
		"profile.yaml": `kind: session
key: profile
initial_index: 1
steps:
  - Inside
  - prompt: Age?
    key: age
`,
	})

	script, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, script.Steps, 1)

	sub := script.Steps[0]
	assert.Equal(t, domain.KindSession, sub.Kind)
	assert.Equal(t, 1, sub.InitialIndex)
	require.Len(t, sub.Steps, 2)
	assert.Equal(t, domain.StepSpec{Kind: domain.KindPrompt, Text: "Age?", Key: "age"}, sub.Steps[1])
}

func TestLoader_DetectsCollisions(t *testing.T) {
	loader := seed(t, map[string]string{
		"foo.md": `---
id: foo
---
Explicit ID`,
		"foo.json": `{"id": "foo", "text": "again"}`,
	})

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "foo")
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.md"), []byte("Hello"), 0644))

	loader, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), loader.Name)

	script, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, script.Steps, 1)
	assert.Equal(t, "Hello", script.Steps[0].Text)
}

func TestToInt(t *testing.T) {
	for _, v := range []any{nil, 3, int64(3), 3.0, "3"} {
		n, err := toInt(v)
		require.NoError(t, err)
		if v != nil {
			assert.Equal(t, 3, n)
		}
	}
	_, err := toInt([]string{"x"})
	assert.Error(t, err)
}
