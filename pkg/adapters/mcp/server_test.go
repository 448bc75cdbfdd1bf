package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/clui/pkg/domain"
	"github.com/aretw0/clui/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type textStep string

func (textStep) Bind(*session.Handle) {}
func (t textStep) String() string     { return string(t) }

func newTestServer(opts ...Option) *Server {
	s := session.New([]any{textStep("a"), textStep("b")}, session.WithName("demo"))
	return NewServer(session.NewGuard(s), opts...)
}

func TestServer_NextAndReset(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	snap, err := srv.handleState(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "demo", snap.Session)
	assert.Equal(t, 0, snap.CurrentIndex)

	snap, err = srv.handleNext(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.Equal(t, []domain.StepView{{Position: 0, Text: "a"}, {Position: 1, Text: "b"}}, snap.Visible)

	snap, err = srv.handleReset(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.CurrentIndex)
}

func TestServer_NextWalksNestedSession(t *testing.T) {
	child := session.New([]any{textStep("x"), textStep("y")}, session.WithName("child"))
	srv := NewServer(session.NewGuard(session.New([]any{child, textStep("b")})))
	ctx := context.Background()

	snap, err := srv.handleNext(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.Equal(t, 1, child.CurrentIndex())

	snap, err = srv.handleNext(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.True(t, snap.Done)
}

func TestServer_Insert(t *testing.T) {
	srv := newTestServer(WithStepBuilder(func(raw []any) ([]any, error) {
		units := make([]any, 0, len(raw))
		for _, r := range raw {
			units = append(units, textStep(r.(string)))
		}
		return units, nil
	}))
	ctx := context.Background()

	snap, err := srv.handleInsert(ctx, mcp.CallToolRequest{}, map[string]interface{}{"steps": `["x"]`})
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Length)

	_, err = srv.handleInsert(ctx, mcp.CallToolRequest{}, map[string]interface{}{"steps": `not json`})
	assert.Error(t, err)

	_, err = srv.handleInsert(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	assert.Error(t, err)
}

func TestServer_InsertDisabled(t *testing.T) {
	_, err := newTestServer().handleInsert(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"steps": `["x"]`})
	assert.Error(t, err)
}

func TestServer_ScriptResource(t *testing.T) {
	script := domain.Script{Name: "demo", Steps: []domain.StepSpec{{Kind: domain.KindMessage, Text: "a"}}}
	srv := newTestServer(WithScript(script))

	contents, err := srv.readScript(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, ScriptURI, text.URI)

	var got domain.Script
	require.NoError(t, json.Unmarshal([]byte(text.Text), &got))
	assert.Equal(t, script, got)
}
