package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/clui/pkg/domain"
	"github.com/aretw0/clui/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type textStep string

func (textStep) Bind(*session.Handle) {}
func (t textStep) String() string     { return string(t) }
func (textStep) Kind() string         { return domain.KindMessage }

func newTestHandler(opts ...Option) (http.Handler, *session.Guard) {
	g := session.NewGuard(session.New([]any{textStep("a"), textStep("b")}, session.WithName("demo")))
	return NewHandler(g, opts...), g
}

func do(t *testing.T, h http.Handler, method, path string, body string) (*httptest.ResponseRecorder, domain.Snapshot) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var snap domain.Snapshot
	if w.Code == http.StatusOK && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	}
	return w, snap
}

func TestServer_SessionLifecycle(t *testing.T) {
	h, _ := newTestHandler()

	w, snap := do(t, h, "GET", "/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "demo", snap.Session)
	assert.Equal(t, []domain.StepView{{Position: 0, Kind: domain.KindMessage, Text: "a"}}, snap.Visible)

	_, snap = do(t, h, "POST", "/next", "")
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.True(t, snap.Done)

	_, snap = do(t, h, "POST", "/next", "")
	assert.Equal(t, 1, snap.CurrentIndex, "exhausted session without callbacks stays put")

	_, snap = do(t, h, "POST", "/reset", "")
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.Len(t, snap.Visible, 1)
}

func TestServer_NextWalksNestedSession(t *testing.T) {
	child := session.New([]any{textStep("x"), textStep("y")}, session.WithName("child"))
	g := session.NewGuard(session.New([]any{textStep("a"), child, textStep("c")}, session.WithName("demo")))
	h := NewHandler(g)

	_, snap := do(t, h, "POST", "/next", "")
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.Equal(t, domain.StepView{Position: 1, Kind: domain.KindSession, Text: "child"}, snap.Visible[1])

	_, snap = do(t, h, "POST", "/next", "")
	assert.Equal(t, 1, snap.CurrentIndex, "the nested session reveals its own steps first")
	assert.Equal(t, 1, child.CurrentIndex())

	_, snap = do(t, h, "POST", "/next", "")
	assert.Equal(t, 2, snap.CurrentIndex)
	assert.True(t, snap.Done)

	_, snap = do(t, h, "POST", "/reset", "")
	assert.Equal(t, 0, snap.CurrentIndex)
	_, _ = do(t, h, "POST", "/next", "")
	assert.Equal(t, 0, child.CurrentIndex(), "a nested session shown again starts over")
}

func TestServer_Insert(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		h, _ := newTestHandler()
		w, _ := do(t, h, "POST", "/insert", `{"steps":["x"]}`)
		assert.Equal(t, http.StatusNotImplemented, w.Code)
	})

	t.Run("enabled", func(t *testing.T) {
		var got []any
		h, _ := newTestHandler(WithStepBuilder(func(raw []any) ([]any, error) {
			got = raw
			units := make([]any, 0, len(raw))
			for _, r := range raw {
				units = append(units, textStep(r.(string)))
			}
			return units, nil
		}))

		w, snap := do(t, h, "POST", "/insert", `{"steps":["x","y"]}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{"x", "y"}, got)
		assert.Equal(t, 4, snap.Length)
		assert.Equal(t, 0, snap.CurrentIndex)
	})

	t.Run("builder error", func(t *testing.T) {
		h, _ := newTestHandler(WithStepBuilder(func([]any) ([]any, error) {
			return nil, errors.New("unknown step kind")
		}))
		w, _ := do(t, h, "POST", "/insert", `{"steps":[{"kind":"video"}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unknown step kind")
	})

	t.Run("bad body", func(t *testing.T) {
		h, _ := newTestHandler(WithStepBuilder(func([]any) ([]any, error) { return nil, nil }))
		w, _ := do(t, h, "POST", "/insert", `{`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestServer_HealthAndInfo(t *testing.T) {
	h, _ := newTestHandler()

	w, _ := do(t, h, "GET", "/health", "")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w, _ = do(t, h, "GET", "/info", "")
	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "clui-http", info["app"])
	assert.NotEmpty(t, info["version"])
}

func TestServer_CORSPreflight(t *testing.T) {
	h, _ := newTestHandler()
	w, _ := do(t, h, "OPTIONS", "/next", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents_StreamsTransitions(t *testing.T) {
	h, _ := newTestHandler()
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/events?type=advance", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)

	// The subscription exists once the ping was flushed.
	for _, path := range []string{"/reset", "/next"} {
		r, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(nil))
		require.NoError(t, err)
		r.Body.Close()
	}

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: {") {
			break
		}
	}

	var evt domain.Event
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &evt))
	assert.Equal(t, domain.EventAdvance, evt.Type, "reset is filtered out")
	assert.Equal(t, "demo", evt.Session)
	assert.Equal(t, 1, evt.Index)
}
