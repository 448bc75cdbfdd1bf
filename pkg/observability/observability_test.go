package observability

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/clui/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Observe(domain.Event{Type: domain.EventAdvance, Session: "main", Visible: 2, Length: 3})
	m.Observe(domain.Event{Type: domain.EventAdvance, Session: "main", Visible: 3, Length: 3})
	m.Observe(domain.Event{Type: domain.EventInsert, Session: "main", Visible: 3, Length: 5, Count: 2})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Transitions.WithLabelValues("main", "advance")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("main", "insert")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Visible.WithLabelValues("main")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Length.WithLabelValues("main")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Inserted.WithLabelValues("main")))

	count, err := testutil.GatherAndCount(reg, "clui_session_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewMetrics_NilRegisterer(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(nil).Observe(domain.Event{Type: domain.EventReset})
	})
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	LogObserver(logger)(domain.Event{Type: domain.EventInsert, Session: "main", Index: 1, Visible: 2, Length: 4, Count: 2})

	out := buf.String()
	assert.Contains(t, out, `msg="session insert"`)
	assert.Contains(t, out, "session=main")
	assert.Contains(t, out, "count=2")
}

func TestFanout(t *testing.T) {
	var calls []string
	obs := Fanout(
		func(e domain.Event) { calls = append(calls, "a:"+string(e.Type)) },
		nil,
		func(e domain.Event) { calls = append(calls, "b:"+string(e.Type)) },
	)
	obs(domain.Event{Type: domain.EventReset})
	assert.Equal(t, []string{"a:reset", "b:reset"}, calls)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "advance main 2/5", Describe(domain.Event{Type: domain.EventAdvance, Session: "main", Visible: 2, Length: 5}))
	assert.True(t, strings.HasPrefix(Describe(domain.Event{Type: domain.EventDone}), "done session"))
}
