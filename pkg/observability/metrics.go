package observability

import (
	"strconv"

	"github.com/aretw0/clui/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records session transitions as Prometheus series.
type Metrics struct {
	Transitions *prometheus.CounterVec
	Visible     *prometheus.GaugeVec
	Length      *prometheus.GaugeVec
	Inserted    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clui_session_transitions_total",
				Help: "Total number of session transitions, by type",
			},
			[]string{"session", "type"},
		),
		Visible: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "clui_session_visible_steps",
				Help: "Number of steps currently revealed",
			},
			[]string{"session"},
		),
		Length: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "clui_session_length_steps",
				Help: "Length of the step sequence, inserted steps included",
			},
			[]string{"session"},
		),
		Inserted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clui_session_inserted_steps_total",
				Help: "Total number of steps appended at runtime",
			},
			[]string{"session"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Transitions, m.Visible, m.Length, m.Inserted)
	}
	return m
}

// Observe is a session observer.
func (m *Metrics) Observe(evt domain.Event) {
	m.Transitions.WithLabelValues(evt.Session, string(evt.Type)).Inc()
	m.Visible.WithLabelValues(evt.Session).Set(float64(evt.Visible))
	m.Length.WithLabelValues(evt.Session).Set(float64(evt.Length))
	if evt.Type == domain.EventInsert {
		m.Inserted.WithLabelValues(evt.Session).Add(float64(evt.Count))
	}
}

// Describe formats evt for humans, e.g. "advance onboarding 2/5".
func Describe(evt domain.Event) string {
	name := evt.Session
	if name == "" {
		name = "session"
	}
	return string(evt.Type) + " " + name + " " + strconv.Itoa(evt.Visible) + "/" + strconv.Itoa(evt.Length)
}
