/*
Package observability provides observers for monitoring running sessions.

Sessions notify observers synchronously on every transition. This package turns
those notifications into Prometheus series (Metrics) and structured log records
(LogObserver), and lets hosts attach several sinks at once (Fanout).

# Usage

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	obs := observability.Fanout(metrics.Observe, observability.LogObserver(logger))

	s := session.New(children, session.WithObserver(obs))
*/
package observability
