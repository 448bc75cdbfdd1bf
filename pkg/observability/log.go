package observability

import (
	"log/slog"

	"github.com/aretw0/clui/pkg/domain"
)

// LogObserver returns a session observer writing one debug record per transition.
func LogObserver(logger *slog.Logger) func(domain.Event) {
	return func(evt domain.Event) {
		attrs := []any{
			"session", evt.Session,
			"index", evt.Index,
			"visible", evt.Visible,
			"length", evt.Length,
		}
		if evt.Count > 0 {
			attrs = append(attrs, "count", evt.Count)
		}
		logger.Debug("session "+string(evt.Type), attrs...)
	}
}

// Fanout combines observers into one. Nil observers are skipped.
func Fanout(observers ...func(domain.Event)) func(domain.Event) {
	var live []func(domain.Event)
	for _, o := range observers {
		if o != nil {
			live = append(live, o)
		}
	}
	return func(evt domain.Event) {
		for _, o := range live {
			o(evt)
		}
	}
}
