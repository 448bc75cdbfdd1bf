package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aretw0/clui/internal/logging"
	"github.com/aretw0/clui/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel events are published on.
const DefaultChannel = "clui:events"

// Publisher implements ports.EventPublisher using Redis pub/sub.
// When a history size is set, the latest events are also kept in a list.
type Publisher struct {
	client  *backend.Client
	channel string
	history int64
	logger  *slog.Logger
}

type Option func(*Publisher)

// WithChannel sets the pub/sub channel.
func WithChannel(channel string) Option {
	return func(p *Publisher) {
		if channel != "" {
			p.channel = channel
		}
	}
}

// WithHistory keeps the latest n events in the list "<channel>:history".
func WithHistory(n int) Option {
	return func(p *Publisher) {
		p.history = int64(max(n, 0))
	}
}

// WithLogger sets the logger used by Observer to report publish failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a new Redis publisher with options.
func New(address, password string, db int, opts ...Option) *Publisher {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a publisher from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client:  client,
		channel: DefaultChannel,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Channel returns the pub/sub channel.
func (p *Publisher) Channel() string {
	return p.channel
}

func (p *Publisher) historyKey() string {
	return p.channel + ":history"
}

// Publish sends evt as JSON to the channel (and the history list, if enabled).
func (p *Publisher) Publish(ctx context.Context, evt domain.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pipe := p.client.Pipeline()
	pipe.Publish(ctx, p.channel, data)
	if p.history > 0 {
		pipe.RPush(ctx, p.historyKey(), data)
		pipe.LTrim(ctx, p.historyKey(), -p.history, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis error publishing event: %w", err)
	}
	return nil
}

// History returns the retained events, oldest first.
func (p *Publisher) History(ctx context.Context) ([]domain.Event, error) {
	raw, err := p.client.LRange(ctx, p.historyKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error reading history: %w", err)
	}
	events := make([]domain.Event, 0, len(raw))
	for _, item := range raw {
		var evt domain.Event
		if err := json.Unmarshal([]byte(item), &evt); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event: %w", err)
		}
		events = append(events, evt)
	}
	return events, nil
}

// Observer returns a session observer that publishes every event.
// Failures are logged; the session is never interrupted.
func (p *Publisher) Observer(ctx context.Context) func(domain.Event) {
	return func(evt domain.Event) {
		if err := p.Publish(ctx, evt); err != nil {
			p.logger.Warn("event publish failed", "type", evt.Type, "session", evt.Session, "err", err)
		}
	}
}

// Close closes the underlying client.
func (p *Publisher) Close() error {
	return p.client.Close()
}
