package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"stays/internal/app/policies"
	"stays/internal/infra/obs"
)

// Toast is one transient user-facing message.
type Toast struct {
	ID        string            `json:"id"`
	Severity  policies.Severity `json:"severity"`
	Message   string            `json:"message"`
	RequestID string            `json:"request_id,omitempty"`
	At        time.Time         `json:"at"`
}

func newToast(ctx context.Context, severity policies.Severity, message string) Toast {
	return Toast{
		ID:        uuid.NewString(),
		Severity:  severity,
		Message:   message,
		RequestID: obs.RequestIDFromContext(ctx),
		At:        time.Now().UTC(),
	}
}

// Logger writes toasts to the structured log. Warnings and errors keep
// their level.
type Logger struct {
	Log *slog.Logger
}

func (l Logger) Notify(ctx context.Context, severity policies.Severity, message string) {
	log := l.Log
	if log == nil {
		log = slog.Default()
	}
	level := slog.LevelInfo
	switch severity {
	case policies.SeverityWarning:
		level = slog.LevelWarn
	case policies.SeverityError:
		level = slog.LevelError
	}
	log.Log(ctx, level, "toast", "severity", string(severity), "message", message)
}

// Publisher is satisfied by the kafka producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Broker forwards toasts to a topic so other instances and dashboards can
// see them. Failures are logged and dropped.
type Broker struct {
	Publisher Publisher
	Topic     string
	Log       *slog.Logger
}

func (b Broker) Notify(ctx context.Context, severity policies.Severity, message string) {
	toast := newToast(ctx, severity, message)
	payload, err := json.Marshal(toast)
	if err == nil {
		err = b.Publisher.Publish(ctx, b.Topic, string(severity), payload, map[string]string{
			"content-type": "application/json",
		})
	}
	if err != nil && b.Log != nil {
		b.Log.Warn("toast publish failed", "topic", b.Topic, "err", err)
	}
}

// Fanout delivers each toast to every target.
type Fanout []policies.Notifier

func (f Fanout) Notify(ctx context.Context, severity policies.Severity, message string) {
	for _, n := range f {
		if n != nil {
			n.Notify(ctx, severity, message)
		}
	}
}

// Collector buffers toasts for a single response, e.g. a server-rendered
// page that shows them on load.
type Collector struct {
	mu     sync.Mutex
	toasts []Toast
}

func (c *Collector) Notify(ctx context.Context, severity policies.Severity, message string) {
	c.mu.Lock()
	c.toasts = append(c.toasts, newToast(ctx, severity, message))
	c.mu.Unlock()
}

// Drain returns and clears the buffered toasts.
func (c *Collector) Drain() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.toasts
	c.toasts = nil
	return out
}

// Func delivers toasts to fn, e.g. a websocket writer.
type Func func(Toast)

func (f Func) Notify(ctx context.Context, severity policies.Severity, message string) {
	f(newToast(ctx, severity, message))
}

type collectorKey struct{}

// WithCollector attaches a per-request collector to ctx.
func WithCollector(ctx context.Context, c *Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, c)
}

// Scoped routes toasts to the collector carried by ctx, if any. It lets a
// shared loader surface its warnings on whichever page triggered it.
type Scoped struct{}

func (Scoped) Notify(ctx context.Context, severity policies.Severity, message string) {
	if c, ok := ctx.Value(collectorKey{}).(*Collector); ok && c != nil {
		c.Notify(ctx, severity, message)
	}
}

var (
	_ policies.Notifier = Logger{}
	_ policies.Notifier = Broker{}
	_ policies.Notifier = Fanout{}
	_ policies.Notifier = (*Collector)(nil)
	_ policies.Notifier = Func(nil)
	_ policies.Notifier = Scoped{}
)
