package outbox

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	appoutbox "stays/internal/app/outbox"
)

// Relay is the in-process outbox used without mongo: records are buffered
// and published to the producer on Flush.
type Relay struct {
	Producer Producer
	Envelope Envelope

	mu      sync.Mutex
	pending []appoutbox.EventRecord
}

func NewRelay(p Producer, env Envelope) *Relay {
	return &Relay{Producer: p, Envelope: env}
}

func (r *Relay) Add(_ context.Context, record appoutbox.EventRecord) error {
	r.mu.Lock()
	r.pending = append(r.pending, record)
	r.mu.Unlock()
	return nil
}

// Flush publishes all buffered records. Records that fail stay buffered
// for the next flush.
func (r *Relay) Flush(ctx context.Context) error {
	r.mu.Lock()
	batch := r.pending
	r.pending = nil
	r.mu.Unlock()

	var (
		errs   []error
		failed []appoutbox.EventRecord
	)
	for _, rec := range batch {
		payload, headers, err := r.Envelope.Format(rec)
		if err == nil {
			err = r.Producer.Publish(ctx, r.Envelope.Topic(rec.Name), rec.Aggregate, payload, headers)
		}
		if err != nil {
			errs = append(errs, err)
			failed = append(failed, rec)
		}
	}
	if len(failed) > 0 {
		r.mu.Lock()
		r.pending = append(failed, r.pending...)
		r.mu.Unlock()
	}
	return errors.Join(errs...)
}

// Pending reports how many records await publishing.
func (r *Relay) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// LogProducer writes records to the logger when no broker is configured.
type LogProducer struct {
	Logger *slog.Logger
}

func (p LogProducer) Publish(_ context.Context, topic string, key string, payload []byte, _ map[string]string) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("event published", "topic", topic, "key", key, "payload", string(payload))
	return nil
}

var _ appoutbox.Outbox = (*Relay)(nil)
