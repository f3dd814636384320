package outbox

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	appoutbox "stays/internal/app/outbox"
)

// ClaimStore is the persistent side of the relay.
type ClaimStore interface {
	Claim(ctx context.Context, workerID string) (*appoutbox.EventRecord, int, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error
}

// Worker polls the store and publishes claimed records. Failed publishes are
// retried on the Backoff schedule.
type Worker struct {
	Store    ClaimStore
	Producer Producer
	Envelope Envelope
	Interval time.Duration
	ID       string
	Backoff  []time.Duration
	Logger   *slog.Logger
}

var ErrWorkerNotConfigured = errors.New("outbox: worker missing dependencies")

func (w *Worker) Run(ctx context.Context) error {
	if w.Store == nil || w.Producer == nil {
		return ErrWorkerNotConfigured
	}
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	ticker := time.NewTicker(w.interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.drain(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				w.logger().Error("outbox poll failed", "worker", w.ID, "err", err)
			}
		}
	}
}

// drain publishes every due record.
func (w *Worker) drain(ctx context.Context) error {
	for {
		done, err := w.processOnce(ctx)
		if err != nil || done {
			return err
		}
	}
}

func (w *Worker) processOnce(ctx context.Context) (bool, error) {
	rec, attempts, err := w.Store.Claim(ctx, w.ID)
	if err != nil {
		return true, err
	}
	if rec == nil {
		return true, nil
	}
	payload, headers, err := w.Envelope.Format(*rec)
	if err != nil {
		return false, w.fail(ctx, rec, attempts, err)
	}
	if err := w.Producer.Publish(ctx, w.Envelope.Topic(rec.Name), rec.Aggregate, payload, headers); err != nil {
		return false, w.fail(ctx, rec, attempts, err)
	}
	return false, w.Store.MarkSent(ctx, rec.ID)
}

func (w *Worker) fail(ctx context.Context, rec *appoutbox.EventRecord, attempts int, cause error) error {
	w.logger().Warn("outbox publish failed", "id", rec.ID, "event", rec.Name, "attempts", attempts+1, "err", cause)
	return w.Store.MarkFailed(ctx, rec.ID, w.nextRetry(attempts), cause.Error())
}

func (w *Worker) interval() time.Duration {
	if w.Interval <= 0 {
		return 500 * time.Millisecond
	}
	return w.Interval
}

func (w *Worker) nextRetry(attempts int) time.Time {
	if attempts < len(w.Backoff) {
		return time.Now().Add(w.Backoff[attempts])
	}
	if len(w.Backoff) > 0 {
		return time.Now().Add(w.Backoff[len(w.Backoff)-1])
	}
	return time.Now().Add(5 * time.Second)
}

func (w *Worker) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}
