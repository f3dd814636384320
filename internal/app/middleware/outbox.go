package middleware

import (
	"context"
	"log/slog"

	"stays/internal/app/commands"
	"stays/internal/app/outbox"
)

// OutboxFlush publishes the events a successful command recorded. The
// command already took effect, so a failed flush is logged and the result
// still returned; the outbox keeps the events for the next flush.
func OutboxFlush(box outbox.Outbox, logger *slog.Logger) CommandMiddleware {
	if box == nil {
		panic("middleware: outbox required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return func(next commands.Bus) commands.Bus {
		return commands.BusFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			res, err := next.Dispatch(ctx, cmd)
			if err != nil {
				return nil, err
			}
			if err := box.Flush(ctx); err != nil {
				logger.WarnContext(ctx, "outbox flush failed", "command", cmd.Key(), "err", err)
			}
			return res, nil
		})
	}
}
