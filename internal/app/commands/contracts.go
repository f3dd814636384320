package commands

import (
	"context"
	"errors"
	"fmt"
)

// Command is an intent that may have side effects (notifications, events).
// Key routes it to its handler.
type Command interface {
	Key() string
}

// Idempotent commands carry a client-chosen key. A repeat with the same key
// replays the first outcome, decoded into ResultPrototype.
type Idempotent interface {
	Command
	IdempotencyKey() string
	ResultPrototype() any
}

// ReplayKey scopes the idempotency key of cmd by its routing key. ok is
// false when cmd is not Idempotent or its key is blank.
func ReplayKey(cmd Command) (key string, idem Idempotent, ok bool) {
	idem, ok = cmd.(Idempotent)
	if !ok || idem.IdempotencyKey() == "" {
		return "", nil, false
	}
	return cmd.Key() + ":" + idem.IdempotencyKey(), idem, true
}

type Handler[C Command, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

type HandlerFunc[C Command, R any] func(ctx context.Context, cmd C) (R, error)

func (f HandlerFunc[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	return f(ctx, cmd)
}

// Bus dispatches commands, usually through a middleware chain.
type Bus interface {
	Dispatch(ctx context.Context, cmd Command) (any, error)
}

// BusFunc adapts a function to Bus. Middleware returns one around the next bus.
type BusFunc func(ctx context.Context, cmd Command) (any, error)

func (f BusFunc) Dispatch(ctx context.Context, cmd Command) (any, error) {
	return f(ctx, cmd)
}

var (
	ErrHandlerNotFound = errors.New("commands: handler not found")
	ErrInvalidCommand  = errors.New("commands: invalid command for handler")
	ErrResultType      = errors.New("commands: result type mismatch")
	ErrNilBus          = errors.New("commands: nil bus")
)

// Dispatch sends cmd through bus and asserts the result type. A nil result
// yields the zero R.
func Dispatch[C Command, R any](ctx context.Context, bus Bus, cmd C) (R, error) {
	var zero R
	if bus == nil {
		return zero, ErrNilBus
	}
	res, err := bus.Dispatch(ctx, cmd)
	if err != nil || res == nil {
		return zero, err
	}
	value, ok := res.(R)
	if !ok {
		return zero, fmt.Errorf("%w: %s returned %T, want %T", ErrResultType, cmd.Key(), res, zero)
	}
	return value, nil
}
