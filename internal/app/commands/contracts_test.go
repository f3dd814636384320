package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainCommand struct{}

func (plainCommand) Key() string { return "test.plain" }

type replayableCommand struct{ idem string }

func (replayableCommand) Key() string { return "test.replayable" }
func (c replayableCommand) IdempotencyKey() string { return c.idem }
func (replayableCommand) ResultPrototype() any { return new(int) }

func TestReplayKey(t *testing.T) {
	key, idem, ok := ReplayKey(replayableCommand{idem: "k1"})
	require.True(t, ok)
	assert.Equal(t, "test.replayable:k1", key)
	assert.Equal(t, replayableCommand{idem: "k1"}, idem)

	_, _, ok = ReplayKey(replayableCommand{})
	assert.False(t, ok)
	_, _, ok = ReplayKey(plainCommand{})
	assert.False(t, ok)
}

func TestDispatch(t *testing.T) {
	bus := NewInMemoryBus()
	RegisterHandler[plainCommand, int](bus, "test.plain", HandlerFunc[plainCommand, int](
		func(context.Context, plainCommand) (int, error) { return 7, nil },
	))

	got, err := Dispatch[plainCommand, int](context.Background(), bus, plainCommand{})
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	_, err = Dispatch[plainCommand, string](context.Background(), bus, plainCommand{})
	require.ErrorIs(t, err, ErrResultType)
	assert.Contains(t, err.Error(), "test.plain returned int, want string")

	_, err = Dispatch[replayableCommand, int](context.Background(), bus, replayableCommand{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)

	_, err = Dispatch[plainCommand, int](context.Background(), nil, plainCommand{})
	assert.ErrorIs(t, err, ErrNilBus)
}

func TestBusFunc_NilResult(t *testing.T) {
	boom := errors.New("boom")
	bus := BusFunc(func(context.Context, Command) (any, error) { return nil, nil })
	got, err := Dispatch[plainCommand, *int](context.Background(), bus, plainCommand{})
	require.NoError(t, err)
	assert.Nil(t, got)

	bus = func(context.Context, Command) (any, error) { return nil, boom }
	_, err = Dispatch[plainCommand, *int](context.Background(), bus, plainCommand{})
	assert.ErrorIs(t, err, boom)
}
