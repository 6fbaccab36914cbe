package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcall/clients/internal/core/dependency"
)

type observation struct {
	kind Kind
	name string
	err  error
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []observation
}

func (o *recordingObserver) Observe(_ context.Context, kind Kind, name string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, observation{kind: kind, name: name, err: err})
}

func newTestBus(t *testing.T, opts ...Option) *Bus {
	t.Helper()

	r := NewRegistry()
	require.NoError(t, RegisterCommand[pingCommand](r, pingFactory))
	require.NoError(t, RegisterQuery[countQuery](r, countFactory))
	r.Seal()

	return NewBus(r, dependency.NewFactory(), opts...)
}

func TestExecuteCommand(t *testing.T) {
	bus := newTestBus(t)

	result, err := bus.ExecuteCommand(context.Background(), pingCommand{Payload: "a"})

	require.NoError(t, err)
	assert.Equal(t, "pong:a", result)
}

func TestExecuteQuery(t *testing.T) {
	bus := newTestBus(t)

	tests := []struct {
		name      string
		query     countQuery
		wantEmpty bool
		want      any
	}{
		{name: "value found", query: countQuery{N: 21}, want: 42},
		{name: "nothing found", query: countQuery{}, wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := bus.ExecuteQuery(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantEmpty, result.IsEmpty())
			if !tt.wantEmpty {
				assert.Equal(t, tt.want, result.Result)
			}
		})
	}
}

func TestExecuteUnregisteredMessage(t *testing.T) {
	bus := newTestBus(t)

	_, err := bus.ExecuteCommand(context.Background(), otherCommand{})
	assert.ErrorIs(t, err, ErrUnhandledMessageType)

	_, err = bus.ExecuteQuery(context.Background(), otherQuery{})
	assert.ErrorIs(t, err, ErrUnhandledMessageType)

	_, err = bus.ExecuteCommand(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnhandledMessageType)
}

func TestExecuteRequiresExactType(t *testing.T) {
	bus := newTestBus(t)

	// A pointer shares the name but is not the registered type
	_, err := bus.ExecuteCommand(context.Background(), &pingCommand{Payload: "a"})

	var typed *UnhandledMessageTypeError
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, "*dispatch.pingCommand", typed.Type)
}

func TestExecuteOnUnsealedRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterCommand[pingCommand](r, pingFactory))
	bus := NewBus(r, dependency.NewFactory())

	_, err := bus.ExecuteCommand(context.Background(), pingCommand{})
	assert.ErrorIs(t, err, ErrRegistryNotSealed)
}

func TestExecuteBuildsFreshHandler(t *testing.T) {
	r := NewRegistry()
	built := 0
	require.NoError(t, RegisterCommand[pingCommand](r, func(dependency.Resolver) CommandHandler[pingCommand] {
		built++
		return CommandHandlerFunc[pingCommand](func(context.Context, pingCommand) (any, error) { return built, nil })
	}))
	r.Seal()
	bus := NewBus(r, dependency.NewFactory())

	for i := 1; i <= 3; i++ {
		result, err := bus.ExecuteCommand(context.Background(), pingCommand{})
		require.NoError(t, err)
		assert.Equal(t, i, result)
	}
}

func TestExecutePassesHandlerErrorsThrough(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry()
	require.NoError(t, RegisterCommand[pingCommand](r, func(dependency.Resolver) CommandHandler[pingCommand] {
		return CommandHandlerFunc[pingCommand](func(context.Context, pingCommand) (any, error) { return nil, boom })
	}))
	r.Seal()

	_, err := NewBus(r, dependency.NewFactory()).ExecuteCommand(context.Background(), pingCommand{})
	assert.Same(t, boom, err)
}

func TestObserversSeeEveryDispatch(t *testing.T) {
	first := &recordingObserver{}
	second := &recordingObserver{}
	bus := newTestBus(t, WithObserver(first), WithObserver(second), WithObserver(nil))

	_, _ = bus.ExecuteCommand(context.Background(), pingCommand{})
	_, _ = bus.ExecuteQuery(context.Background(), countQuery{N: 1})
	_, _ = bus.ExecuteQuery(context.Background(), otherQuery{})

	for _, o := range []*recordingObserver{first, second} {
		require.Len(t, o.seen, 3)
		assert.Equal(t, observation{kind: KindCommand, name: "test.ping"}, o.seen[0])
		assert.Equal(t, observation{kind: KindQuery, name: "test.count"}, o.seen[1])
		assert.Equal(t, KindQuery, o.seen[2].kind)
		assert.Equal(t, "test.other", o.seen[2].name)
		assert.ErrorIs(t, o.seen[2].err, ErrUnhandledMessageType)
	}
}

func TestConcurrentDispatch(t *testing.T) {
	bus := newTestBus(t)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			result, err := bus.ExecuteQuery(context.Background(), countQuery{N: n})
			assert.NoError(t, err)
			assert.Equal(t, n*2, result.Result)
		}(i)
	}
	wg.Wait()
}
