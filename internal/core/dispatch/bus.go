package dispatch

import (
	"context"
	"time"

	"github.com/abcall/clients/internal/core/dependency"
)

// Observer is told about every dispatch once it finishes.
type Observer interface {
	Observe(ctx context.Context, kind Kind, name string, elapsed time.Duration, err error)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, kind Kind, name string, elapsed time.Duration, err error)

func (f ObserverFunc) Observe(ctx context.Context, kind Kind, name string, elapsed time.Duration, err error) {
	f(ctx, kind, name, elapsed, err)
}

// Observers fans a dispatch out to several observers.
type Observers []Observer

func (o Observers) Observe(ctx context.Context, kind Kind, name string, elapsed time.Duration, err error) {
	for _, observer := range o {
		observer.Observe(ctx, kind, name, elapsed, err)
	}
}

type Option func(*Bus)

// WithObserver adds an observer to the bus.
func WithObserver(observer Observer) Option {
	return func(b *Bus) {
		if observer != nil {
			b.observers = append(b.observers, observer)
		}
	}
}

// Bus is the entry point the transport layer calls. It routes each message to
// a freshly built handler and returns the handler's outcome untouched.
type Bus struct {
	registry  *Registry
	resolver  dependency.Resolver
	observers Observers
}

// NewBus creates a bus over a registry and the resolver handlers use.
func NewBus(registry *Registry, resolver dependency.Resolver, opts ...Option) *Bus {
	b := &Bus{
		registry: registry,
		resolver: resolver,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ExecuteCommand dispatches cmd to its registered handler.
func (b *Bus) ExecuteCommand(ctx context.Context, cmd Command) (any, error) {
	start := time.Now()
	fn, err := b.registry.command(cmd)
	if err != nil {
		b.observe(ctx, KindCommand, commandName(cmd), start, err)
		return nil, err
	}

	result, err := fn(ctx, b.resolver, cmd)
	b.observe(ctx, KindCommand, cmd.CommandName(), start, err)
	return result, err
}

// ExecuteQuery dispatches query to its registered handler.
func (b *Bus) ExecuteQuery(ctx context.Context, query Query) (QueryResult, error) {
	start := time.Now()
	fn, err := b.registry.query(query)
	if err != nil {
		b.observe(ctx, KindQuery, queryName(query), start, err)
		return QueryResult{}, err
	}

	result, err := fn(ctx, b.resolver, query)
	b.observe(ctx, KindQuery, query.QueryName(), start, err)
	return result, err
}

func (b *Bus) observe(ctx context.Context, kind Kind, name string, start time.Time, err error) {
	if len(b.observers) == 0 {
		return
	}
	b.observers.Observe(ctx, kind, name, time.Since(start), err)
}

func commandName(cmd Command) string {
	if cmd == nil {
		return "<nil>"
	}
	return cmd.CommandName()
}

func queryName(query Query) string {
	if query == nil {
		return "<nil>"
	}
	return query.QueryName()
}
