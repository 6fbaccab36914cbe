package dispatch

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/abcall/clients/internal/core/dependency"
)

type commandFunc func(ctx context.Context, resolver dependency.Resolver, cmd Command) (any, error)

type queryFunc func(ctx context.Context, resolver dependency.Resolver, query Query) (QueryResult, error)

// Registry maps message names to handler factories.
//
// Handlers are registered during startup, then Seal freezes the table. Dispatch
// only works on a sealed registry and reads it without locking.
type Registry struct {
	mu       sync.Mutex
	sealed   atomic.Bool
	commands map[string]commandFunc
	queries  map[string]queryFunc
}

// NewRegistry creates an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]commandFunc),
		queries:  make(map[string]queryFunc),
	}
}

// RegisterCommand registers the handler factory for command type C.
// The zero value of C supplies the name, so C must not be a pointer or interface type.
func RegisterCommand[C Command](r *Registry, factory CommandHandlerFactory[C]) error {
	var zero C
	if !isValueType(reflect.TypeFor[C]()) {
		return fmt.Errorf("%w: command type %s is not a value type", ErrInvalidRegistration, reflect.TypeFor[C]())
	}
	name := zero.CommandName()
	if name == "" || factory == nil {
		return fmt.Errorf("%w: command %T", ErrInvalidRegistration, zero)
	}

	return r.registerCommand(name, func(ctx context.Context, resolver dependency.Resolver, msg Command) (any, error) {
		cmd, ok := msg.(C)
		if !ok {
			return nil, unhandled(KindCommand, name, msg)
		}
		return factory(resolver).Handle(ctx, cmd)
	})
}

// RegisterQuery registers the handler factory for query type Q.
// The zero value of Q supplies the name, so Q must not be a pointer or interface type.
func RegisterQuery[Q Query](r *Registry, factory QueryHandlerFactory[Q]) error {
	var zero Q
	if !isValueType(reflect.TypeFor[Q]()) {
		return fmt.Errorf("%w: query type %s is not a value type", ErrInvalidRegistration, reflect.TypeFor[Q]())
	}
	name := zero.QueryName()
	if name == "" || factory == nil {
		return fmt.Errorf("%w: query %T", ErrInvalidRegistration, zero)
	}

	return r.registerQuery(name, func(ctx context.Context, resolver dependency.Resolver, msg Query) (QueryResult, error) {
		query, ok := msg.(Q)
		if !ok {
			return QueryResult{}, unhandled(KindQuery, name, msg)
		}
		return factory(resolver).Handle(ctx, query)
	})
}

func isValueType(t reflect.Type) bool {
	return t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface
}

// MustRegisterCommand is RegisterCommand for startup code; it panics on failure.
func MustRegisterCommand[C Command](r *Registry, factory CommandHandlerFactory[C]) {
	if err := RegisterCommand(r, factory); err != nil {
		panic(err)
	}
}

// MustRegisterQuery is RegisterQuery for startup code; it panics on failure.
func MustRegisterQuery[Q Query](r *Registry, factory QueryHandlerFactory[Q]) {
	if err := RegisterQuery(r, factory); err != nil {
		panic(err)
	}
}

func (r *Registry) registerCommand(name string, fn commandFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return fmt.Errorf("%w: command %s", ErrRegistrySealed, name)
	}
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("%w: command %s", ErrHandlerAlreadyRegistered, name)
	}
	r.commands[name] = fn
	return nil
}

func (r *Registry) registerQuery(name string, fn queryFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return fmt.Errorf("%w: query %s", ErrRegistrySealed, name)
	}
	if _, exists := r.queries[name]; exists {
		return fmt.Errorf("%w: query %s", ErrHandlerAlreadyRegistered, name)
	}
	r.queries[name] = fn
	return nil
}

// Seal ends the registration phase. It is safe to call more than once.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed.Store(true)
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

// CommandNames lists registered command names in a stable order.
func (r *Registry) CommandNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedKeys(r.commands)
}

// QueryNames lists registered query names in a stable order.
func (r *Registry) QueryNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedKeys(r.queries)
}

func (r *Registry) command(cmd Command) (commandFunc, error) {
	if !r.sealed.Load() {
		return nil, ErrRegistryNotSealed
	}
	if cmd == nil {
		return nil, unhandled(KindCommand, "<nil>", cmd)
	}
	fn, ok := r.commands[cmd.CommandName()]
	if !ok {
		return nil, unhandled(KindCommand, cmd.CommandName(), cmd)
	}
	return fn, nil
}

func (r *Registry) query(query Query) (queryFunc, error) {
	if !r.sealed.Load() {
		return nil, ErrRegistryNotSealed
	}
	if query == nil {
		return nil, unhandled(KindQuery, "<nil>", query)
	}
	fn, ok := r.queries[query.QueryName()]
	if !ok {
		return nil, unhandled(KindQuery, query.QueryName(), query)
	}
	return fn, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
