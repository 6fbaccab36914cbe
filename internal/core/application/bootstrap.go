package application

import (
	"fmt"

	"github.com/abcall/clients/internal/core/application/commands"
	"github.com/abcall/clients/internal/core/application/queries"
	"github.com/abcall/clients/internal/core/dependency"
	"github.com/abcall/clients/internal/core/dispatch"
)

// NewRegistry registers every client command and query handler and seals the result.
func NewRegistry() (*dispatch.Registry, error) {
	registry := dispatch.NewRegistry()

	if err := commands.Register(registry); err != nil {
		return nil, fmt.Errorf("failed to register command handlers: %w", err)
	}
	if err := queries.Register(registry); err != nil {
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}

	registry.Seal()
	return registry, nil
}

// Bootstrap builds the bus the transport layer dispatches through.
// It must complete before the first request is accepted.
func Bootstrap(resolver dependency.Resolver, opts ...dispatch.Option) (*dispatch.Bus, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	return dispatch.NewBus(registry, resolver, opts...), nil
}
