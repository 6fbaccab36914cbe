package shared

import (
	"context"

	"github.com/abcall/clients/internal/core/dependency"
	"github.com/abcall/clients/internal/core/facade"
	"github.com/abcall/clients/internal/core/repository"
)

// BaseHandler gives command and query handlers access to their collaborators.
// Collaborators are created on demand, so tests can swap them by binding
// different providers in the resolver.
type BaseHandler struct {
	Resolver dependency.Resolver
}

// NewBaseHandler creates a BaseHandler over resolver.
func NewBaseHandler(resolver dependency.Resolver) BaseHandler {
	return BaseHandler{Resolver: resolver}
}

// Clients resolves the client repository.
func (h BaseHandler) Clients(ctx context.Context) (repository.ClientRepository, error) {
	return dependency.Resolve[repository.ClientRepository](ctx, h.Resolver, dependency.ClientRepository)
}

// Users resolves the user-service facade.
func (h BaseHandler) Users(ctx context.Context) (facade.UserFacade, error) {
	return dependency.Resolve[facade.UserFacade](ctx, h.Resolver, dependency.UserFacade)
}
