package queries

import (
	"context"

	"github.com/abcall/clients/internal/core/application/shared"
	"github.com/abcall/clients/internal/core/dependency"
	"github.com/abcall/clients/internal/core/dispatch"
)

// GetClientQuery contains the parameters for getting a client.
type GetClientQuery struct {
	ClientID string
}

func (GetClientQuery) QueryName() string { return "clients.get" }

// GetClientHandler handles the GetClientQuery.
type GetClientHandler struct {
	shared.BaseHandler
}

// NewGetClientHandler creates a new GetClientHandler.
func NewGetClientHandler(resolver dependency.Resolver) dispatch.QueryHandler[GetClientQuery] {
	return &GetClientHandler{BaseHandler: shared.NewBaseHandler(resolver)}
}

// Handle returns the client as a *domain.Client, or an empty result when it does not exist.
func (h *GetClientHandler) Handle(ctx context.Context, query GetClientQuery) (dispatch.QueryResult, error) {
	repo, err := h.Clients(ctx)
	if err != nil {
		return dispatch.QueryResult{}, err
	}

	client, err := repo.Get(ctx, query.ClientID)
	if err != nil {
		return dispatch.QueryResult{}, err
	}
	if client == nil {
		return dispatch.NewQueryResult(nil), nil
	}
	return dispatch.NewQueryResult(client), nil
}
