package queries

import (
	"context"

	"github.com/abcall/clients/internal/core/application/shared"
	"github.com/abcall/clients/internal/core/dependency"
	"github.com/abcall/clients/internal/core/dispatch"
	"github.com/abcall/clients/internal/core/domain"
)

// GetClientsQuery lists every client.
type GetClientsQuery struct{}

func (GetClientsQuery) QueryName() string { return "clients.list" }

// GetClientsHandler handles the GetClientsQuery.
type GetClientsHandler struct {
	shared.BaseHandler
}

// NewGetClientsHandler creates a new GetClientsHandler.
func NewGetClientsHandler(resolver dependency.Resolver) dispatch.QueryHandler[GetClientsQuery] {
	return &GetClientsHandler{BaseHandler: shared.NewBaseHandler(resolver)}
}

// Handle returns a []*domain.Client, never nil.
func (h *GetClientsHandler) Handle(ctx context.Context, _ GetClientsQuery) (dispatch.QueryResult, error) {
	repo, err := h.Clients(ctx)
	if err != nil {
		return dispatch.QueryResult{}, err
	}

	clients, err := repo.GetAll(ctx)
	if err != nil {
		return dispatch.QueryResult{}, err
	}
	if clients == nil {
		clients = []*domain.Client{}
	}
	return dispatch.NewQueryResult(clients), nil
}
