package queries

import (
	"context"

	"github.com/abcall/clients/internal/core/application/shared"
	"github.com/abcall/clients/internal/core/dependency"
	"github.com/abcall/clients/internal/core/dispatch"
)

// GetMyClientQuery finds the client the calling user belongs to.
type GetMyClientQuery struct {
	UserSub string
}

func (GetMyClientQuery) QueryName() string { return "clients.mine" }

// GetMyClientHandler handles the GetMyClientQuery.
type GetMyClientHandler struct {
	shared.BaseHandler
}

// NewGetMyClientHandler creates a new GetMyClientHandler.
func NewGetMyClientHandler(resolver dependency.Resolver) dispatch.QueryHandler[GetMyClientQuery] {
	return &GetMyClientHandler{BaseHandler: shared.NewBaseHandler(resolver)}
}

// Handle looks the user up in the user service, then loads the client it points at.
// A user without a client yields an empty result.
func (h *GetMyClientHandler) Handle(ctx context.Context, query GetMyClientQuery) (dispatch.QueryResult, error) {
	users, err := h.Users(ctx)
	if err != nil {
		return dispatch.QueryResult{}, err
	}
	repo, err := h.Clients(ctx)
	if err != nil {
		return dispatch.QueryResult{}, err
	}

	user, err := users.GetUser(ctx, query.UserSub)
	if err != nil {
		return dispatch.QueryResult{}, err
	}
	if user == nil || user.ClientID == "" {
		return dispatch.NewQueryResult(nil), nil
	}

	client, err := repo.Get(ctx, user.ClientID)
	if err != nil {
		return dispatch.QueryResult{}, err
	}
	if client == nil {
		return dispatch.NewQueryResult(nil), nil
	}
	return dispatch.NewQueryResult(client), nil
}
