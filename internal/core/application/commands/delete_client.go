package commands

import (
	"context"

	"github.com/abcall/clients/internal/core/application/shared"
	"github.com/abcall/clients/internal/core/dependency"
	"github.com/abcall/clients/internal/core/dispatch"
	"github.com/abcall/clients/internal/core/domain"
)

// DeleteClientCommand identifies the client to remove.
type DeleteClientCommand struct {
	ClientID string
}

func (DeleteClientCommand) CommandName() string { return "clients.delete" }

// DeleteClientHandler handles the DeleteClientCommand.
type DeleteClientHandler struct {
	shared.BaseHandler
}

// NewDeleteClientHandler creates a new DeleteClientHandler.
func NewDeleteClientHandler(resolver dependency.Resolver) dispatch.CommandHandler[DeleteClientCommand] {
	return &DeleteClientHandler{BaseHandler: shared.NewBaseHandler(resolver)}
}

// Handle removes the client. It has no result value.
func (h *DeleteClientHandler) Handle(ctx context.Context, cmd DeleteClientCommand) (any, error) {
	repo, err := h.Clients(ctx)
	if err != nil {
		return nil, err
	}

	removed, err := repo.Remove(ctx, cmd.ClientID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, domain.NewNotFoundError(cmd.ClientID)
	}
	return nil, nil
}
