package commands

import (
	"context"
	"maps"

	"github.com/abcall/clients/internal/core/application/shared"
	"github.com/abcall/clients/internal/core/dependency"
	"github.com/abcall/clients/internal/core/dispatch"
	"github.com/abcall/clients/internal/core/domain"
)

// UpdateClientCommand contains the fields to change on an existing client.
type UpdateClientCommand struct {
	ClientID string
	Data     domain.ClientData
}

// NewUpdateClientCommand copies data so later changes by the caller do not leak in.
func NewUpdateClientCommand(clientID string, data domain.ClientData) UpdateClientCommand {
	return UpdateClientCommand{ClientID: clientID, Data: maps.Clone(data)}
}

func (UpdateClientCommand) CommandName() string { return "clients.update" }

// UpdateClientHandler handles the UpdateClientCommand.
type UpdateClientHandler struct {
	shared.BaseHandler
}

// NewUpdateClientHandler creates a new UpdateClientHandler.
func NewUpdateClientHandler(resolver dependency.Resolver) dispatch.CommandHandler[UpdateClientCommand] {
	return &UpdateClientHandler{BaseHandler: shared.NewBaseHandler(resolver)}
}

// Handle applies the update and returns the stored *domain.Client.
func (h *UpdateClientHandler) Handle(ctx context.Context, cmd UpdateClientCommand) (any, error) {
	repo, err := h.Clients(ctx)
	if err != nil {
		return nil, err
	}

	client, err := repo.Update(ctx, cmd.ClientID, cmd.Data)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.NewNotFoundError(cmd.ClientID)
	}
	return client, nil
}
