package commands

import (
	"context"
	"maps"

	"github.com/abcall/clients/internal/core/application/shared"
	"github.com/abcall/clients/internal/core/dependency"
	"github.com/abcall/clients/internal/core/dispatch"
	"github.com/abcall/clients/internal/core/domain"
)

// CreateClientCommand contains the fields of a new client.
type CreateClientCommand struct {
	Data domain.ClientData
}

// NewCreateClientCommand copies data so later changes by the caller do not leak in.
func NewCreateClientCommand(data domain.ClientData) CreateClientCommand {
	return CreateClientCommand{Data: maps.Clone(data)}
}

func (CreateClientCommand) CommandName() string { return "clients.create" }

// CreateClientHandler handles the CreateClientCommand.
type CreateClientHandler struct {
	shared.BaseHandler
}

// NewCreateClientHandler creates a new CreateClientHandler.
func NewCreateClientHandler(resolver dependency.Resolver) dispatch.CommandHandler[CreateClientCommand] {
	return &CreateClientHandler{BaseHandler: shared.NewBaseHandler(resolver)}
}

// Handle stores the client and returns it as a *domain.Client.
func (h *CreateClientHandler) Handle(ctx context.Context, cmd CreateClientCommand) (any, error) {
	repo, err := h.Clients(ctx)
	if err != nil {
		return nil, err
	}

	client, err := repo.Add(ctx, cmd.Data)
	if err != nil {
		return nil, err
	}
	return client, nil
}
