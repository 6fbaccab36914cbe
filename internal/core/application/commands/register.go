package commands

import (
	"errors"

	"github.com/abcall/clients/internal/core/dispatch"
)

// Register adds every client command handler to r.
func Register(r *dispatch.Registry) error {
	return errors.Join(
		dispatch.RegisterCommand[CreateClientCommand](r, NewCreateClientHandler),
		dispatch.RegisterCommand[UpdateClientCommand](r, NewUpdateClientHandler),
		dispatch.RegisterCommand[DeleteClientCommand](r, NewDeleteClientHandler),
	)
}
