package queries

import (
	"errors"

	"github.com/abcall/clients/internal/core/dispatch"
)

// Register adds every client query handler to r.
func Register(r *dispatch.Registry) error {
	return errors.Join(
		dispatch.RegisterQuery[GetClientQuery](r, NewGetClientHandler),
		dispatch.RegisterQuery[GetClientsQuery](r, NewGetClientsHandler),
		dispatch.RegisterQuery[GetMyClientQuery](r, NewGetMyClientHandler),
	)
}
