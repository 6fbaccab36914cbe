package repository

import (
	"context"

	"github.com/abcall/clients/internal/core/domain"
)

// ClientRepository persists clients independently of the storage engine.
//
// Get and Update return a nil client and a nil error when the id does not exist;
// Remove reports the same case with false. Errors are reserved for storage failures.
// Payloads are stored as given; field validation happens before a repository is reached.
type ClientRepository interface {
	Get(ctx context.Context, id string) (*domain.Client, error)
	GetAll(ctx context.Context) ([]*domain.Client, error)
	Add(ctx context.Context, data domain.ClientData) (*domain.Client, error)
	Update(ctx context.Context, id string, data domain.ClientData) (*domain.Client, error)
	Remove(ctx context.Context, id string) (bool, error)
}
