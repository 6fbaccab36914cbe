package facade

import "context"

// UserRecord is the part of a user-service account the clients service needs.
type UserRecord struct {
	Subject  string `json:"sub"`
	ClientID string `json:"client_id"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// UserFacade resolves a caller's account in the external user service.
// GetUser returns nil without an error when the account does not exist.
type UserFacade interface {
	GetUser(ctx context.Context, subject string) (*UserRecord, error)
}
