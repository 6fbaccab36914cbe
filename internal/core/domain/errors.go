package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested client does not exist.
	ErrNotFound = errors.New("client not found")
	// ErrValidation marks malformed or invalid input.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized marks a missing or invalid caller identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks a caller whose role does not allow the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrCollaborator marks a storage or external service failure.
	ErrCollaborator = errors.New("collaborator failure")
)

// ValidationError describes an invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError carries the id of the missing client.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("client not found: %s", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a NotFoundError for id.
func NewNotFoundError(id string) *NotFoundError {
	return &NotFoundError{ID: id}
}

// CollaboratorError wraps a failure raised by a repository or an external service.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func (e *CollaboratorError) Is(target error) bool {
	return target == ErrCollaborator
}

// NewCollaboratorError wraps err as a failure of the named collaborator.
// A nil err yields nil; an err that already is a CollaboratorError is returned as is.
func NewCollaboratorError(collaborator string, err error) error {
	if err == nil {
		return nil
	}
	var existing *CollaboratorError
	if errors.As(err, &existing) {
		return err
	}
	return &CollaboratorError{Collaborator: collaborator, Err: err}
}
