package dispatch

import (
	"errors"
	"fmt"
)

var (
	ErrHandlerAlreadyRegistered = errors.New("handler already registered")
	ErrUnhandledMessageType     = errors.New("unhandled message type")
	ErrRegistrySealed           = errors.New("registry is sealed")
	ErrRegistryNotSealed        = errors.New("registry is not sealed")
	ErrInvalidRegistration      = errors.New("invalid registration")
)

// UnhandledMessageTypeError is returned when no handler is registered for a message.
type UnhandledMessageTypeError struct {
	Kind Kind
	Name string
	Type string
}

func (e *UnhandledMessageTypeError) Error() string {
	return fmt.Sprintf("no %s handler registered for %s (%s)", e.Kind, e.Name, e.Type)
}

func (e *UnhandledMessageTypeError) Is(target error) bool {
	return target == ErrUnhandledMessageType
}

func unhandled(kind Kind, name string, msg any) error {
	return &UnhandledMessageTypeError{Kind: kind, Name: name, Type: fmt.Sprintf("%T", msg)}
}
