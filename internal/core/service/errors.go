package service

import "fmt"

// ServiceError preserves the status code and message returned by a remote service
type ServiceError struct {
	Code    int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("remote service returned %d: %s", e.Code, e.Message)
}

func NewServiceError(code int, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}
