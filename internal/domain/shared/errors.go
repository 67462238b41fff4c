package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorf creates a new domain error with a formatted message
func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Recurso não encontrado")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Recurso já existe")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Entrada inválida")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Credenciais inválidas")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Acesso negado")
)
