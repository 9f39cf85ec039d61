// Package apperrors defines the error categories the HTTP layer maps to
// status codes: AI service failures, vector store failures, input validation
// failures and security rejections.
package apperrors

import "fmt"

// AIServiceError wraps failures from the chat backend.
type AIServiceError struct {
	Message string
	Err     error
}

func NewAIServiceError(message string, err error) *AIServiceError {
	return &AIServiceError{Message: message, Err: err}
}

func (e *AIServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AIServiceError) Unwrap() error { return e.Err }

// VectorStoreError wraps failures from embedding, search and index
// persistence operations.
type VectorStoreError struct {
	Message string
	Err     error
}

func NewVectorStoreError(message string, err error) *VectorStoreError {
	return &VectorStoreError{Message: message, Err: err}
}

func (e *VectorStoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *VectorStoreError) Unwrap() error { return e.Err }

// SecurityError signals that input was rejected by the sanitizer or content
// filter. The HTTP layer returns a masked message for this category.
type SecurityError struct {
	Message string
}

func NewSecurityError(message string) *SecurityError {
	return &SecurityError{Message: message}
}

func (e *SecurityError) Error() string { return e.Message }

// ValidationError signals a blank or out-of-range request field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}
