package models

import (
	"strings"

	"ai-tutorial/internal/apperrors"
)

// Request fields carrying a prompt or query are capped at 500 characters,
// matching the tutorial's input constraints.
const maxPromptLength = 500

// PromptRequest carries the input for chat generation endpoints.
type PromptRequest struct {
	Prompt string `json:"prompt" example:"Tell me a Dad joke"`
	// ConversationID enables Redis-backed conversation memory when set.
	ConversationID string `json:"conversation_id,omitempty"`
}

func (r *PromptRequest) Validate() error {
	return validateText("prompt", r.Prompt)
}

// QueryRequest carries the input for RAG query and search endpoints.
type QueryRequest struct {
	Query string `json:"query" example:"What services do you offer?"`
	TopK  int    `json:"top_k,omitempty" example:"5"`
}

func (r *QueryRequest) Validate() error {
	if err := validateText("query", r.Query); err != nil {
		return err
	}
	if r.TopK < 0 {
		return apperrors.NewValidationError("top_k", "must not be negative")
	}
	return nil
}

// ContextInjectionRequest carries a question plus a flag controlling whether
// the bundled context document is stuffed into the prompt.
type ContextInjectionRequest struct {
	Prompt  string `json:"prompt" example:"What sports are being included in the 2024 summer olympics?"`
	StuffIt bool   `json:"stuffit"`
}

func (r *ContextInjectionRequest) Validate() error {
	return validateText("prompt", r.Prompt)
}

func validateText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError(field, "cannot be blank")
	}
	if len(value) > maxPromptLength {
		return apperrors.NewValidationError(field, "must be between 1 and 500 characters")
	}
	return nil
}

// ValidateMessage applies the prompt constraints to a query-string message.
func ValidateMessage(message string) error {
	return validateText("message", message)
}
