package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-tutorial/internal/apperrors"
)

func TestPromptRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		wantErr bool
	}{
		{"valid", "Tell me a joke", false},
		{"blank", "   ", true},
		{"empty", "", true},
		{"max length", strings.Repeat("a", 500), false},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := PromptRequest{Prompt: tt.prompt}
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				var valErr *apperrors.ValidationError
				assert.ErrorAs(t, err, &valErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQueryRequest_Validate(t *testing.T) {
	assert.NoError(t, (&QueryRequest{Query: "pricing", TopK: 5}).Validate())
	assert.NoError(t, (&QueryRequest{Query: "pricing"}).Validate())
	assert.Error(t, (&QueryRequest{Query: ""}).Validate())
	assert.Error(t, (&QueryRequest{Query: "pricing", TopK: -1}).Validate())
}

func TestContextInjectionRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ContextInjectionRequest{Prompt: "What debuted in 2024?", StuffIt: true}).Validate())
	assert.Error(t, (&ContextInjectionRequest{Prompt: ""}).Validate())
}

func TestValidateMessage(t *testing.T) {
	assert.NoError(t, ValidateMessage("Tell me a Dad joke"))
	assert.Error(t, ValidateMessage(""))
	assert.Error(t, ValidateMessage(strings.Repeat("b", 501)))
}
