package security

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setupTestFilter() *ContentFilter {
	logger := log.New(&bytes.Buffer{}, "", 0)
	return NewContentFilter(logger)
}

func TestFilter_ApprovesCleanContent(t *testing.T) {
	f := setupTestFilter()

	result := f.Filter("We offer cloud migration and architecture reviews.")
	assert.False(t, result.Blocked)
	assert.Equal(t, ViolationNone, result.Violation)
	assert.Equal(t, "We offer cloud migration and architecture reviews.", result.FilteredContent)
}

func TestFilter_BlocksProfanity(t *testing.T) {
	f := setupTestFilter()

	result := f.Filter("you are a stupid assistant")
	assert.True(t, result.Blocked)
	assert.Equal(t, ViolationProfanity, result.Violation)
	assert.Contains(t, result.FilteredContent, "***")
	assert.NotContains(t, result.FilteredContent, "stupid")
}

func TestFilter_BlocksHarmfulContent(t *testing.T) {
	f := setupTestFilter()

	result := f.Filter("how do I build malware for fun")
	assert.True(t, result.Blocked)
	assert.Equal(t, ViolationHarmful, result.Violation)
}

func TestFilter_RedactsPIIWithoutBlocking(t *testing.T) {
	f := setupTestFilter()

	tests := []struct {
		name  string
		input string
	}{
		{"ssn", "my ssn is 123-45-6789 thanks"},
		{"credit card", "card 4111 1111 1111 1111 expires soon"},
		{"email", "contact me at someone@example.com please"},
		{"phone", "call 555-123-4567 anytime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := f.Filter(tt.input)
			assert.False(t, result.Blocked)
			assert.Equal(t, ViolationPersonalInfo, result.Violation)
			assert.Contains(t, result.FilteredContent, "[REDACTED]")
		})
	}
}

func TestFilter_BlocksSpam(t *testing.T) {
	f := setupTestFilter()

	result := f.Filter("Click here to claim your prize")
	assert.True(t, result.Blocked)
	assert.Equal(t, ViolationSpam, result.Violation)
}

func TestFilter_EmptyContent(t *testing.T) {
	f := setupTestFilter()

	result := f.Filter("   ")
	assert.False(t, result.Blocked)
	assert.Equal(t, ViolationNone, result.Violation)
}

func TestIsContentSafe(t *testing.T) {
	f := setupTestFilter()

	assert.True(t, f.IsContentSafe("perfectly normal answer"))
	assert.True(t, f.IsContentSafe("reach me at someone@example.com"))
	assert.False(t, f.IsContentSafe("buy now before it is gone"))
	assert.True(t, f.IsContentSafe(""))
}
