package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ai-tutorial/internal/apperrors"
	"ai-tutorial/internal/llm"
	"ai-tutorial/internal/models"
)

// ============================================================================
// Mock Providers
// ============================================================================

type MockChatProvider struct {
	mock.Mock
	memoryEnabled bool
}

func (m *MockChatProvider) Generate(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

func (m *MockChatProvider) GenerateSecured(ctx context.Context, message, conversationID string) (string, error) {
	args := m.Called(ctx, message, conversationID)
	return args.String(0), args.Error(1)
}

func (m *MockChatProvider) SimplePrompt(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockChatProvider) DadJoke(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockChatProvider) History(ctx context.Context, conversationID string) ([]llm.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]llm.Message), args.Error(1)
}

func (m *MockChatProvider) ClearHistory(ctx context.Context, conversationID string) error {
	args := m.Called(ctx, conversationID)
	return args.Error(0)
}

func (m *MockChatProvider) MemoryEnabled() bool { return m.memoryEnabled }

func (m *MockChatProvider) LLMHealth(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func setupTestChatHandler() (*ChatHandler, *MockChatProvider) {
	mockChat := &MockChatProvider{memoryEnabled: true}
	logger := log.New(&bytes.Buffer{}, "", 0)
	return NewChatHandler(mockChat, logger), mockChat
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var body models.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

// ============================================================================
// Tests
// ============================================================================

func TestGenerate_ReturnsEnvelope(t *testing.T) {
	handler, mockChat := setupTestChatHandler()

	mockChat.On("GenerateSecured", mock.Anything, "Tell me a joke", "").Return("A funny joke", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/generate",
		strings.NewReader(`{"prompt": "Tell me a joke"}`))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeResponse(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "A funny joke", body.Data)
	assert.NotEmpty(t, body.Message)
}

func TestGenerate_BlankPromptIsBadRequest(t *testing.T) {
	handler, mockChat := setupTestChatHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/generate",
		strings.NewReader(`{"prompt": "   "}`))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeResponse(t, rec)
	assert.False(t, body.Success)
	mockChat.AssertNotCalled(t, "GenerateSecured", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_OverlongPromptIsBadRequest(t *testing.T) {
	handler, _ := setupTestChatHandler()

	payload, err := json.Marshal(map[string]string{"prompt": strings.Repeat("a", 501)})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/generate", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerate_MalformedJSONIsBadRequest(t *testing.T) {
	handler, _ := setupTestChatHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/generate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeResponse(t, rec)
	assert.False(t, body.Success)
}

func TestGenerate_SecurityErrorIsMasked(t *testing.T) {
	handler, mockChat := setupTestChatHandler()

	mockChat.On("GenerateSecured", mock.Anything, mock.Anything, mock.Anything).
		Return("", apperrors.NewSecurityError("input contains potentially dangerous injection patterns"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/generate",
		strings.NewReader(`{"prompt": "some crafted input"}`))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeResponse(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Request contains invalid or inappropriate content", body.Message)
	assert.NotContains(t, body.Message, "injection")
}

func TestGenerate_AIServiceErrorIs503(t *testing.T) {
	handler, mockChat := setupTestChatHandler()

	mockChat.On("GenerateSecured", mock.Anything, mock.Anything, mock.Anything).
		Return("", apperrors.NewAIServiceError("failed to generate response", assert.AnError))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/generate",
		strings.NewReader(`{"prompt": "hello"}`))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeResponse(t, rec)
	assert.False(t, body.Success)
}

func TestDadJokes_DefaultMessage(t *testing.T) {
	handler, mockChat := setupTestChatHandler()

	mockChat.On("Generate", mock.Anything, "Tell me a Dad joke").Return("A classic dad joke", nil)

	req := httptest.NewRequest(http.MethodGet, "/dad-jokes", nil)
	rec := httptest.NewRecorder()
	handler.DadJokes(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.True(t, body.Success)
	mockChat.AssertExpectations(t)
}

func TestDadJokes_CustomMessage(t *testing.T) {
	handler, mockChat := setupTestChatHandler()

	mockChat.On("Generate", mock.Anything, "Tell me a pun").Return("A pun", nil)

	req := httptest.NewRequest(http.MethodGet, "/dad-jokes?message=Tell+me+a+pun", nil)
	rec := httptest.NewRecorder()
	handler.DadJokes(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockChat.AssertExpectations(t)
}

func TestHistory_ReturnsConversation(t *testing.T) {
	handler, mockChat := setupTestChatHandler()

	mockChat.On("History", mock.Anything, "conv-1").Return([]llm.Message{
		llm.UserMessage("hello"),
	}, nil)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/chat/history/conv-1", nil),
		map[string]string{"id": "conv-1"})
	rec := httptest.NewRecorder()
	handler.History(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.True(t, body.Success)
}

func TestHistory_MemoryDisabledIs503(t *testing.T) {
	mockChat := &MockChatProvider{memoryEnabled: false}
	handler := NewChatHandler(mockChat, log.New(&bytes.Buffer{}, "", 0))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/history/conv-1", nil)
	rec := httptest.NewRecorder()
	handler.History(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	mockChat.AssertNotCalled(t, "History", mock.Anything, mock.Anything)
}

func TestLLMHealth_Unavailable(t *testing.T) {
	handler, mockChat := setupTestChatHandler()

	mockChat.On("LLMHealth", mock.Anything).
		Return(apperrors.NewAIServiceError("chat backend unavailable", assert.AnError))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/health", nil)
	rec := httptest.NewRecorder()
	handler.LLMHealth(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
