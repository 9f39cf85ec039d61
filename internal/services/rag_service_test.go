package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ai-tutorial/internal/apperrors"
	"ai-tutorial/internal/llm"
	"ai-tutorial/internal/repositories"
)

func setupTestRagService(t *testing.T) (*RagService, *MockChatClient, *MockVectorRepository) {
	templatesDir := t.TempDir()
	template := "QUESTION:\n{input}\n\nDOCUMENTS:\n{documents}\n"
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, "rag-prompt-template.st"), []byte(template), 0o644))

	mockChat := &MockChatClient{}
	mockStore := &MockVectorRepository{}
	service := NewRagService(mockChat, mockStore, templatesDir, testLogger())
	return service, mockChat, mockStore
}

func TestQuery_StuffsRetrievedChunks(t *testing.T) {
	service, mockChat, mockStore := setupTestRagService(t)

	mockStore.On("Search", mock.Anything, "What do you offer?", 2).Return([]repositories.SearchResult{
		{Document: repositories.Document{ID: "a", Content: "We offer consulting."}, Score: 0.9},
		{Document: repositories.Document{ID: "b", Content: "We offer workshops."}, Score: 0.8},
	}, nil)
	mockChat.On("Generate", mock.Anything, mock.MatchedBy(func(messages []llm.Message) bool {
		if len(messages) != 1 {
			return false
		}
		prompt := messages[0].Content
		return strings.Contains(prompt, "What do you offer?") &&
			strings.Contains(prompt, "We offer consulting.") &&
			strings.Contains(prompt, "We offer workshops.")
	})).Return("Consulting and workshops.", nil)

	answer, err := service.Query(context.Background(), "What do you offer?", 0)
	require.NoError(t, err)
	assert.Equal(t, "Consulting and workshops.", answer)
	mockStore.AssertExpectations(t)
	mockChat.AssertExpectations(t)
}

func TestQuery_SearchFailurePropagates(t *testing.T) {
	service, mockChat, mockStore := setupTestRagService(t)

	storeErr := apperrors.NewVectorStoreError("index unavailable", errors.New("boom"))
	mockStore.On("Search", mock.Anything, "anything", 2).Return(nil, storeErr)

	_, err := service.Query(context.Background(), "anything", 0)
	require.Error(t, err)

	var vsErr *apperrors.VectorStoreError
	assert.ErrorAs(t, err, &vsErr)
	mockChat.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestQuery_GenerationFailure(t *testing.T) {
	service, mockChat, mockStore := setupTestRagService(t)

	mockStore.On("Search", mock.Anything, "q", 2).Return([]repositories.SearchResult{}, nil)
	mockChat.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("model offline"))

	_, err := service.Query(context.Background(), "q", 0)
	require.Error(t, err)

	var aiErr *apperrors.AIServiceError
	assert.ErrorAs(t, err, &aiErr)
}

func TestSearch_ShapesResults(t *testing.T) {
	service, _, mockStore := setupTestRagService(t)

	mockStore.On("Search", mock.Anything, "pricing", 4).Return([]repositories.SearchResult{
		{
			Document: repositories.Document{
				ID:       "a",
				Content:  "Discovery weeks are fixed price.",
				Metadata: map[string]interface{}{"filename": "faq.txt"},
			},
			Score: 0.75,
		},
	}, nil)

	results, err := service.Search(context.Background(), "pricing", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Discovery weeks are fixed price.", results[0]["content"])
	assert.Equal(t, float32(0.75), results[0]["score"])
	assert.Equal(t, map[string]interface{}{"filename": "faq.txt"}, results[0]["metadata"])
}

func TestSearch_CustomTopK(t *testing.T) {
	service, _, mockStore := setupTestRagService(t)

	mockStore.On("Search", mock.Anything, "pricing", 7).Return([]repositories.SearchResult{}, nil)

	results, err := service.Search(context.Background(), "pricing", 7)
	require.NoError(t, err)
	assert.Empty(t, results)
	mockStore.AssertExpectations(t)
}
