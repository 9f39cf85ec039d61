package services

import (
	"bytes"
	"context"
	"log"

	"github.com/stretchr/testify/mock"

	"ai-tutorial/internal/llm"
	"ai-tutorial/internal/repositories"
)

// ============================================================================
// Mock Clients and Repositories
// ============================================================================

type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func (m *MockChatClient) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockVectorRepository struct {
	mock.Mock
}

func (m *MockVectorRepository) Add(ctx context.Context, docs []repositories.Document) error {
	args := m.Called(ctx, docs)
	return args.Error(0)
}

func (m *MockVectorRepository) Search(ctx context.Context, query string, topK int) ([]repositories.SearchResult, error) {
	args := m.Called(ctx, query, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.SearchResult), args.Error(1)
}

func (m *MockVectorRepository) Delete(ctx context.Context, ids []string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockVectorRepository) All(ctx context.Context) ([]repositories.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.Document), args.Error(1)
}

func (m *MockVectorRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockMemoryRepository struct {
	mock.Mock
}

func (m *MockMemoryRepository) Append(ctx context.Context, conversationID string, messages ...llm.Message) error {
	args := m.Called(ctx, conversationID, messages)
	return args.Error(0)
}

func (m *MockMemoryRepository) History(ctx context.Context, conversationID string) ([]llm.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]llm.Message), args.Error(1)
}

func (m *MockMemoryRepository) Clear(ctx context.Context, conversationID string) error {
	args := m.Called(ctx, conversationID)
	return args.Error(0)
}

func testLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0)
}
