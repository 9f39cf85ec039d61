package services

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"ai-tutorial/internal/apperrors"
	"ai-tutorial/internal/llm"
	"ai-tutorial/internal/prompt"
	"ai-tutorial/internal/repositories"
)

const (
	// defaultQueryTopK keeps the stuffed context small; two chunks are
	// enough for the FAQ corpus without blowing the context window.
	defaultQueryTopK = 2

	defaultSearchTopK = 4
)

// RagService answers questions grounded in the vector store: retrieve the
// most similar chunks, stuff them into the prompt, then generate.
type RagService struct {
	chat         llm.ChatClient
	store        repositories.VectorRepository
	templatesDir string
	logger       *log.Logger
}

func NewRagService(chat llm.ChatClient, store repositories.VectorRepository, templatesDir string, logger *log.Logger) *RagService {
	return &RagService{
		chat:         chat,
		store:        store,
		templatesDir: templatesDir,
		logger:       logger,
	}
}

// Query runs the full RAG pipeline for a question and returns the
// generated answer.
func (s *RagService) Query(ctx context.Context, query string, topK int) (string, error) {
	if topK <= 0 {
		topK = defaultQueryTopK
	}

	results, err := s.store.Search(ctx, query, topK)
	if err != nil {
		return "", err
	}
	s.logger.Printf("retrieved %d chunks for RAG query", len(results))

	contents := make([]string, 0, len(results))
	for _, r := range results {
		contents = append(contents, r.Document.Content)
	}

	template, err := prompt.Load(filepath.Join(s.templatesDir, "rag-prompt-template.st"))
	if err != nil {
		return "", apperrors.NewAIServiceError("failed to load RAG prompt template", err)
	}
	rendered, err := template.With(map[string]string{
		"input":     query,
		"documents": strings.Join(contents, "\n"),
	}).Render()
	if err != nil {
		return "", apperrors.NewAIServiceError("failed to render RAG prompt template", err)
	}

	response, err := s.chat.Generate(ctx, []llm.Message{llm.UserMessage(rendered)})
	if err != nil {
		return "", apperrors.NewAIServiceError("failed to generate RAG response", err)
	}
	return response, nil
}

// Search exposes raw similarity search results without generation, useful
// for inspecting what the retriever would feed the model.
func (s *RagService) Search(ctx context.Context, query string, topK int) ([]map[string]interface{}, error) {
	if topK <= 0 {
		topK = defaultSearchTopK
	}

	results, err := s.store.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		out = append(out, map[string]interface{}{
			"content":  r.Document.Content,
			"metadata": r.Document.Metadata,
			"score":    r.Score,
		})
	}
	return out, nil
}
