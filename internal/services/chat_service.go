// Package services contains the business logic between the HTTP handlers and
// the chat, embedding and vector store clients.
package services

import (
	"context"
	"log"

	"ai-tutorial/internal/apperrors"
	"ai-tutorial/internal/llm"
	"ai-tutorial/internal/repositories"
	"ai-tutorial/internal/security"
)

// ChatService handles basic AI chat interactions: direct generation, the
// sanitized generation pipeline, and the simple-prompt and system-message
// demos.
type ChatService struct {
	chat      llm.ChatClient
	sanitizer *security.Sanitizer
	filter    *security.ContentFilter
	memory    repositories.MemoryRepository // nil when Redis is unavailable
	logger    *log.Logger
}

func NewChatService(chat llm.ChatClient, sanitizer *security.Sanitizer, filter *security.ContentFilter, memory repositories.MemoryRepository, logger *log.Logger) *ChatService {
	return &ChatService{
		chat:      chat,
		sanitizer: sanitizer,
		filter:    filter,
		memory:    memory,
		logger:    logger,
	}
}

// Generate sends the message straight to the model. Used by the intro
// endpoint which predates the security pipeline.
func (s *ChatService) Generate(ctx context.Context, message string) (string, error) {
	response, err := s.chat.Generate(ctx, []llm.Message{llm.UserMessage(message)})
	if err != nil {
		return "", apperrors.NewAIServiceError("failed to generate response", err)
	}
	return response, nil
}

// GenerateSecured runs the full pipeline: sanitize the input, filter the
// request, invoke the model with optional conversation history, then filter
// the response. A non-empty conversationID persists the turn when memory is
// available.
func (s *ChatService) GenerateSecured(ctx context.Context, message, conversationID string) (string, error) {
	s.logger.Printf("generating AI response for message: %s", s.sanitizer.SafeLogString(message))

	sanitized, err := s.sanitizer.Sanitize(message)
	if err != nil {
		return "", err
	}

	filterResult := s.filter.Filter(sanitized)
	if filterResult.Blocked {
		s.logger.Printf("content blocked: %s", filterResult.Reason)
		return "", apperrors.NewSecurityError("request blocked: " + filterResult.Reason)
	}
	processed := filterResult.FilteredContent

	messages := s.historyFor(ctx, conversationID)
	userMessage := llm.UserMessage(processed)
	messages = append(messages, userMessage)

	response, err := s.chat.Generate(ctx, messages)
	if err != nil {
		return "", apperrors.NewAIServiceError("failed to generate response", err)
	}

	final := s.filter.Filter(response).FilteredContent

	if s.memory != nil && conversationID != "" {
		assistantMessage := llm.Message{Role: llm.RoleAssistant, Content: final}
		if err := s.memory.Append(ctx, conversationID, userMessage, assistantMessage); err != nil {
			// Memory is best effort; the response still goes out.
			s.logger.Printf("failed to persist conversation %s: %v", conversationID, err)
		}
	}

	s.logger.Printf("AI response generated, length %d", len(final))
	return final, nil
}

// SimplePrompt demonstrates a fixed prompt with no templating.
func (s *ChatService) SimplePrompt(ctx context.Context) (string, error) {
	response, err := s.chat.Generate(ctx, []llm.Message{llm.UserMessage("Tell me a dad joke")})
	if err != nil {
		return "", apperrors.NewAIServiceError("failed to generate simple prompt response", err)
	}
	return response, nil
}

// DadJoke demonstrates system-message behavior control: the comedian persona
// overrides the user's request for a serious joke.
func (s *ChatService) DadJoke(ctx context.Context) (string, error) {
	messages := []llm.Message{
		llm.SystemMessage("You are a world class comedian. Your task is to tell dad jokes. If someone asks you about any other jokes, tell them you only tell dad jokes"),
		llm.UserMessage("Tell me a serious joke about the universe"),
	}
	response, err := s.chat.Generate(ctx, messages)
	if err != nil {
		return "", apperrors.NewAIServiceError("failed to generate dad joke", err)
	}
	return response, nil
}

// History returns the stored conversation.
func (s *ChatService) History(ctx context.Context, conversationID string) ([]llm.Message, error) {
	if s.memory == nil {
		return nil, apperrors.NewValidationError("conversation_id", "conversation memory is not enabled")
	}
	messages, err := s.memory.History(ctx, conversationID)
	if err != nil {
		return nil, apperrors.NewAIServiceError("failed to load conversation history", err)
	}
	return messages, nil
}

// ClearHistory removes the stored conversation.
func (s *ChatService) ClearHistory(ctx context.Context, conversationID string) error {
	if s.memory == nil {
		return apperrors.NewValidationError("conversation_id", "conversation memory is not enabled")
	}
	if err := s.memory.Clear(ctx, conversationID); err != nil {
		return apperrors.NewAIServiceError("failed to clear conversation history", err)
	}
	return nil
}

// MemoryEnabled reports whether conversation memory is wired.
func (s *ChatService) MemoryEnabled() bool { return s.memory != nil }

// LLMHealth checks the chat backend.
func (s *ChatService) LLMHealth(ctx context.Context) error {
	if err := s.chat.HealthCheck(ctx); err != nil {
		return apperrors.NewAIServiceError("chat backend unavailable", err)
	}
	return nil
}

func (s *ChatService) historyFor(ctx context.Context, conversationID string) []llm.Message {
	if s.memory == nil || conversationID == "" {
		return nil
	}
	history, err := s.memory.History(ctx, conversationID)
	if err != nil {
		s.logger.Printf("failed to load conversation %s, continuing without history: %v", conversationID, err)
		return nil
	}
	return history
}
