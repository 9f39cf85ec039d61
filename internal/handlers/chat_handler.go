package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ai-tutorial/internal/llm"
	"ai-tutorial/internal/models"
)

// ChatProvider is the slice of the chat service the HTTP layer needs.
type ChatProvider interface {
	Generate(ctx context.Context, message string) (string, error)
	GenerateSecured(ctx context.Context, message, conversationID string) (string, error)
	SimplePrompt(ctx context.Context) (string, error)
	DadJoke(ctx context.Context) (string, error)
	History(ctx context.Context, conversationID string) ([]llm.Message, error)
	ClearHistory(ctx context.Context, conversationID string) error
	MemoryEnabled() bool
	LLMHealth(ctx context.Context) error
}

// ChatHandler handles HTTP requests for chat operations
type ChatHandler struct {
	chat   ChatProvider
	logger *log.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat ChatProvider, logger *log.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger}
}

// Generate handles secured chat generation requests
// @Summary Generate a chat response
// @Description Sanitize and filter the prompt, then generate a response
// @Tags chat
// @Accept json
// @Produce json
// @Param request body models.PromptRequest true "Prompt with optional conversation id"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /api/v1/chat/generate [post]
func (h *ChatHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.PromptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, err)
		return
	}

	response, err := h.chat.GenerateSecured(r.Context(), req.Prompt, req.ConversationID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, response, "Response generated successfully")
}

// Simple handles the hardcoded prompt demo
// @Summary Simple prompt demo
// @Description Sends a fixed prompt to the model and returns the response
// @Tags chat
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /api/v1/chat/simple [get]
func (h *ChatHandler) Simple(w http.ResponseWriter, r *http.Request) {
	response, err := h.chat.SimplePrompt(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, response, "Response generated successfully")
}

// Jokes handles the system message demo
// @Summary Joke with a comedian persona
// @Description Uses a system message to set a comedian persona before asking for a joke
// @Tags chat
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /api/v1/chat/jokes [get]
func (h *ChatHandler) Jokes(w http.ResponseWriter, r *http.Request) {
	response, err := h.chat.DadJoke(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, response, "Response generated successfully")
}

// DadJokes handles the plain-text joke endpoint
// @Summary Dad joke
// @Description Returns a dad joke, optionally for a custom message
// @Tags chat
// @Produce json
// @Param message query string false "Prompt to send" default(Tell me a Dad joke)
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /dad-jokes [get]
func (h *ChatHandler) DadJokes(w http.ResponseWriter, r *http.Request) {
	message := r.URL.Query().Get("message")
	if message == "" {
		message = "Tell me a Dad joke"
	}
	if err := models.ValidateMessage(message); err != nil {
		writeError(w, h.logger, err)
		return
	}

	response, err := h.chat.Generate(r.Context(), message)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, response, "Response generated successfully")
}

// History returns the stored turns of a conversation
// @Summary Conversation history
// @Description Returns the stored messages of a conversation
// @Tags chat
// @Produce json
// @Param id path string true "Conversation id"
// @Success 200 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/v1/chat/history/{id} [get]
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	if !h.chat.MemoryEnabled() {
		writeJSON(w, http.StatusServiceUnavailable, models.Error("Conversation memory is not available", ""))
		return
	}

	conversationID := mux.Vars(r)["id"]
	history, err := h.chat.History(r.Context(), conversationID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, history, "Conversation history retrieved")
}

// ClearHistory deletes a conversation
// @Summary Clear conversation history
// @Description Deletes the stored messages of a conversation
// @Tags chat
// @Produce json
// @Param id path string true "Conversation id"
// @Success 200 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/v1/chat/history/{id} [delete]
func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if !h.chat.MemoryEnabled() {
		writeJSON(w, http.StatusServiceUnavailable, models.Error("Conversation memory is not available", ""))
		return
	}

	conversationID := mux.Vars(r)["id"]
	if err := h.chat.ClearHistory(r.Context(), conversationID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, nil, "Conversation history cleared")
}

// LLMHealth reports whether the model backend is reachable
// @Summary LLM health check
// @Description Checks connectivity to the model backend
// @Tags chat
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /api/v1/chat/health [get]
func (h *ChatHandler) LLMHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.chat.LLMHealth(r.Context()); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, nil, "LLM backend is reachable")
}
