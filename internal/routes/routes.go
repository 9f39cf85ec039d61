// Package routes wires the HTTP handlers onto the router.
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"ai-tutorial/internal/handlers"
)

// Handlers collects everything RegisterRoutes needs to mount.
type Handlers struct {
	Home   http.HandlerFunc
	Health http.HandlerFunc

	Chat     *handlers.ChatHandler
	Prompts  *handlers.PromptHandler
	Output   *handlers.OutputHandler
	Rag      *handlers.RagHandler
	Document *handlers.DocumentHandler
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(router *mux.Router, h *Handlers) {
	// Health endpoints
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Main routes
	router.HandleFunc("/", h.Home).Methods(http.MethodGet)
	router.HandleFunc("/dad-jokes", h.Chat.DadJokes).Methods(http.MethodGet)

	// Chat
	router.HandleFunc("/api/v1/chat/generate", h.Chat.Generate).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/chat/simple", h.Chat.Simple).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/chat/jokes", h.Chat.Jokes).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/chat/health", h.Chat.LLMHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/chat/history/{id}", h.Chat.History).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/chat/history/{id}", h.Chat.ClearHistory).Methods(http.MethodDelete)

	// Prompt engineering demos
	router.HandleFunc("/api/v1/prompts/youtube", h.Prompts.YouTube).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/prompts/youtube-external", h.Prompts.YouTubeExternal).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/prompts/stuff", h.Prompts.Stuff).Methods(http.MethodPost)

	// Structured output demos. The songs and books routes must be mounted
	// before the {author} catch-all.
	router.HandleFunc("/api/v1/output/songs", h.Output.Songs).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/output/books", h.Output.Books).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/output/{author}", h.Output.Links).Methods(http.MethodGet)

	// RAG
	router.HandleFunc("/api/v1/rag/query", h.Rag.Query).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/rag/search", h.Rag.Search).Methods(http.MethodPost)

	// Document ingestion
	router.HandleFunc("/api/documents/upload", h.Document.Upload).Methods(http.MethodPost)
	router.HandleFunc("/api/documents/ingest-text", h.Document.IngestText).Methods(http.MethodPost)
	router.HandleFunc("/api/documents/list", h.Document.List).Methods(http.MethodGet)
	router.HandleFunc("/api/documents/delete", h.Document.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/api/documents/stats", h.Document.Stats).Methods(http.MethodGet)
}
