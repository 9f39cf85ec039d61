package handlers

import (
	"context"
	"log"
	"net/http"

	"ai-tutorial/internal/models"
)

// RagProvider is the slice of the RAG service the HTTP layer needs.
type RagProvider interface {
	Query(ctx context.Context, query string, topK int) (string, error)
	Search(ctx context.Context, query string, topK int) ([]map[string]interface{}, error)
}

// RagHandler handles HTTP requests for retrieval augmented generation
type RagHandler struct {
	rag    RagProvider
	logger *log.Logger
}

// NewRagHandler creates a new RAG handler
func NewRagHandler(rag RagProvider, logger *log.Logger) *RagHandler {
	return &RagHandler{rag: rag, logger: logger}
}

// Query handles RAG questions
// @Summary Answer a question with RAG
// @Description Retrieves the closest document chunks and generates a grounded answer
// @Tags rag
// @Accept json
// @Produce json
// @Param request body models.QueryRequest true "Question and optional top_k"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /api/v1/rag/query [post]
func (h *RagHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req models.QueryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, err)
		return
	}

	answer, err := h.rag.Query(r.Context(), req.Query, req.TopK)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, answer, "Query answered successfully")
}

// Search handles raw similarity search
// @Summary Similarity search
// @Description Returns the closest document chunks without generation
// @Tags rag
// @Accept json
// @Produce json
// @Param request body models.QueryRequest true "Query and optional top_k"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/v1/rag/search [post]
func (h *RagHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req models.QueryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, err)
		return
	}

	results, err := h.rag.Search(r.Context(), req.Query, req.TopK)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, results, "Search completed successfully")
}
