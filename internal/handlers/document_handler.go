package handlers

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"

	"ai-tutorial/internal/models"
	"ai-tutorial/internal/services"
)

// DocumentIngester is the slice of the ingestion service the HTTP layer needs.
type DocumentIngester interface {
	IngestFile(ctx context.Context, filename string, size int64, r io.Reader) (services.IngestionResult, error)
	IngestText(ctx context.Context, title, text string) (services.IngestionResult, error)
	ListDocuments(ctx context.Context) ([]services.DocumentInfo, error)
	DeleteDocuments(ctx context.Context, ids []string) (int, error)
	Statistics(ctx context.Context) (map[string]interface{}, error)
}

// DocumentHandler handles HTTP requests for document ingestion
type DocumentHandler struct {
	ingester DocumentIngester
	logger   *log.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(ingester DocumentIngester, logger *log.Logger) *DocumentHandler {
	return &DocumentHandler{ingester: ingester, logger: logger}
}

// Upload handles document upload requests
// @Summary Upload a document
// @Description Uploads a plain-text document, chunks it, and stores the embeddings
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/documents/upload [post]
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	h.logger.Printf("upload request from %s", r.RemoteAddr)

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Error("Failed to parse form data", err.Error()))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.Error("No file uploaded", ""))
		return
	}
	defer file.Close()

	result, err := h.ingester.IngestFile(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, result, "Document ingested successfully")
}

// IngestText handles raw text ingestion requests
// @Summary Ingest raw text
// @Description Chunks submitted text and stores the embeddings
// @Tags documents
// @Accept x-www-form-urlencoded
// @Produce json
// @Param title formData string false "Document title"
// @Param text formData string true "Text to ingest"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/documents/ingest-text [post]
func (h *DocumentHandler) IngestText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Error("Failed to parse form data", err.Error()))
		return
	}

	result, err := h.ingester.IngestText(r.Context(), r.FormValue("title"), r.FormValue("text"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, result, "Text ingested successfully")
}

// List handles document listing requests
// @Summary List ingested documents
// @Description Lists the stored documents with their chunk counts
// @Tags documents
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/documents/list [get]
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.ingester.ListDocuments(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, docs, "Documents retrieved successfully")
}

// Delete handles document deletion requests
// @Summary Delete documents
// @Description Deletes all chunks of the given comma-separated document ids
// @Tags documents
// @Produce json
// @Param ids query string true "Comma-separated document ids"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/documents/delete [delete]
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ids := strings.Split(r.URL.Query().Get("ids"), ",")
	deleted, err := h.ingester.DeleteDocuments(r.Context(), ids)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"deleted_chunks": deleted}, "Documents deleted successfully")
}

// Stats handles store statistics requests
// @Summary Vector store statistics
// @Description Reports document and chunk counts
// @Tags documents
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/documents/stats [get]
func (h *DocumentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ingester.Statistics(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, stats, "Statistics retrieved successfully")
}
