package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ai-tutorial/internal/models"
)

// OutputProvider is the slice of the output service the HTTP layer needs.
type OutputProvider interface {
	SongsByArtist(ctx context.Context, artist string) ([]string, error)
	AuthorLinks(ctx context.Context, author string) (map[string]interface{}, error)
	AuthorBooks(ctx context.Context, author string) (models.Author, error)
}

// OutputHandler handles HTTP requests for the structured output demos
type OutputHandler struct {
	output OutputProvider
	logger *log.Logger
}

// NewOutputHandler creates a new output handler
func NewOutputHandler(output OutputProvider, logger *log.Logger) *OutputHandler {
	return &OutputHandler{output: output, logger: logger}
}

// Songs handles list conversion requests
// @Summary Top songs by artist
// @Description Returns the model's answer converted into a string list
// @Tags output
// @Produce json
// @Param artist query string false "Artist name" default(Taylor Swift)
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /api/v1/output/songs [get]
func (h *OutputHandler) Songs(w http.ResponseWriter, r *http.Request) {
	artist := r.URL.Query().Get("artist")
	if artist == "" {
		artist = "Taylor Swift"
	}
	if err := models.ValidateMessage(artist); err != nil {
		writeError(w, h.logger, err)
		return
	}

	songs, err := h.output.SongsByArtist(r.Context(), artist)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, songs, "Songs retrieved successfully")
}

// Links handles map conversion requests
// @Summary Social links for an author
// @Description Returns the model's answer converted into a JSON map
// @Tags output
// @Produce json
// @Param author path string true "Author name"
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /api/v1/output/{author} [get]
func (h *OutputHandler) Links(w http.ResponseWriter, r *http.Request) {
	author := mux.Vars(r)["author"]
	if err := models.ValidateMessage(author); err != nil {
		writeError(w, h.logger, err)
		return
	}

	links, err := h.output.AuthorLinks(r.Context(), author)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, links, "Author links retrieved successfully")
}

// Books handles bean conversion requests
// @Summary Books by author
// @Description Returns the model's answer converted into an Author struct
// @Tags output
// @Produce json
// @Param author query string false "Author name" default(Craig Walls)
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /api/v1/output/books [get]
func (h *OutputHandler) Books(w http.ResponseWriter, r *http.Request) {
	author := r.URL.Query().Get("author")
	if author == "" {
		author = "Craig Walls"
	}
	if err := models.ValidateMessage(author); err != nil {
		writeError(w, h.logger, err)
		return
	}

	result, err := h.output.AuthorBooks(r.Context(), author)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, result, "Author books retrieved successfully")
}
