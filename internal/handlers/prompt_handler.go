package handlers

import (
	"context"
	"log"
	"net/http"

	"ai-tutorial/internal/models"
)

// PromptProvider is the slice of the prompt service the HTTP layer needs.
type PromptProvider interface {
	YouTubeList(ctx context.Context, genre string) (string, error)
	YouTubeListExternal(ctx context.Context, genre string) (string, error)
	StuffThePrompt(ctx context.Context, question string, stuffIt bool) (string, error)
}

// PromptHandler handles HTTP requests for the prompt engineering demos
type PromptHandler struct {
	prompts PromptProvider
	logger  *log.Logger
}

// NewPromptHandler creates a new prompt handler
func NewPromptHandler(prompts PromptProvider, logger *log.Logger) *PromptHandler {
	return &PromptHandler{prompts: prompts, logger: logger}
}

const defaultGenre = "tech"

// YouTube handles the inline template demo
// @Summary Popular YouTubers by genre
// @Description Renders an inline prompt template and asks the model
// @Tags prompting
// @Produce json
// @Param genre query string false "Genre to list YouTubers for" default(tech)
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /api/v1/prompts/youtube [get]
func (h *PromptHandler) YouTube(w http.ResponseWriter, r *http.Request) {
	genre := r.URL.Query().Get("genre")
	if genre == "" {
		genre = defaultGenre
	}
	if err := models.ValidateMessage(genre); err != nil {
		writeError(w, h.logger, err)
		return
	}

	response, err := h.prompts.YouTubeList(r.Context(), genre)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, response, "Response generated successfully")
}

// YouTubeExternal handles the external template demo
// @Summary Popular YouTubers by genre (external template)
// @Description Loads the prompt template from a file and asks the model
// @Tags prompting
// @Produce json
// @Param genre query string false "Genre to list YouTubers for" default(tech)
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /api/v1/prompts/youtube-external [get]
func (h *PromptHandler) YouTubeExternal(w http.ResponseWriter, r *http.Request) {
	genre := r.URL.Query().Get("genre")
	if genre == "" {
		genre = defaultGenre
	}
	if err := models.ValidateMessage(genre); err != nil {
		writeError(w, h.logger, err)
		return
	}

	response, err := h.prompts.YouTubeListExternal(r.Context(), genre)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, response, "Response generated successfully")
}

// Stuff handles the context injection demo
// @Summary Context injection demo
// @Description Answers a question with or without the bundled document stuffed into the prompt
// @Tags prompting
// @Accept json
// @Produce json
// @Param request body models.ContextInjectionRequest true "Question and stuffit flag"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /api/v1/prompts/stuff [post]
func (h *PromptHandler) Stuff(w http.ResponseWriter, r *http.Request) {
	var req models.ContextInjectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, err)
		return
	}

	response, err := h.prompts.StuffThePrompt(r.Context(), req.Prompt, req.StuffIt)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, response, "Response generated successfully")
}
