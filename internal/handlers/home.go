package handlers

import (
	"fmt"
	"net/http"

	"ai-tutorial/internal/models"
)

// HomeHandler godoc
// @Summary Home page
// @Description Returns a welcome message for the API server
// @Tags general
// @Accept json
// @Produce text/plain
// @Success 200 {string} string "Welcome to the AI Tutorial Server!"
// @Router / [get]
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	fmt.Fprintln(w, "Welcome to the AI Tutorial Server!")
}

// HealthCheckHandler godoc
// @Summary Health check
// @Description Reports whether the server is up
// @Tags general
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /health [get]
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Success(nil, "Server is healthy"))
}
