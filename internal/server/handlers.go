package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"scribe/internal/logger"
)

// HealthResponse is the /health body
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// ErrorResponse is the body of every non-envelope error
type ErrorResponse struct {
	Error string `json:"error"`
}

var serverStartTime = time.Now()

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(serverStartTime).Round(time.Second).String(),
	})
}

// handleStatus handles GET /api/v1/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.recaps.Status())
}

// handleGenerateRecap handles POST /api/v1/recaps/{gameID}
func (s *Server) handleGenerateRecap(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if id, err := strconv.Atoi(gameID); err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "game id must be a positive integer")
		return
	}

	result := s.recaps.GenerateRecap(r.Context(), gameID)
	if !result.Success {
		respondJSON(w, http.StatusInternalServerError, result)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
