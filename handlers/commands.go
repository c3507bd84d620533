package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"dnabot/core/log"
	"dnabot/middleware"
	"dnabot/models"
	"dnabot/services"
)

// CommandsHandler exposes command handling over HTTP, returning the response envelope as JSON
type CommandsHandler struct {
	commands services.CommandHandler
}

func NewCommandsHandler(commands services.CommandHandler) *CommandsHandler {
	return &CommandsHandler{commands: commands}
}

func (h *CommandsHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	var request models.CommandRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&request); err != nil {
		log.Warn("⚠️ Invalid command request body", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(request.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	response := h.commands.HandleCommand(r.Context(), request.Text)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("❌ Failed to write command response", "error", err)
	}
}

func (h *CommandsHandler) SetupEndpoints(router *mux.Router, auth *middleware.APIKeyMiddleware) {
	log.Info("🚀 Registering command API endpoints")

	router.HandleFunc("/api/v1/commands", auth.WithAPIKey(h.HandleCommand)).Methods("POST")
	log.Info("✅ POST /api/v1/commands endpoint registered", "enabled", auth.Enabled())
}
