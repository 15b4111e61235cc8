package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/feel-write/feelwrite-backend/internal/services"
)

type BotRequest struct {
	Messages []services.ChatMessage `json:"messages,omitempty"`
	Message  string                 `json:"message,omitempty"`
}

type BotResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	IsAI    bool   `json:"isAI"`
}

// BotChat answers a companion-chat turn. Accepts either a full message
// transcript or a single message. A canned empathetic reply is returned when
// the completion service is unconfigured or the upstream call fails, so the
// companion never goes silent.
func BotChat(w http.ResponseWriter, r *http.Request) {
	var req BotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	messages := req.Messages
	if len(messages) == 0 {
		if req.Message == "" {
			writeError(w, http.StatusBadRequest, "Message is required")
			return
		}
		messages = []services.ChatMessage{{Role: "user", Content: req.Message}}
	}

	reply, err := completionService.Complete(r.Context(), messages)
	if reply == "" {
		writeError(w, http.StatusInternalServerError, "Failed to generate a reply")
		return
	}

	writeJSON(w, http.StatusOK, BotResponse{
		Success: true,
		Message: reply,
		IsAI:    err == nil,
	})
}
