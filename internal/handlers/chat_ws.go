package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/feel-write/feelwrite-backend/internal/services"
	"github.com/gorilla/websocket"
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// ChatClientMessage represents messages coming from the frontend over WebSocket.
type ChatClientMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text,omitempty"`
}

// ChatServerMessage is what the companion sends back.
type ChatServerMessage struct {
	Type      string    `json:"type"` // "message", "pong", "error"
	Role      string    `json:"role,omitempty"`
	Text      string    `json:"text,omitempty"`
	IsAI      bool      `json:"isAI,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatWebSocket handles the real-time companion chat. Each inbound user
// message is answered with a completion over the running transcript.
// Authentication via session token (header or `token` query parameter) is
// optional; anonymous connections chat as the preview user.
func ChatWebSocket(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		// Browser WebSocket clients cannot set headers.
		token = r.URL.Query().Get("token")
	}
	if token != "" {
		if sess, err := authService.GetSession(r.Context(), token); err != nil || sess == nil {
			http.Error(w, "invalid session token", http.StatusUnauthorized)
			return
		}
	}

	conn, err := chatUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	conn.SetReadLimit(64 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	// Transcript is per-connection; a reconnect starts a fresh conversation.
	var transcript []services.ChatMessage

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))

		var msg ChatClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "ping":
			_ = conn.WriteJSON(ChatServerMessage{Type: "pong", Timestamp: time.Now()})
		case "message":
			text := strings.TrimSpace(msg.Text)
			if text == "" {
				continue
			}
			transcript = append(transcript, services.ChatMessage{Role: "user", Content: text})

			reply, cerr := completionService.Complete(r.Context(), transcript)
			if reply == "" {
				_ = conn.WriteJSON(ChatServerMessage{Type: "error", Text: "I couldn't reply just now. Please try again.", Timestamp: time.Now()})
				continue
			}
			transcript = append(transcript, services.ChatMessage{Role: "assistant", Content: reply})

			if err := conn.WriteJSON(ChatServerMessage{
				Type:      "message",
				Role:      "assistant",
				Text:      reply,
				IsAI:      cerr == nil,
				Timestamp: time.Now(),
			}); err != nil {
				return
			}
		}
	}
}
