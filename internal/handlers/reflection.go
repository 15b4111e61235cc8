package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/feel-write/feelwrite-backend/internal/emotions"
	"github.com/feel-write/feelwrite-backend/internal/prompts"
	"github.com/feel-write/feelwrite-backend/internal/services"
)

type ReflectionPromptResponse struct {
	Success  bool   `json:"success"`
	Prompt   string `json:"prompt"`
	Category string `json:"category,omitempty"`
	Source   string `json:"source,omitempty"`
}

// ReflectionEntry is the in-progress entry the client is reflecting on.
// Clients send it as an object; a bare string is accepted as the entry text.
type ReflectionEntry struct {
	Category   string `json:"category"`
	SubEmotion string `json:"subEmotion"`
	Text       string `json:"text"`
}

func (e *ReflectionEntry) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &e.Text)
	}
	type plain ReflectionEntry
	return json.Unmarshal(data, (*plain)(e))
}

func (e ReflectionEntry) isZero() bool {
	return e.Category == "" && e.SubEmotion == "" && e.Text == ""
}

type GenerateReflectionRequest struct {
	Entry              ReflectionEntry `json:"entry"`
	Category           string          `json:"category,omitempty"`
	PreviousReflection string          `json:"previousReflection,omitempty"`
	ReflectionCount    int             `json:"reflectionCount,omitempty"`
}

// GetReflectionPrompt returns a random first-round prompt for the category.
func GetReflectionPrompt(w http.ResponseWriter, r *http.Request) {
	category := emotions.Category(strings.ToLower(r.URL.Query().Get("category")))

	prompt, source := services.SelectPrompt(category, "", 0, promptRand())
	if strings.TrimSpace(prompt) == "" {
		prompt = prompts.FallbackPrompt
		source = services.PromptSourceFallback
	}

	writeJSON(w, http.StatusOK, ReflectionPromptResponse{
		Success:  true,
		Prompt:   prompt,
		Category: string(category),
		Source:   source,
	})
}

// GenerateReflection picks the next reflection prompt for an in-progress
// entry. Later rounds consult the completion service when configured; the
// catalog is the fallback so the composer never stalls.
func GenerateReflection(w http.ResponseWriter, r *http.Request) {
	var req GenerateReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Entry.isZero() && req.Category == "" {
		// Nothing to reflect on yet. Answer with the fixed fallback so the
		// composer never stalls on a malformed save.
		writeJSON(w, http.StatusOK, ReflectionPromptResponse{
			Success: true,
			Prompt:  prompts.FallbackPrompt,
			Source:  services.PromptSourceFallback,
		})
		return
	}

	rawCategory := req.Entry.Category
	if rawCategory == "" {
		rawCategory = req.Category
	}
	category := emotions.Category(strings.ToLower(rawCategory))

	if req.ReflectionCount > 0 && req.PreviousReflection != "" && completionService.Configured() {
		prompt, err := completionService.Complete(r.Context(), []services.ChatMessage{
			{Role: "user", Content: "Journal entry: " + req.Entry.Text +
				"\n\nPrevious reflection: " + req.PreviousReflection +
				"\n\nAsk one short, gentle follow-up question that helps the writer go deeper. Reply with only the question."},
		})
		if err == nil && strings.TrimSpace(prompt) != "" {
			writeJSON(w, http.StatusOK, ReflectionPromptResponse{
				Success: true,
				Prompt:  strings.TrimSpace(prompt),
				Source:  services.PromptSourceAI,
			})
			return
		}
	}

	prompt, source := services.SelectPrompt(category, req.PreviousReflection, req.ReflectionCount, promptRand())
	if strings.TrimSpace(prompt) == "" {
		prompt = prompts.FallbackPrompt
		source = services.PromptSourceFallback
	}

	writeJSON(w, http.StatusOK, ReflectionPromptResponse{
		Success: true,
		Prompt:  prompt,
		Source:  source,
	})
}
