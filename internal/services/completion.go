package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// companionSystemPrompt defines the bot's behavior as an empathetic companion
// focused on emotional well-being.
const companionSystemPrompt = `You are Feel-Write, an empathetic AI companion focused on emotional well-being.

Your purpose is to:
- Help users understand and process their emotions
- Provide a safe, non-judgmental space for reflection
- Offer gentle guidance based on emotional intelligence principles
- Encourage healthy emotional expression and self-awareness

Guidelines:
- Be warm, compassionate, and conversational
- Ask thoughtful questions to deepen understanding
- Validate emotions without judgment
- Keep responses concise (2-3 paragraphs maximum)
- Focus on emotional awareness rather than problem-solving
- Never diagnose or provide medical/therapeutic advice
- If users are in crisis, gently suggest professional help

Remember that you're a supportive companion, not a therapist or medical professional.`

// cannedReplies are cycled through when no API key is configured or the
// upstream call fails; the user always gets something back.
var cannedReplies = []string{
	"Thank you for sharing that with me. What feels most present for you right now?",
	"That sounds like a lot to carry. What would feel supportive in this moment?",
	"I'm here with you. Can you tell me more about how that felt?",
	"It takes courage to put feelings into words. What do you notice in your body as you write this?",
}

// ChatMessage is one turn in a companion conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ErrCompletionUnavailable indicates no upstream model is configured.
var ErrCompletionUnavailable = errors.New("completion service not configured")

// CompletionService proxies companion-chat and reflection-prompt requests to
// OpenAI. A nil client means "not configured" and every call degrades to the
// canned fallback path.
type CompletionService struct {
	client *openai.Client
	model  string

	mu         sync.Mutex
	cannedNext int
}

// NewCompletionService returns a service bound to the API key, or one in
// fallback-only mode when the key is empty.
func NewCompletionService(apiKey, model string) *CompletionService {
	svc := &CompletionService{model: model}
	if svc.model == "" {
		svc.model = openai.GPT4o
	}
	if apiKey != "" {
		svc.client = openai.NewClient(apiKey)
	}
	return svc
}

// Configured reports whether an upstream model is available.
func (s *CompletionService) Configured() bool {
	return s.client != nil
}

// Complete answers a companion conversation. When the upstream is missing or
// fails, a canned empathetic reply is returned along with the error so callers
// can tell a model reply from a fallback.
func (s *CompletionService) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	if s.client == nil {
		return s.canned(), ErrCompletionUnavailable
	}

	reqMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	reqMessages = append(reqMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: companionSystemPrompt,
	})
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		reqMessages = append(reqMessages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    reqMessages,
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return s.canned(), err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "I'm sorry, I couldn't process that. Could we try again?", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *CompletionService) canned() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	reply := cannedReplies[s.cannedNext%len(cannedReplies)]
	s.cannedNext++
	return reply
}
