package services

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/feel-write/feelwrite-backend/internal/emotions"
	"github.com/feel-write/feelwrite-backend/internal/models"
	"github.com/feel-write/feelwrite-backend/internal/prompts"
)

// PromptSource reports where a reflection prompt came from.
const (
	PromptSourceCatalog  = "catalog"
	PromptSourceFollowUp = "follow-up"
	PromptSourceAI       = "ai"
	PromptSourceFallback = "fallback"
)

// ReflectionRound is one prompt/response pair held in transient state while
// an entry is being composed.
type ReflectionRound struct {
	Prompt   string
	Response string
}

// Accumulator drives the "reflect more vs done" loop for one entry
// composition. It is sequential and not safe for concurrent use: each round's
// prompt depends on the previous round's submission.
type Accumulator struct {
	category emotions.Category
	rng      *rand.Rand
	rounds   []ReflectionRound
}

// NewAccumulator starts an empty accumulator for the category. The rand
// source is injected so prompt choice is deterministic under test.
func NewAccumulator(category emotions.Category, rng *rand.Rand) *Accumulator {
	return &Accumulator{category: category, rng: rng}
}

// NextPrompt selects the prompt for the upcoming round: a uniform-random
// category prompt when no rounds have been submitted yet, otherwise the
// follow-up prompt indexed by the number of submitted rounds (the last
// follow-up repeats once the list is exhausted). Selection never fails; the
// fixed fallback prompt is substituted if the catalog yields nothing.
func (a *Accumulator) NextPrompt() string {
	var prompt string
	if len(a.rounds) == 0 {
		prompt = prompts.Random(a.category, a.rng)
	} else {
		prompt = prompts.FollowUp(len(a.rounds))
	}
	if strings.TrimSpace(prompt) == "" {
		return prompts.FallbackPrompt
	}
	return prompt
}

// Submit appends a completed round.
func (a *Accumulator) Submit(prompt, response string) {
	a.rounds = append(a.rounds, ReflectionRound{Prompt: prompt, Response: response})
}

// Rounds returns the submitted rounds in submission order.
func (a *Accumulator) Rounds() []ReflectionRound {
	out := make([]ReflectionRound, len(a.rounds))
	copy(out, a.rounds)
	return out
}

// Reflections converts the rounds to structured records stamped with now.
// This is the canonical persistence form.
func (a *Accumulator) Reflections(now time.Time) []models.Reflection {
	out := make([]models.Reflection, 0, len(a.rounds))
	for _, r := range a.rounds {
		out = append(out, models.Reflection{
			Prompt:    r.Prompt,
			Response:  r.Response,
			Timestamp: now.UTC(),
		})
	}
	return out
}

// Finalize flattens the rounds onto the entry body: the first round carries
// only the response, later rounds restate their prompt. Presentation-only
// projection; the structured records remain the stored form.
func (a *Accumulator) Finalize(body string) string {
	return body + FlattenRounds(a.rounds)
}

// FlattenRounds renders rounds in the flat text form the composer appends to
// the entry body.
func FlattenRounds(rounds []ReflectionRound) string {
	var b strings.Builder
	for i, r := range rounds {
		if i == 0 {
			fmt.Fprintf(&b, "\n\nReflection:\n%s", r.Response)
		} else {
			fmt.Fprintf(&b, "\n\nReflection: %s\n%s", r.Prompt, r.Response)
		}
	}
	return b.String()
}

// FlattenReflections renders stored reflections the same way.
func FlattenReflections(refs []models.Reflection) string {
	rounds := make([]ReflectionRound, 0, len(refs))
	for _, r := range refs {
		rounds = append(rounds, ReflectionRound{Prompt: r.Prompt, Response: r.Response})
	}
	return FlattenRounds(rounds)
}

// SelectPrompt is the stateless selection used by the generate-reflection
// route: category prompt for the first round, follow-up for later rounds.
// Returns the prompt and its source tag.
func SelectPrompt(category emotions.Category, previousReflection string, reflectionCount int, rng *rand.Rand) (string, string) {
	if previousReflection != "" && reflectionCount > 0 {
		return prompts.FollowUp(reflectionCount), PromptSourceFollowUp
	}
	return prompts.Random(category, rng), PromptSourceCatalog
}
