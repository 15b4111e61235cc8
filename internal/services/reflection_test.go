package services

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feel-write/feelwrite-backend/internal/emotions"
	"github.com/feel-write/feelwrite-backend/internal/prompts"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestAccumulatorFirstPromptFromCategoryCatalog(t *testing.T) {
	acc := NewAccumulator(emotions.CategoryAngry, testRand())
	prompt := acc.NextPrompt()
	assert.Contains(t, prompts.ForCategory(emotions.CategoryAngry), prompt)
}

func TestAccumulatorFollowUpAfterFirstRound(t *testing.T) {
	acc := NewAccumulator(emotions.CategoryHappy, testRand())

	first := acc.NextPrompt()
	acc.Submit(first, "It was a quiet morning.")

	second := acc.NextPrompt()
	assert.Equal(t, prompts.FollowUp(1), second)

	acc.Submit(second, "I notice I need less than I thought.")
	assert.Equal(t, prompts.FollowUp(2), acc.NextPrompt())
}

func TestAccumulatorFollowUpTailRepeats(t *testing.T) {
	acc := NewAccumulator(emotions.CategoryCalm, testRand())
	for i := 0; i < prompts.FollowUpCount()+3; i++ {
		acc.Submit(acc.NextPrompt(), "response")
	}
	// Past the end of the follow-up list the final prompt repeats.
	assert.Equal(t, prompts.FollowUp(prompts.FollowUpCount()), acc.NextPrompt())
}

func TestAccumulatorUnknownCategoryUsesAnxiousList(t *testing.T) {
	acc := NewAccumulator(emotions.Category("bored"), testRand())
	assert.Contains(t, prompts.ForCategory(emotions.CategoryAnxious), acc.NextPrompt())
}

func TestFlattenRoundsFormat(t *testing.T) {
	rounds := []ReflectionRound{
		{Prompt: "What made this moment special for you?", Response: "The light through the trees."},
		{Prompt: "How has your perspective shifted since you first wrote about this?", Response: "I feel lighter."},
		{Prompt: "What new insights are emerging as you continue to reflect?", Response: "Walks reset me."},
	}

	got := FlattenRounds(rounds)
	want := "\n\nReflection:\nThe light through the trees." +
		"\n\nReflection: How has your perspective shifted since you first wrote about this?\nI feel lighter." +
		"\n\nReflection: What new insights are emerging as you continue to reflect?\nWalks reset me."
	assert.Equal(t, want, got)
}

func TestFlattenRoundsSingleRoundOmitsPrompt(t *testing.T) {
	got := FlattenRounds([]ReflectionRound{{Prompt: "ignored", Response: "Just the answer."}})
	assert.Equal(t, "\n\nReflection:\nJust the answer.", got)
}

func TestFlattenRoundsEmpty(t *testing.T) {
	assert.Equal(t, "", FlattenRounds(nil))
}

func TestFinalizeAppendsToBody(t *testing.T) {
	acc := NewAccumulator(emotions.CategorySad, testRand())
	acc.Submit("prompt", "A small comfort helped.")

	got := acc.Finalize("Today was hard.")
	assert.Equal(t, "Today was hard.\n\nReflection:\nA small comfort helped.", got)
}

func TestAccumulatorReflections(t *testing.T) {
	acc := NewAccumulator(emotions.CategoryHappy, testRand())
	acc.Submit("p1", "r1")
	acc.Submit("p2", "r2")

	now := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	refs := acc.Reflections(now)
	require.Len(t, refs, 2)
	assert.Equal(t, "p1", refs[0].Prompt)
	assert.Equal(t, "r2", refs[1].Response)
	assert.Equal(t, now, refs[0].Timestamp)
}

func TestRoundsReturnsCopy(t *testing.T) {
	acc := NewAccumulator(emotions.CategoryHappy, testRand())
	acc.Submit("p", "r")

	rounds := acc.Rounds()
	rounds[0].Response = "tampered"
	assert.Equal(t, "r", acc.Rounds()[0].Response)
}

func TestSelectPromptSources(t *testing.T) {
	prompt, source := SelectPrompt(emotions.CategoryHappy, "", 0, testRand())
	assert.Equal(t, PromptSourceCatalog, source)
	assert.Contains(t, prompts.ForCategory(emotions.CategoryHappy), prompt)

	prompt, source = SelectPrompt(emotions.CategoryHappy, "earlier reflection", 1, testRand())
	assert.Equal(t, PromptSourceFollowUp, source)
	assert.Equal(t, prompts.FollowUp(1), prompt)

	// A reflection count without previous text still counts as a first round.
	_, source = SelectPrompt(emotions.CategoryHappy, "", 3, testRand())
	assert.Equal(t, PromptSourceCatalog, source)
}
