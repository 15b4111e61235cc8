package prompts

import (
	"math/rand"

	"github.com/feel-write/feelwrite-backend/internal/emotions"
)

// FallbackPrompt is used whenever prompt selection cannot produce anything better.
const FallbackPrompt = "How does this emotion make you feel?"

// categoryPrompts holds the reflection prompts shown for the first round,
// keyed by emotion category.
var categoryPrompts = map[emotions.Category][]string{
	emotions.CategoryHappy: {
		"What made this moment special for you?",
		"How can you create more moments like this in your life?",
		"Who would you like to share this happiness with?",
		"What does this happiness teach you about what truly matters to you?",
		"How can you hold onto this feeling when facing challenges?",
		"What small actions could help you experience this feeling more often?",
		"How does this positive emotion affect your perspective on other areas of life?",
		"What strengths or qualities in yourself does this emotion highlight?",
		"If you could bottle this feeling, when would you choose to open it?",
		"What gratitude arises when you sit with this emotion?",
	},
	emotions.CategorySad: {
		"What would you say to a friend feeling this way?",
		"Is there a small comfort you could give yourself right now?",
		"What's one tiny step that might help you feel better?",
		"How have you moved through similar feelings in the past?",
		"What would feel like a gentle step forward from here?",
		"What does this sadness need most from you right now?",
		"Is there wisdom or insight hidden within this difficult feeling?",
		"How might this emotion be trying to guide or protect you?",
		"What boundaries might need to be set or respected?",
		"What would self-compassion look like in this moment?",
	},
	emotions.CategoryAngry: {
		"What's beneath this anger? Is there another emotion hiding there?",
		"What would help you release some of this tension?",
		"Is there a boundary you need to set with someone?",
		"What would resolution or peace look like in this situation?",
		"What wisdom might your anger be trying to share with you?",
		"How can you honor this feeling without being controlled by it?",
		"What needs of yours aren't being met in this situation?",
		"How might you channel this energy constructively?",
		"What would help you feel heard or understood?",
		"If your anger could speak, what would it say it needs?",
	},
	emotions.CategoryAnxious: {
		"What's one thing you can control in this situation?",
		"What would help you feel more grounded right now?",
		"What's the kindest thing you could do for yourself today?",
		"What's a more balanced perspective you could consider?",
		"What self-care practice might help ease this anxiety?",
		"What's the worst that could happen, and how would you cope?",
		"What small step would help you feel more secure?",
		"How can you bring more certainty to this uncertain situation?",
		"What has helped you manage similar feelings in the past?",
		"How might you create a moment of safety for yourself right now?",
	},
	emotions.CategoryCalm: {
		"How can you bring more of this peaceful feeling into your daily life?",
		"What conditions helped create this sense of calm?",
		"What insights come to you when you're in this centered state?",
		"How does this calmness affect how you see your challenges?",
		"What would you like to remember about this feeling?",
		"What practices help you maintain this sense of balance?",
		"How does your body feel different when you're in this state?",
		"What clarity or wisdom emerges from this place of stillness?",
		"How might you anchor yourself to return to this feeling later?",
		"What does this calm state reveal about what truly matters to you?",
	},
}

// followUpPrompts are used after the first reflection round, regardless of category.
var followUpPrompts = []string{
	"How has your perspective shifted since you first wrote about this?",
	"What new insights are emerging as you continue to reflect?",
	"What patterns do you notice in how you've been thinking about this situation?",
	"What would your future self want you to remember about this experience?",
	"How does this connect to other important aspects of your life?",
	"What's something you're learning about yourself through this reflection?",
	"How might this understanding help you in similar situations in the future?",
	"What feels most important about what you've discovered so far?",
}

// ForCategory returns the first-round prompts for a category.
// Unknown categories fall back to the anxious list.
func ForCategory(c emotions.Category) []string {
	list, ok := categoryPrompts[c]
	if !ok {
		list = categoryPrompts[emotions.CategoryAnxious]
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Random picks a uniform-random first-round prompt for the category.
// The rand source is injected so callers can seed it for deterministic tests.
func Random(c emotions.Category, rng *rand.Rand) string {
	list := ForCategory(c)
	if len(list) == 0 {
		return FallbackPrompt
	}
	return list[rng.Intn(len(list))]
}

// FollowUp returns the follow-up prompt for the given reflection count
// (the number of rounds already submitted, so count >= 1). Once the index
// would run past the end of the list the final prompt repeats indefinitely.
func FollowUp(reflectionCount int) string {
	if reflectionCount < 1 {
		reflectionCount = 1
	}
	idx := reflectionCount - 1
	if idx > len(followUpPrompts)-1 {
		idx = len(followUpPrompts) - 1
	}
	return followUpPrompts[idx]
}

// FollowUpCount returns how many distinct follow-up prompts exist.
func FollowUpCount() int {
	return len(followUpPrompts)
}
