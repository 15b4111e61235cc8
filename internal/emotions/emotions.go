package emotions

// Category is one of the five fixed emotion categories a journal entry is filed under.
type Category string

const (
	CategoryHappy   Category = "happy"
	CategorySad     Category = "sad"
	CategoryAngry   Category = "angry"
	CategoryAnxious Category = "anxious"
	CategoryCalm    Category = "calm"
)

// Categories returns all emotion categories in display order.
func Categories() []Category {
	return []Category{CategoryHappy, CategorySad, CategoryAngry, CategoryAnxious, CategoryCalm}
}

// subEmotions maps each category to its fixed set of ten sub-emotion labels.
var subEmotions = map[Category][]string{
	CategoryHappy: {
		"Joyful", "Grateful", "Excited", "Content", "Proud",
		"Peaceful", "Hopeful", "Inspired", "Loved", "Cheerful",
	},
	CategorySad: {
		"Lonely", "Disappointed", "Hurt", "Grief", "Regretful",
		"Hopeless", "Melancholic", "Empty", "Heartbroken", "Vulnerable",
	},
	CategoryAngry: {
		"Frustrated", "Irritated", "Resentful", "Jealous", "Betrayed",
		"Furious", "Bitter", "Disgusted", "Outraged", "Hostile",
	},
	CategoryAnxious: {
		"Nervous", "Worried", "Stressed", "Insecure", "Fearful",
		"Panicked", "Uneasy", "Restless", "Doubtful", "Overwhelmed",
	},
	CategoryCalm: {
		"Relaxed", "Mindful", "Centered", "Balanced", "Serene",
		"Tranquil", "Peaceful", "Grounded", "Harmonious", "Soothed",
	},
}

// IsValidCategory reports whether s is one of the five categories.
func IsValidCategory(s string) bool {
	_, ok := subEmotions[Category(s)]
	return ok
}

// SubEmotions returns the fixed sub-emotion labels for a category.
// Unknown categories return nil.
func SubEmotions(c Category) []string {
	labels, ok := subEmotions[c]
	if !ok {
		return nil
	}
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// Valid reports whether sub belongs to category c's fixed label set.
func Valid(c Category, sub string) bool {
	for _, label := range subEmotions[c] {
		if label == sub {
			return true
		}
	}
	return false
}
