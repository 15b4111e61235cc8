package emotions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 5)
	assert.Equal(t, []Category{CategoryHappy, CategorySad, CategoryAngry, CategoryAnxious, CategoryCalm}, cats)
}

func TestSubEmotionsTenPerCategory(t *testing.T) {
	for _, c := range Categories() {
		labels := SubEmotions(c)
		assert.Len(t, labels, 10, "category %s", c)
		seen := map[string]bool{}
		for _, l := range labels {
			assert.NotEmpty(t, l)
			assert.False(t, seen[l], "duplicate label %q in %s", l, c)
			seen[l] = true
		}
	}
}

func TestSubEmotionsUnknownCategory(t *testing.T) {
	assert.Nil(t, SubEmotions(Category("bored")))
	assert.Nil(t, SubEmotions(Category("")))
}

func TestSubEmotionsReturnsCopy(t *testing.T) {
	labels := SubEmotions(CategoryHappy)
	labels[0] = "Tampered"
	assert.Equal(t, "Joyful", SubEmotions(CategoryHappy)[0])
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, IsValidCategory(string(c)))
	}
	assert.False(t, IsValidCategory("Happy")) // case-sensitive
	assert.False(t, IsValidCategory("excited"))
	assert.False(t, IsValidCategory(""))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(CategoryHappy, "Grateful"))
	assert.True(t, Valid(CategoryAnxious, "Overwhelmed"))

	// Sub-emotion from a different category does not validate.
	assert.False(t, Valid(CategoryHappy, "Worried"))
	assert.False(t, Valid(CategorySad, "grateful"))
	assert.False(t, Valid(Category("bored"), "Joyful"))
}

func TestValidPeacefulBelongsToTwoCategories(t *testing.T) {
	// "Peaceful" appears under both happy and calm; membership is per category.
	assert.True(t, Valid(CategoryHappy, "Peaceful"))
	assert.True(t, Valid(CategoryCalm, "Peaceful"))
	assert.False(t, Valid(CategorySad, "Peaceful"))
}
