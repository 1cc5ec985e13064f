package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		tag  string
		want Category
	}{
		{"Happy", CategoryPositive},
		{"Loving", CategoryPositive},
		{"Sad", CategoryNegative},
		{"Ashamed", CategoryNegative},
		{"Tired", CategoryNeutral},
		{"Focused", CategoryHighEnergy},
		{"Burned Out", CategoryLowEnergy},
		{"Bogus", CategoryUncategorized},
		{"happy", CategoryUncategorized}, // exact match only
		{"", CategoryUncategorized},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.tag), "tag %q", tt.tag)
	}
}

func TestVocabularyCoversAllCategories(t *testing.T) {
	for _, category := range Categories {
		words := Vocabulary(category)
		assert.Len(t, words, 9, "category %s", category)
		for _, word := range words {
			assert.Equal(t, category, Categorize(word))
		}
	}
}

func TestSplitMood(t *testing.T) {
	assert.Equal(t, []string{"Happy", "Sad"}, SplitMood("Happy, Sad"))
	assert.Equal(t, []string{"Happy"}, SplitMood("  Happy  "))
	assert.Equal(t, []string{"Happy", "Sad"}, SplitMood("Happy,,  Sad ,"))
	assert.Nil(t, SplitMood(""))
	assert.Nil(t, SplitMood(" , ,"))
}
