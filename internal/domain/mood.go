package domain

import (
	"strings"
	"time"
)

// MoodEntry represents a single persisted mood observation. The Mood field
// normally holds one tag, but older rows may encode several tags joined by
// ", " and are split on read.
type MoodEntry struct {
	ID        int64
	UserID    int64
	Mood      string
	Note      string
	CreatedAt time.Time
}

// TaggedMood is one normalized tag derived from a MoodEntry, carrying the
// timestamp of the row it came from.
type TaggedMood struct {
	Tag       string
	CreatedAt time.Time
}

type Category string

const (
	CategoryPositive      Category = "positive"
	CategoryNegative      Category = "negative"
	CategoryNeutral       Category = "neutral"
	CategoryHighEnergy    Category = "high-energy"
	CategoryLowEnergy     Category = "low-energy"
	CategoryUncategorized Category = "uncategorized"
)

// Categories lists the taxonomy in presentation order. Uncategorized is a
// fallback, not part of the offered vocabulary.
var Categories = []Category{
	CategoryPositive,
	CategoryNegative,
	CategoryNeutral,
	CategoryHighEnergy,
	CategoryLowEnergy,
}

var moodVocabulary = map[Category][]string{
	CategoryPositive:   {"Happy", "Joyful", "Grateful", "Excited", "Peaceful", "Relaxed", "Optimistic", "Satisfied", "Loving"},
	CategoryNegative:   {"Sad", "Angry", "Anxious", "Frustrated", "Overwhelmed", "Hopeless", "Tense", "Jealous", "Ashamed"},
	CategoryNeutral:    {"Calm", "Content", "Indifferent", "Tired", "Uninterested", "Neutral", "Curious", "Mellow", "Accepting"},
	CategoryHighEnergy: {"Energetic", "Productive", "Motivated", "Inspired", "Focused", "Determined", "Adventurous", "Cheerful", "Playful"},
	CategoryLowEnergy:  {"Drained", "Defeated", "Exhausted", "Lonely", "Melancholic", "Isolated", "Sleepy", "Burned Out", "Withdrawn"},
}

var moodCategories = func() map[string]Category {
	m := make(map[string]Category)
	for category, words := range moodVocabulary {
		for _, word := range words {
			m[word] = category
		}
	}
	return m
}()

// Vocabulary returns the fixed word list for a category. The returned slice
// must not be mutated.
func Vocabulary(category Category) []string {
	return moodVocabulary[category]
}

// Categorize maps a mood tag to its taxonomy category. Tags outside the
// fixed vocabulary resolve to CategoryUncategorized; free-text tags are
// allowed at ingestion, so this never fails.
func Categorize(tag string) Category {
	if category, ok := moodCategories[tag]; ok {
		return category
	}
	return CategoryUncategorized
}

// SplitMood breaks a stored mood value into individual trimmed tags,
// dropping empty pieces.
func SplitMood(mood string) []string {
	var tags []string
	for _, piece := range strings.Split(mood, ",") {
		if tag := strings.TrimSpace(piece); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
