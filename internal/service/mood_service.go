package service

import (
	"context"
	"fmt"
	"strings"

	"moodtrack/internal/domain"
	"moodtrack/internal/repository"
)

// MoodService coordinates mood ingestion and retrieval backed by repositories.
type MoodService interface {
	Submit(ctx context.Context, userID int64, tags []string, note string) error
	ListRaw(ctx context.Context, userID int64) ([]domain.MoodEntry, error)
	ListNormalized(ctx context.Context, userID int64) ([]domain.TaggedMood, error)
}

type moodService struct {
	moods repository.MoodRepository
}

func NewMoodService(moods repository.MoodRepository) MoodService {
	return &moodService{moods: moods}
}

// Submit inserts one MoodEntry per tag, all sharing the same note. The
// inserts are not transactional: a failure after k rows reports a
// PartialWriteError so the caller knows the history may be inconsistent.
func (s *moodService) Submit(ctx context.Context, userID int64, tags []string, note string) error {
	var clean []string
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			clean = append(clean, tag)
		}
	}
	if len(clean) == 0 {
		return fmt.Errorf("%w: at least one mood is required", ErrValidation)
	}

	for i, tag := range clean {
		entry := &domain.MoodEntry{
			UserID: userID,
			Mood:   tag,
			Note:   note,
		}
		if _, err := s.moods.Create(ctx, entry); err != nil {
			if i > 0 {
				return &PartialWriteError{Inserted: i, Total: len(clean), Err: err}
			}
			return fmt.Errorf("insert mood: %w", err)
		}
	}
	return nil
}

func (s *moodService) ListRaw(ctx context.Context, userID int64) ([]domain.MoodEntry, error) {
	return s.moods.ListByUser(ctx, userID)
}

// ListNormalized splits composite mood values into individual tags, each
// keeping the timestamp of its source row. Rows with an empty mood or a
// missing timestamp are skipped.
func (s *moodService) ListNormalized(ctx context.Context, userID int64) ([]domain.TaggedMood, error) {
	entries, err := s.moods.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var moods []domain.TaggedMood
	for _, entry := range entries {
		if entry.Mood == "" || entry.CreatedAt.IsZero() {
			continue
		}
		for _, tag := range domain.SplitMood(entry.Mood) {
			moods = append(moods, domain.TaggedMood{Tag: tag, CreatedAt: entry.CreatedAt})
		}
	}
	return moods, nil
}
