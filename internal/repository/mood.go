package repository

import (
	"context"

	"moodtrack/internal/domain"
)

// MoodRepository defines persistence operations for MoodEntry rows.
type MoodRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, entry *domain.MoodEntry) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.MoodEntry, error)
}
