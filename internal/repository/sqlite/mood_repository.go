package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"moodtrack/internal/domain"
	"moodtrack/internal/repository"
)

const createMoodsTable = `
CREATE TABLE IF NOT EXISTS moods (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	mood TEXT NOT NULL,
	note TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_moods_user_id ON moods(user_id);
`

type MoodRepository struct {
	db *sql.DB
}

func NewMoodRepository(db *sql.DB) repository.MoodRepository {
	return &MoodRepository{db: db}
}

func (r *MoodRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createMoodsTable); err != nil {
		return fmt.Errorf("create moods table: %w", err)
	}
	return nil
}

func (r *MoodRepository) Create(ctx context.Context, entry *domain.MoodEntry) (int64, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO moods (user_id, mood, note, created_at)
VALUES (?, ?, ?, ?)`,
		entry.UserID,
		entry.Mood,
		entry.Note,
		entry.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert mood: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("mood last insert id: %w", err)
	}
	entry.ID = id
	return id, nil
}

func (r *MoodRepository) ListByUser(ctx context.Context, userID int64) ([]domain.MoodEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, mood, note, created_at
FROM moods
WHERE user_id = ?
ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	defer rows.Close()

	var entries []domain.MoodEntry
	for rows.Next() {
		var entry domain.MoodEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Mood,
			&entry.Note,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan mood: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate moods: %w", err)
	}
	return entries, nil
}
