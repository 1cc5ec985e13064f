package service

import (
	"context"
	"sync"
	"time"

	"moodtrack/internal/domain"
	"moodtrack/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User

	createErr error
	getErr    error
	missAll   bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]domain.User)}
}

func (f *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return 0, repository.ErrDuplicate
		}
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now().UTC()
	f.nextID++
	f.users[user.ID] = *user
	return user.ID, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.find(func(u domain.User) bool { return u.Email == email })
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return f.find(func(u domain.User) bool { return u.Username == username })
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return f.find(func(u domain.User) bool { return u.ID == id })
}

func (f *fakeUserRepo) find(match func(domain.User) bool) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.missAll {
		return nil, repository.ErrNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

// fakeMoodRepo is an in-memory MoodRepository. failAfter, when positive,
// makes every insert past that many succeed fail with failErr.
type fakeMoodRepo struct {
	mu      sync.Mutex
	nextID  int64
	entries []domain.MoodEntry

	failAfter int
	failErr   error
	listErr   error
}

func newFakeMoodRepo() *fakeMoodRepo {
	return &fakeMoodRepo{nextID: 1, failAfter: -1}
}

func (f *fakeMoodRepo) Init(ctx context.Context) error { return nil }

func (f *fakeMoodRepo) Create(ctx context.Context, entry *domain.MoodEntry) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAfter >= 0 && len(f.entries) >= f.failAfter {
		return 0, f.failErr
	}
	entry.ID = f.nextID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	f.nextID++
	f.entries = append(f.entries, *entry)
	return entry.ID, nil
}

func (f *fakeMoodRepo) ListByUser(ctx context.Context, userID int64) ([]domain.MoodEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.MoodEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}
