package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"moodtrack/internal/domain"
	"moodtrack/internal/repository"
)

// SessionManager binds opaque session tokens to user identities. Tokens are
// signed JWTs whose jti must still be present in the active set, so ending a
// session revokes the token before its expiry.
type SessionManager interface {
	Start(user *domain.User) (string, error)
	Load(ctx context.Context, token string) (*domain.User, error)
	End(token string)
}

type sessionManager struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration

	mu     sync.Mutex
	active map[string]time.Time
}

func NewSessionManager(users repository.UserRepository, secret string, ttl time.Duration) SessionManager {
	return &sessionManager{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		active: make(map[string]time.Time),
	}
}

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

func (m *sessionManager) Start(user *domain.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: user.ID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	m.mu.Lock()
	// drop sessions whose tokens already expired; End never sees those
	for id, expires := range m.active {
		if expires.Before(now) {
			delete(m.active, id)
		}
	}
	m.active[claims.ID] = now.Add(m.ttl)
	m.mu.Unlock()

	return token, nil
}

// Load resolves a session token to its user. Every failure mode — malformed
// or expired token, ended session, missing user row — is reported as
// ErrUnauthenticated so the caller treats the session as invalid rather than
// proceeding with a null principal.
func (m *sessionManager) Load(ctx context.Context, token string) (*domain.User, error) {
	claims, err := m.parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	m.mu.Lock()
	_, ok := m.active[claims.ID]
	m.mu.Unlock()
	if !ok {
		return nil, ErrUnauthenticated
	}

	user, err := m.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("load session user: %w", err)
	}
	return user, nil
}

func (m *sessionManager) End(token string) {
	claims, err := m.parse(token)
	if err != nil {
		return
	}
	m.mu.Lock()
	delete(m.active, claims.ID)
	m.mu.Unlock()
}

func (m *sessionManager) parse(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}
