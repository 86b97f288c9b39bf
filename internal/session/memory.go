package session

import (
	"context"
	"sync"
	"time"

	"frontdesk/internal/database"
	"frontdesk/internal/models"
)

type MemoryRepository struct {
	sessions   sync.Map
	rateLimits sync.Map
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

type sessionEntry struct {
	session   *models.Session
	expiresAt time.Time
}

func (r *MemoryRepository) SaveSession(ctx context.Context, session *models.Session, ttl time.Duration) error {
	r.sessions.Store(session.Token, &sessionEntry{
		session:   session,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

func (r *MemoryRepository) GetSession(ctx context.Context, token string) (*models.Session, error) {
	val, ok := r.sessions.Load(token)
	if !ok {
		return nil, database.ErrNotFound
	}
	entry := val.(*sessionEntry)
	if time.Now().After(entry.expiresAt) {
		r.sessions.Delete(token)
		return nil, database.ErrNotFound
	}
	return entry.session, nil
}

func (r *MemoryRepository) DeleteSession(ctx context.Context, token string) error {
	r.sessions.Delete(token)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemoryRepository) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, ok := r.rateLimits.Load(key)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}

	r.rateLimits.Store(key, entry)
	return entry.count <= limit, nil
}
