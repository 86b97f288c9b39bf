package session

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"frontdesk/internal/database"
	"frontdesk/internal/domain"
	"frontdesk/internal/models"

	"github.com/rs/zerolog"
)

// FailoverRepository serves sessions from the primary (redis) until it
// fails, then switches to the fallback (memory) and probes the primary
// every minute.
type FailoverRepository struct {
	primary   domain.SessionRepository
	fallback  domain.SessionRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverRepository(primary, fallback domain.SessionRepository, logger *zerolog.Logger) *FailoverRepository {
	return &FailoverRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("primary session repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck = time.Now()
}

func (r *FailoverRepository) SaveSession(ctx context.Context, session *models.Session, ttl time.Duration) error {
	if !r.isDown.Load() {
		err := r.primary.SaveSession(ctx, session, ttl)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.SaveSession(ctx, session, ttl)
}

func (r *FailoverRepository) GetSession(ctx context.Context, token string) (*models.Session, error) {
	if !r.isDown.Load() {
		session, err := r.primary.GetSession(ctx, token)
		if err == nil || errors.Is(err, database.ErrNotFound) {
			return session, err
		}
		r.markDown(err)
	}

	// probe the primary again after a minute
	if r.isDown.Load() && time.Since(r.lastCheck) > time.Minute {
		session, err := r.primary.GetSession(ctx, token)
		if err == nil || errors.Is(err, database.ErrNotFound) {
			r.isDown.Store(false)
			return session, err
		}
		r.lastCheck = time.Now()
	}

	return r.fallback.GetSession(ctx, token)
}

func (r *FailoverRepository) DeleteSession(ctx context.Context, token string) error {
	if !r.isDown.Load() {
		err := r.primary.DeleteSession(ctx, token)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.DeleteSession(ctx, token)
}

func (r *FailoverRepository) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		allowed, err := r.primary.CheckRateLimit(ctx, key, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.markDown(err)
	}
	return r.fallback.CheckRateLimit(ctx, key, limit, window)
}
