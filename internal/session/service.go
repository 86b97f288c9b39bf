package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"frontdesk/internal/database"
	"frontdesk/internal/domain"
	"frontdesk/internal/metrics"
	"frontdesk/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")
	ErrSessionExpired     = errors.New("session expired")
)

// Service is the login gate. A successful login yields a Session the
// presentation shell passes to every entity manager; there is no global
// current-admin state.
type Service struct {
	admins      domain.AdminStore
	sessions    domain.SessionRepository
	ttl         time.Duration
	maxAttempts int
	loginWindow time.Duration
	logger      zerolog.Logger
}

func NewService(
	admins domain.AdminStore,
	sessions domain.SessionRepository,
	ttl time.Duration,
	maxAttempts int,
	loginWindow time.Duration,
	logger *zerolog.Logger,
) *Service {
	return &Service{
		admins:      admins,
		sessions:    sessions,
		ttl:         ttl,
		maxAttempts: maxAttempts,
		loginWindow: loginWindow,
		logger:      logger.With().Str("component", "session").Logger(),
	}
}

// Login verifies the credentials and opens a session. Attempts are
// rate-limited per login name; the counter also ticks on failures, so
// password guessing runs out of tries.
func (s *Service) Login(ctx context.Context, login, password string) (*models.Session, error) {
	allowed, err := s.sessions.CheckRateLimit(ctx, "login:"+login, s.maxAttempts, s.loginWindow)
	if err != nil {
		return nil, fmt.Errorf("rate limit check: %w", err)
	}
	if !allowed {
		metrics.IncLogin("rate_limited")
		s.logger.Warn().Str("login", login).Msg("login rate limit exceeded")
		return nil, ErrTooManyAttempts
	}

	admin, err := s.admins.GetAdminByLogin(ctx, login)
	if errors.Is(err, database.ErrNotFound) {
		metrics.IncLogin("failure")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		metrics.IncLogin("failure")
		s.logger.Warn().Str("login", login).Msg("wrong password")
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	session := &models.Session{
		Token:     uuid.NewString(),
		AdminID:   admin.ID,
		AdminName: fmt.Sprintf("%s %s", admin.LastName, admin.FirstName),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessions.SaveSession(ctx, session, s.ttl); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	metrics.IncLogin("success")
	s.logger.Info().Int64("admin_id", admin.ID).Msg("admin logged in")
	return session, nil
}

// Current resolves a token to its live session.
func (s *Service) Current(ctx context.Context, token string) (*models.Session, error) {
	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now()) {
		_ = s.sessions.DeleteSession(ctx, token)
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Logout closes the session.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.DeleteSession(ctx, token); err != nil {
		return err
	}
	s.logger.Info().Msg("admin logged out")
	return nil
}
