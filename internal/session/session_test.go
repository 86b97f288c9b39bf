package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"frontdesk/internal/database"
	"frontdesk/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRepository(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisRepository(client), mr
}

func testSession(token string) *models.Session {
	now := time.Now()
	return &models.Session{
		Token:     token,
		AdminID:   1,
		AdminName: "Иванов Алексей",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestRedisRepositoryRoundTrip(t *testing.T) {
	repo, _ := newRedisRepository(t)
	ctx := context.Background()

	session := testSession("tok-1")
	require.NoError(t, repo.SaveSession(ctx, session, time.Hour))

	got, err := repo.GetSession(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.AdminID)
	assert.Equal(t, "Иванов Алексей", got.AdminName)

	require.NoError(t, repo.DeleteSession(ctx, "tok-1"))
	_, err = repo.GetSession(ctx, "tok-1")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRedisRepositoryTTL(t *testing.T) {
	repo, mr := newRedisRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveSession(ctx, testSession("tok-2"), time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := repo.GetSession(ctx, "tok-2")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRedisRateLimit(t *testing.T) {
	repo, mr := newRedisRepository(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := repo.CheckRateLimit(ctx, "login:1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := repo.CheckRateLimit(ctx, "login:1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// the window resets the counter
	mr.FastForward(2 * time.Minute)
	allowed, err = repo.CheckRateLimit(ctx, "login:1", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveSession(ctx, testSession("tok-3"), time.Hour))

	got, err := repo.GetSession(ctx, "tok-3")
	require.NoError(t, err)
	assert.Equal(t, "tok-3", got.Token)

	_, err = repo.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, database.ErrNotFound)

	for i := 0; i < 2; i++ {
		allowed, err := repo.CheckRateLimit(ctx, "k", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, err := repo.CheckRateLimit(ctx, "k", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestFailoverFallsBackToMemory(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := zerolog.Nop()
	failover := NewFailoverRepository(NewRedisRepository(client), NewMemoryRepository(), &logger)
	ctx := context.Background()

	require.NoError(t, failover.SaveSession(ctx, testSession("tok-4"), time.Hour))

	// redis goes away; writes land in memory from now on
	mr.Close()

	require.NoError(t, failover.SaveSession(ctx, testSession("tok-5"), time.Hour))
	got, err := failover.GetSession(ctx, "tok-5")
	require.NoError(t, err)
	assert.Equal(t, "tok-5", got.Token)
}

func newLoginService(t *testing.T) *Service {
	t.Helper()
	logger := zerolog.Nop()
	store, err := database.Open(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewService(store, NewMemoryRepository(), time.Hour, 3, time.Minute, &logger)
}

func TestLoginLifecycle(t *testing.T) {
	svc := newLoginService(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, "1", "1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "Иванов Алексей", session.AdminName)

	current, err := svc.Current(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.AdminID, current.AdminID)

	require.NoError(t, svc.Logout(ctx, session.Token))
	_, err = svc.Current(ctx, session.Token)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newLoginService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "1", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRateLimited(t *testing.T) {
	svc := newLoginService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, "1", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// even the right password is refused once the window is exhausted
	_, err := svc.Login(ctx, "1", "1")
	assert.True(t, errors.Is(err, ErrTooManyAttempts))

	// a different login name is unaffected
	_, err = svc.Login(ctx, "2", "2")
	assert.NoError(t, err)
}
