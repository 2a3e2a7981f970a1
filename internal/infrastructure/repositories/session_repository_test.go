package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSessionRepositoryImpl_Create(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess_1_100",
		UserID:    1,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if exists := client.Exists(ctx, "session:sess_1_100").Val(); exists != 1 {
		t.Error("expected session key in Redis")
	}
	if ttl := client.TTL(ctx, "session:sess_1_100").Val(); ttl <= 0 {
		t.Error("expected TTL on session key")
	}
}

func TestSessionRepositoryImpl_FindByID(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess_1_100",
		UserID:    1,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.FindByID(ctx, "sess_1_100")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.UserID != 1 {
		t.Errorf("expected user 1, got %d", got.UserID)
	}

	if _, err := repo.FindByID(ctx, "sess_ghost"); err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionRepositoryImpl_FindByID_Expired(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	// The record's own expiry is checked even while the Redis TTL is alive.
	session := &domain.Session{
		ID:        "sess_stale",
		UserID:    1,
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := repo.FindByID(ctx, "sess_stale"); err != domain.ErrSessionExpired {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
	if exists := client.Exists(ctx, "session:sess_stale").Val(); exists != 0 {
		t.Error("expired session should be evicted on read")
	}
}

func TestSessionRepositoryImpl_Delete(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess_1_100",
		UserID:    1,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Delete(ctx, "sess_1_100"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, "sess_1_100"); err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}
