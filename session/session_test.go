package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestAppSessionStore_Lifecycle(t *testing.T) {
	mr, rdb := newRedis(t)
	store := NewAppSessionStore(rdb, time.Hour)
	ctx := context.Background()

	if err := store.Create(ctx, "sid-1", 7); err != nil {
		t.Fatalf("create: %v", err)
	}
	as, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if as.UserID != 7 || as.ExpiresAt <= as.IssuedAt {
		t.Fatalf("unexpected session: %+v", as)
	}
	if ttl := mr.TTL("app:sess:sid-1"); ttl != time.Hour {
		t.Fatalf("expected 1h ttl, got %s", ttl)
	}

	if err := store.Delete(ctx, "sid-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "sid-1"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestAppSessionStore_Expires(t *testing.T) {
	mr, rdb := newRedis(t)
	store := NewAppSessionStore(rdb, time.Minute)
	ctx := context.Background()

	if err := store.Create(ctx, "sid-2", 1); err != nil {
		t.Fatalf("create: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := store.Get(ctx, "sid-2"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected expired session, got %v", err)
	}
}

func TestFlashStore_PopOnce(t *testing.T) {
	_, rdb := newRedis(t)
	store := NewFlashStore(rdb, time.Minute)
	ctx := context.Background()

	_ = store.Add(ctx, "f1", Flash{Category: FlashSuccess, Message: "Item added."})
	_ = store.Add(ctx, "f1", Flash{Category: FlashInfo, Message: "Loan already returned."})

	got, err := store.Pop(ctx, "f1")
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if len(got) != 2 || got[0].Message != "Item added." || got[1].Category != FlashInfo {
		t.Fatalf("unexpected flashes: %+v", got)
	}
	again, err := store.Pop(ctx, "f1")
	if err != nil {
		t.Fatalf("second pop: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("flashes must be consumed, got %+v", again)
	}
}

func TestFlashStore_Isolated(t *testing.T) {
	_, rdb := newRedis(t)
	store := NewFlashStore(rdb, time.Minute)
	ctx := context.Background()

	_ = store.Add(ctx, "a", Flash{Category: FlashDanger, Message: "Loan not found."})
	got, _ := store.Pop(ctx, "b")
	if len(got) != 0 {
		t.Fatalf("flashes leaked across ids: %+v", got)
	}
}
