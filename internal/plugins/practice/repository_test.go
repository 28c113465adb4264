package practice

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/hizuke/internal/quiz"
)

const testID = "5c1d0e0e-8d8b-4f5e-9a53-0f3b7b1c2d4e"

func sampleWorksheet(t *testing.T) *Worksheet {
	t.Helper()
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &Worksheet{
		ID:        testID,
		Session:   quiz.NewTest(newRand(1)),
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func assertSameWorksheet(t *testing.T, want, got *Worksheet) {
	t.Helper()
	if got == nil {
		t.Fatal("expected a worksheet, got nil")
	}
	if got.ID != want.ID || got.Session.Date != want.Session.Date ||
		got.Session.AnswersVisible != want.Session.AnswersVisible ||
		!slices.Equal(got.Session.Order, want.Session.Order) ||
		!slices.Equal(got.Session.Seeds, want.Session.Seeds) ||
		!got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("worksheet changed in the store:\n got  %+v\n want %+v", got, want)
	}
}

// --- Redis store ---

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisStore_PutGetDelete(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()
	ws := sampleWorksheet(t)

	if err := store.Put(ctx, ws); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ttl := mr.TTL(sessionKeyPrefix + testID); ttl != time.Hour {
		t.Errorf("expected 1h ttl, got %s", ttl)
	}

	got, err := store.Get(ctx, testID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	assertSameWorksheet(t, ws, got)

	if err := store.Delete(ctx, testID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, err := store.Get(ctx, testID); err != nil || got != nil {
		t.Errorf("expected nil, nil after delete, got %v, %v", got, err)
	}
}

func TestRedisStore_Expiry(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	if err := store.Put(ctx, sampleWorksheet(t)); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(2 * time.Minute)

	if got, err := store.Get(ctx, testID); err != nil || got != nil {
		t.Errorf("expected expired worksheet to be gone, got %v, %v", got, err)
	}
}

func TestRedisStore_CorruptValue(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	if err := mr.Set(sessionKeyPrefix+testID, "{not json"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(context.Background(), testID); err == nil {
		t.Error("expected an unmarshal error")
	}
}

func TestRedisStore_ServerDown(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	mr.Close()

	if _, err := store.Get(context.Background(), testID); err == nil {
		t.Error("expected get to fail")
	}
	if err := store.Put(context.Background(), sampleWorksheet(t)); err == nil {
		t.Error("expected put to fail")
	}
}

// --- Memory store ---

func TestMemoryStore_PutGetDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()
	ws := sampleWorksheet(t)

	if err := store.Put(ctx, ws); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(ctx, testID)
	if err != nil {
		t.Fatal(err)
	}
	assertSameWorksheet(t, ws, got)

	got.Session.Order[0], got.Session.Order[1] = got.Session.Order[1], got.Session.Order[0]
	again, _ := store.Get(ctx, testID)
	assertSameWorksheet(t, ws, again)

	if err := store.Delete(ctx, testID); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Get(ctx, testID); got != nil {
		t.Error("expected nil after delete")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newMemoryStore(time.Minute, func() time.Time { return now })
	ctx := context.Background()

	ws := sampleWorksheet(t)
	if err := store.Put(ctx, ws); err != nil {
		t.Fatal(err)
	}

	now = now.Add(59 * time.Second)
	if got, _ := store.Get(ctx, testID); got == nil {
		t.Fatal("expected worksheet before expiry")
	}

	now = now.Add(time.Second)
	if got, _ := store.Get(ctx, testID); got != nil {
		t.Error("expected worksheet to expire at the ttl")
	}
}

func TestMemoryStore_PutSweepsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newMemoryStore(time.Minute, func() time.Time { return now })
	ctx := context.Background()

	old := sampleWorksheet(t)
	if err := store.Put(ctx, old); err != nil {
		t.Fatal(err)
	}
	now = now.Add(2 * time.Minute)
	fresh := sampleWorksheet(t)
	fresh.ID = "0d5b7c39-31c8-4d0c-8f0a-2b3c4d5e6f70"
	if err := store.Put(ctx, fresh); err != nil {
		t.Fatal(err)
	}

	if len(store.entries) != 1 {
		t.Errorf("expected only the fresh entry, got %d", len(store.entries))
	}
}

func TestMemoryStore_SweepRunsOncePerTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newMemoryStore(time.Minute, func() time.Time { return now })
	ctx := context.Background()

	put := func(id string, at time.Duration) {
		t.Helper()
		now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC).Add(at)
		ws := sampleWorksheet(t)
		ws.ID = id
		if err := store.Put(ctx, ws); err != nil {
			t.Fatal(err)
		}
	}

	put("a", 0)               // sweeps, next sweep at 60s
	put("b", 50*time.Second)  // expires at 110s
	put("c", 61*time.Second)  // sweeps: a is gone, next sweep at 121s
	put("d", 115*time.Second) // b has expired but no sweep is due yet
	if len(store.entries) != 3 {
		t.Fatalf("expected b, c and d before the next sweep, got %d entries", len(store.entries))
	}

	put("e", 125*time.Second) // sweeps: b and c are gone
	if len(store.entries) != 2 {
		t.Errorf("expected d and e after the sweep, got %d entries", len(store.entries))
	}
	if _, ok := store.entries["b"]; ok {
		t.Error("expected b to be swept")
	}
}
