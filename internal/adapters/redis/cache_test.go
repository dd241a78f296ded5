package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "goodhouse/internal/adapters/redis"
	"goodhouse/internal/domain"
)

func TestCache_SetGetDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	defer c.Close()
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	var out []domain.Property
	if ok, err := c.Get(ctx, "listings:all", &out); ok || err != nil {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	in := []domain.Property{{ID: "1", Title: "Duplex", Price: 180_000_000, Features: []string{"BQ"}}}
	if err := c.Set(ctx, "listings:all", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("goodhouse:listings:all") {
		t.Fatal("key not namespaced")
	}
	if ttl := mr.TTL("goodhouse:listings:all"); ttl != 60*time.Second {
		t.Fatalf("ttl %v", ttl)
	}

	ok, err := c.Get(ctx, "listings:all", &out)
	if !ok || err != nil {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if len(out) != 1 || out[0].Title != "Duplex" || out[0].Features[0] != "BQ" {
		t.Fatalf("round trip: %+v", out)
	}

	if err := c.Del(ctx, "listings:all"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "listings:all", &out); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestCache_Expiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	_ = c.Set(ctx, "k", map[string]int{"a": 1}, 5)
	mr.FastForward(6 * time.Second)

	var out map[string]int
	if ok, _ := c.Get(ctx, "k", &out); ok {
		t.Fatal("expected expired key to miss")
	}
}

func TestCache_CorruptPayload(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	_ = mr.Set("goodhouse:k", "{broken")

	var out map[string]int
	ok, err := c.Get(context.Background(), "k", &out)
	if ok || err == nil {
		t.Fatalf("expected decode error, ok=%v err=%v", ok, err)
	}
}
