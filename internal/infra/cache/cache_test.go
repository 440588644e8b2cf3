package cache_test

import (
	"testing"
	"time"

	"github.com/boddenberg/taxcalc-bff-go/internal/infra/cache"

	"go.uber.org/zap"
)

func TestInMemory_SetGetDelete(t *testing.T) {
	c := cache.New[[]byte](time.Minute)
	defer c.Close()

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Set("k", []byte(`{"합계":1}`))
	v, ok := c.Get("k")
	if !ok || string(v) != `{"합계":1}` {
		t.Fatalf("expected hit, got %q %v", v, ok)
	}
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after delete")
	}
}

func TestInMemory_Expires(t *testing.T) {
	c := cache.New[string](20 * time.Millisecond)
	defer c.Close()

	c.Set("k", "v")
	time.Sleep(40 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expected entry to expire")
	}
}

func TestRedis_UnreachableServerIsAMiss(t *testing.T) {
	// Nothing listens on port 1; every operation must degrade to a miss.
	r := cache.NewRedis("127.0.0.1:1", "", 0, time.Minute, zap.NewNop())
	defer r.Close()

	r.Set("k", []byte("v"))
	if _, ok := r.Get("k"); ok {
		t.Error("expected miss from an unreachable server")
	}
	r.Delete("k")
}
