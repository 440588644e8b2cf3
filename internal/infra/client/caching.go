package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/boddenberg/taxcalc-bff-go/internal/infra/observability"
	"github.com/boddenberg/taxcalc-bff-go/internal/port"
)

// CachingTransport answers repeated identical calculations from a cache.
// The remote calculators are pure functions of their request, so a stored
// answer is as good as a fresh one for the cache TTL.
type CachingTransport struct {
	next    port.Transport
	cache   port.Cache[[]byte]
	metrics *observability.Metrics
}

// NewCachingTransport wraps next with cache.
func NewCachingTransport(next port.Transport, cache port.Cache[[]byte], metrics *observability.Metrics) *CachingTransport {
	return &CachingTransport{next: next, cache: cache, metrics: metrics}
}

func (t *CachingTransport) Call(ctx context.Context, endpoint string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", endpoint, err)
	}
	sum := sha256.Sum256(body)
	key := fmt.Sprintf("calc:%s:%s", endpoint, hex.EncodeToString(sum[:]))

	if cached, ok := t.cache.Get(key); ok {
		if err := json.Unmarshal(cached, out); err == nil {
			t.metrics.IncrCacheHit(endpoint)
			return nil
		}
		t.cache.Delete(key)
	}
	t.metrics.IncrCacheMiss(endpoint)

	var raw json.RawMessage
	if err := t.next.Call(ctx, endpoint, in, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	t.cache.Set(key, raw)
	return nil
}
