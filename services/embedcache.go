package services

import (
	"context"
	"sync"
)

// embedCache memoizes one embedding per submission for the lifetime of a
// single duplicate-check invocation, so the all-pairs scan does not re-embed
// the same text for every pair it appears in.
type embedCache struct {
	embedder Embedder
	mu       sync.RWMutex
	vectors  map[string][]float32
}

func newEmbedCache(embedder Embedder) *embedCache {
	return &embedCache{
		embedder: embedder,
		vectors:  make(map[string][]float32),
	}
}

// embed returns the cached vector for key, computing it from text on a miss.
func (c *embedCache) embed(ctx context.Context, key, text string) ([]float32, error) {
	c.mu.RLock()
	vec, ok := c.vectors[key]
	c.mu.RUnlock()
	if ok {
		return vec, nil
	}

	vec, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.vectors[key] = vec
	c.mu.Unlock()
	return vec, nil
}
