package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abhisek/medborger/internal/store"
)

// CacheKey is the kv key holding the explanation cache, a JSON object
// mapping question text to explanation.
const CacheKey = "aiExplanations"

// Cache persists successful explanations by question text. Failures are
// never cached.
type Cache struct {
	kv     store.KV
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]string
}

// NewCache creates a cache backed by kv.
func NewCache(kv store.KV, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{kv: kv, logger: logger}
}

// Get returns the cached explanation for question.
func (c *Cache) Get(ctx context.Context, question string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(ctx)
	text, ok := c.entries[question]
	return text, ok
}

// Put stores text for question and writes the whole cache back.
func (c *Cache) Put(ctx context.Context, question, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(ctx)
	c.entries[question] = text

	raw, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("encode explanation cache: %w", err)
	}
	return c.kv.Set(ctx, CacheKey, string(raw))
}

// Len returns the number of cached explanations.
func (c *Cache) Len(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(ctx)
	return len(c.entries)
}

// Clear drops every cached explanation.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]string{}
	return c.kv.Delete(ctx, CacheKey)
}

// load reads the persisted cache once. Unreadable data starts an empty cache.
func (c *Cache) load(ctx context.Context) {
	if c.entries != nil {
		return
	}
	c.entries = map[string]string{}

	raw, ok, err := c.kv.Get(ctx, CacheKey)
	if err != nil {
		c.logger.Warn("read explanation cache", "err", err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), &c.entries); err != nil {
		c.logger.Warn("explanation cache is corrupt, starting empty", "err", err)
		c.entries = map[string]string{}
	}
}
