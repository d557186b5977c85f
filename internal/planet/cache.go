package planet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"planetgen/internal/texture"

	"github.com/redis/go-redis/v9"
)

// TextureCache stores synthesized textures. Generation is a pure function
// of the key, so a cache may drop entries at any time.
type TextureCache interface {
	Get(ctx context.Context, key string) (*texture.Buffer, bool, error)
	Set(ctx context.Context, key string, buf *texture.Buffer) error
}

// CacheKey identifies one texture variant. The version segment changes
// whenever synthesis output changes.
func CacheKey(seed int32, surface SurfaceType, size int) string {
	return fmt.Sprintf("texture:v2:%s:%d:%d", surface, size, seed)
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	logger.Debug("Initializing redis texture cache", "ttl", ttl)

	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*texture.Buffer, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read texture cache: %w", err)
	}

	var buf texture.Buffer
	if err := buf.UnmarshalBinary(data); err != nil {
		c.logger.Warn("Discarding corrupt cached texture", "key", key, "error", err)
		return nil, false, nil
	}
	return &buf, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, buf *texture.Buffer) error {
	data, err := buf.MarshalBinary()
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write texture cache: %w", err)
	}

	c.logger.Debug("Texture cached", "key", key, "encoded_bytes", len(data), "raw_bytes", len(buf.Pix))
	return nil
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// ErrEntryTooLarge reports a texture whose encoded form alone exceeds the
// memory cache byte budget.
var ErrEntryTooLarge = errors.New("planet: texture exceeds memory cache budget")

// MemoryCache is the in-process fallback used when Redis is disabled.
// Entries are stored encoded, so cached pixels are never shared with callers.
// The cache is bounded both by entry count and by total encoded bytes.
type MemoryCache struct {
	entries    map[string]memoryEntry
	maxEntries int
	maxBytes   int64
	used       int64
	ttl        time.Duration
	mu         sync.Mutex
}

func NewMemoryCache(maxEntries int, maxBytes int64, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		maxBytes:   maxBytes,
		ttl:        ttl,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*texture.Buffer, bool, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && time.Now().After(entry.expiresAt) {
		c.removeLocked(key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return nil, false, nil
	}

	var buf texture.Buffer
	if err := buf.UnmarshalBinary(entry.data); err != nil {
		return nil, false, err
	}
	return &buf, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, buf *texture.Buffer) error {
	data, err := buf.MarshalBinary()
	if err != nil {
		return err
	}
	size := int64(len(data))
	if size > c.maxBytes {
		return fmt.Errorf("%w: %d bytes, budget %d", ErrEntryTooLarge, size, c.maxBytes)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(key)
	for len(c.entries) > 0 && (len(c.entries) >= c.maxEntries || c.used+size > c.maxBytes) {
		c.evictLocked()
	}
	c.entries[key] = memoryEntry{data: data, expiresAt: time.Now().Add(c.ttl)}
	c.used += size
	return nil
}

func (c *MemoryCache) removeLocked(key string) {
	if entry, ok := c.entries[key]; ok {
		c.used -= int64(len(entry.data))
		delete(c.entries, key)
	}
}

// evictLocked drops expired entries, or one arbitrary entry if none expired.
func (c *MemoryCache) evictLocked() {
	now := time.Now()
	evicted := false
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			c.removeLocked(key)
			evicted = true
		}
	}
	if evicted {
		return
	}
	for key := range c.entries {
		c.removeLocked(key)
		return
	}
}

func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Bytes reports the encoded size of all resident entries.
func (c *MemoryCache) Bytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}
