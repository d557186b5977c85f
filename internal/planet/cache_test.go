package planet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"planetgen/internal/texture"
)

func TestCacheKey(t *testing.T) {
	if got := CacheKey(-5, SurfaceIcy, 64); got != "texture:v2:icy:64:-5" {
		t.Errorf("CacheKey() = %q", got)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(2, 1<<20, time.Minute)
	planet, err := GenerateWith(3, Options{Size: 8})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := cache.Get(ctx, "missing"); ok {
		t.Error("Get() hit on empty cache")
	}

	if err := cache.Set(ctx, "a", planet.Texture); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	got, ok, err := cache.Get(ctx, "a")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if !bytes.Equal(got.Pix, planet.Texture.Pix) {
		t.Error("cached pixels differ")
	}

	got.Pix[0] ^= 0xff
	again, _, _ := cache.Get(ctx, "a")
	if again.Pix[0] != planet.Texture.Pix[0] {
		t.Error("mutating a returned buffer changed the cached entry")
	}
}

func TestMemoryCache_Bounded(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(2, 1<<20, time.Minute)
	buf, _ := texture.NewBuffer(2, 2)

	for _, key := range []string{"a", "b", "c", "d"} {
		if err := cache.Set(ctx, key, buf); err != nil {
			t.Fatal(err)
		}
	}
	if cache.Len() > 2 {
		t.Errorf("Len() = %d, want at most 2", cache.Len())
	}
	if _, ok, _ := cache.Get(ctx, "d"); !ok {
		t.Error("most recent entry should be present")
	}
}

func TestMemoryCache_ByteBudget(t *testing.T) {
	ctx := context.Background()
	p, err := GenerateWith(2, Options{Size: 32})
	if err != nil {
		t.Fatal(err)
	}
	data, err := p.Texture.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	entry := int64(len(data))
	budget := entry*2 + entry/2

	cache := NewMemoryCache(100, budget, time.Minute)
	for i := range 6 {
		if err := cache.Set(ctx, fmt.Sprintf("k%d", i), p.Texture); err != nil {
			t.Fatalf("Set(k%d) unexpected error: %v", i, err)
		}
		if cache.Bytes() > budget {
			t.Fatalf("after %d sets Bytes() = %d, budget %d", i+1, cache.Bytes(), budget)
		}
	}
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cache.Len())
	}
	if _, ok, _ := cache.Get(ctx, "k5"); !ok {
		t.Error("most recent entry should be present")
	}

	// Overwriting a key must not count its bytes twice.
	if err := cache.Set(ctx, "k5", p.Texture); err != nil {
		t.Fatal(err)
	}
	if got := cache.Bytes(); got != 2*entry {
		t.Errorf("Bytes() after overwrite = %d, want %d", got, 2*entry)
	}
}

func TestMemoryCache_RejectsOversizedEntry(t *testing.T) {
	ctx := context.Background()
	p, err := GenerateWith(2, Options{Size: 32})
	if err != nil {
		t.Fatal(err)
	}
	data, _ := p.Texture.MarshalBinary()

	cache := NewMemoryCache(4, int64(len(data))-1, time.Minute)
	small, _ := texture.NewBuffer(1, 1)
	if err := cache.Set(ctx, "small", small); err != nil {
		t.Fatal(err)
	}

	err = cache.Set(ctx, "big", p.Texture)
	if !errors.Is(err, ErrEntryTooLarge) {
		t.Fatalf("Set() error = %v, want ErrEntryTooLarge", err)
	}
	if _, ok, _ := cache.Get(ctx, "small"); !ok {
		t.Error("rejected entry evicted a resident one")
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(4, 1<<20, -time.Second)
	buf, _ := texture.NewBuffer(1, 1)

	if err := cache.Set(ctx, "a", buf); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(ctx, "a"); ok {
		t.Error("expired entry returned")
	}
	if cache.Len() != 0 {
		t.Errorf("Len() = %d after expiry, want 0", cache.Len())
	}
}
