package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestCacheImplementations(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		cache  Cache
		stores bool
	}{
		{"memory", NewMemoryCache(4), true},
		{"null", NullCache{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.cache.Close()

			if err := tt.cache.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
				t.Fatalf("Set error: %v", err)
			}
			data, hit, err := tt.cache.Get(ctx, "k")
			if err != nil {
				t.Fatalf("Get error: %v", err)
			}
			if hit != tt.stores {
				t.Errorf("hit = %v, want %v", hit, tt.stores)
			}
			if tt.stores && string(data) != "v" {
				t.Errorf("data = %q, want v", data)
			}
			if err := tt.cache.Delete(ctx, "k"); err != nil {
				t.Errorf("Delete error: %v", err)
			}
			if _, hit, _ := tt.cache.Get(ctx, "k"); hit {
				t.Error("deleted key should miss")
			}
		})
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("hello"))
	if len(h) != 64 {
		t.Errorf("len(Hash) = %d, want 64", len(h))
	}
	if h != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h == Hash([]byte("world")) {
		t.Error("different inputs should hash differently")
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		a, b []any
		same bool
	}{
		{"identical parts", []any{"svg", 1, 2}, []any{"svg", 1, 2}, true},
		{"different order", []any{1, 2}, []any{2, 1}, false},
		{"different types", []any{"1"}, []any{1}, false},
		{"struct parts", []any{struct{ W int }{800}}, []any{struct{ W int }{800}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k1, k2 := Key("artifact", tt.a...), Key("artifact", tt.b...)
			if (k1 == k2) != tt.same {
				t.Errorf("Key(%v) == Key(%v) is %v, want %v", tt.a, tt.b, k1 == k2, tt.same)
			}
			if !strings.HasPrefix(k1, "artifact:") {
				t.Errorf("Key() = %q, want artifact: prefix", k1)
			}
		})
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Fatal("empty cache should miss")
	}

	if err := c.Set(ctx, "a", []byte("1"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "1" {
		t.Fatalf("Get(a) = %q, %v, %v; want 1, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("deleted key should miss")
	}
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache(10)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "short", []byte("x"), time.Minute)
	_ = c.Set(ctx, "forever", []byte("y"), 0)

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should not expire")
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache(2)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "first", []byte("1"), time.Minute)
	now = now.Add(time.Second)
	_ = c.Set(ctx, "second", []byte("2"), time.Minute)
	now = now.Add(time.Second)
	_ = c.Set(ctx, "third", []byte("3"), time.Minute)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "first"); hit {
		t.Error("entry closest to expiry should be evicted")
	}
	for _, k := range []string{"second", "third"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("%s should still be cached", k)
		}
	}

	// Overwriting an existing key never evicts.
	_ = c.Set(ctx, "third", []byte("3b"), time.Minute)
	if c.Len() != 2 {
		t.Errorf("Len() after overwrite = %d, want 2", c.Len())
	}
}

func TestNewMemoryCacheDefaultSize(t *testing.T) {
	if c := NewMemoryCache(0); c.maxEntries != DefaultMaxEntries {
		t.Errorf("maxEntries = %d, want %d", c.maxEntries, DefaultMaxEntries)
	}
}
