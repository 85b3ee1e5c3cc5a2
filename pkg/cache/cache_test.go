package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestNullCacheClear(t *testing.T) {
	c, ok := NewNullCache().(Clearer)
	if !ok {
		t.Fatal("NullCache should implement Clearer")
	}
	if err := c.Clear(context.Background()); err != nil {
		t.Errorf("Clear: %v", err)
	}
}

func TestDocumentHash(t *testing.T) {
	src := []byte(`{"width": 10, "height": 10, "elements": []}`)

	if DocumentHash("json", src) != DocumentHash("json", src) {
		t.Error("DocumentHash should be deterministic")
	}
	if DocumentHash("json", src) == DocumentHash("yaml", src) {
		t.Error("syntax should change the document hash")
	}
	if DocumentHash("json", src) == Hash(src) {
		t.Error("document hash should not equal the plain content hash")
	}
	if got := len(DocumentHash("toml", nil)); got != 64 {
		t.Errorf("hash length = %d, want 64", got)
	}
}

func TestHashKeyNamespace(t *testing.T) {
	k := hashKey("artifact", "doc", ArtifactKeyOpts{Format: "svg"})
	if len(k) != len("artifact:")+64 || k[:9] != "artifact:" {
		t.Errorf("hashKey = %q", k)
	}
	if k == hashKey("artifact", "doc", ArtifactKeyOpts{Format: "png"}) {
		t.Error("options should change the key")
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested", "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "svg"); err != nil || hit {
		t.Fatalf("Get on empty cache = %v, %v", hit, err)
	}
	if err := c.Set(ctx, "svg", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "svg")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "svg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "svg"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "svg"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("old")); !os.IsNotExist(err) {
		t.Error("expired entry not removed")
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl missing")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry = %v, %v; want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for i := range 5 {
		if err := c.Set(ctx, fmt.Sprint(i), []byte("x"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, err := os.ReadDir(c.Dir())
	if err != nil {
		t.Fatalf("cache dir gone after Clear: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("%d entries left after Clear", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png"})
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Bounds: true})
	ak4 := k.ArtifactKey("hash456", ArtifactKeyOpts{Format: "svg"})
	if ak1 == ak2 || ak1 == ak3 || ak1 == ak4 {
		t.Error("Different inputs should produce different keys")
	}
	if ak1 != k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"}) {
		t.Error("ArtifactKey should be deterministic")
	}
	if len(ak1) != len("artifact:")+64 || ak1[:9] != "artifact:" {
		t.Errorf("ArtifactKey unexpected: %s", ak1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "user:123:")

	opts := ArtifactKeyOpts{Format: "pdf"}
	if got, want := scoped.ArtifactKey("h", opts), "user:123:"+inner.ArtifactKey("h", opts); got != want {
		t.Errorf("ScopedKeyer ArtifactKey = %s, want %s", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("h", ArtifactKeyOpts{})
	if key != "prefix:"+NewDefaultKeyer().ArtifactKey("h", ArtifactKeyOpts{}) {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	if IsRetryable(errors.New("plain")) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = 200 * time.Millisecond })

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	permanent := errors.New("permanent")
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return permanent
	})
	if err != permanent {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, ErrNetwork) || calls != 3 {
		t.Errorf("Should give up after 3 attempts: %v after %d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestClassify(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	tests := []struct {
		name      string
		err       error
		retryable bool
		network   bool
	}{
		{"nil", nil, false, false},
		{"miss", redis.Nil, false, false},
		{"dial", opErr, true, true},
		{"server", errors.New("WRONGTYPE"), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if IsRetryable(got) != tt.retryable {
				t.Errorf("IsRetryable = %v, want %v", IsRetryable(got), tt.retryable)
			}
			if errors.Is(got, ErrNetwork) != tt.network {
				t.Errorf("errors.Is(ErrNetwork) = %v, want %v", errors.Is(got, ErrNetwork), tt.network)
			}
		})
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisConfig{URL: "http://nope"}); err == nil {
		t.Error("expected error for non-redis URL")
	}
}
