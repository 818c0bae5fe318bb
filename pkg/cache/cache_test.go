package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
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
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "svg", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "svg")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get(svg) = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "svg"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "svg"); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := c.Delete(ctx, "svg"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
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
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should hit")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	fc := &FileCache{dir: t.TempDir()}
	if err := fc.Set(ctx, "k", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fc.path("k"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := fc.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v, want miss", hit, err)
	}
}

func TestFileCacheKeyMismatch(t *testing.T) {
	ctx := context.Background()
	fc := &FileCache{dir: t.TempDir()}
	if err := fc.Set(ctx, "a", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	// An entry written for another key at the same path is a miss.
	raw, err := os.ReadFile(fc.path("a"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(fc.path("b")), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fc.path("b"), raw, 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := fc.Get(ctx, "b"); hit {
		t.Error("entry stored under another key should miss")
	}
}

func TestFileCacheNamespaces(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fc, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	k := NewScopedKeyer(nil, "giv:")
	keys := map[Namespace]string{
		NamespaceScene:    k.SceneKey("doc", SceneKeyOpts{Scale: 1}),
		NamespaceArtifact: k.ArtifactKey("doc", ArtifactKeyOpts{Format: "svg"}),
		NamespaceImport:   k.ImportKey("ucsc", "hg38:chr1"),
	}
	for ns, key := range keys {
		if err := fc.Set(ctx, key, []byte(ns), 0); err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(fc.path(key), filepath.Join(dir, string(ns))+string(filepath.Separator)) {
			t.Errorf("path(%s key) = %s, want under %s", ns, fc.path(key), ns)
		}
	}
	if err := fc.Set(ctx, "loose", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if got := fc.Count(NamespaceAll); got != 4 {
		t.Errorf("Count(all) = %d, want 4", got)
	}

	n, err := fc.Clear(ctx, NamespaceArtifact)
	if err != nil || n != 1 {
		t.Fatalf("Clear(artifact) = %d, %v, want 1", n, err)
	}
	if _, hit, _ := fc.Get(ctx, keys[NamespaceArtifact]); hit {
		t.Error("artifact entry survived Clear(artifact)")
	}
	if _, hit, _ := fc.Get(ctx, keys[NamespaceScene]); !hit {
		t.Error("scene entry removed by Clear(artifact)")
	}
	if n, _ := fc.Clear(ctx, NamespaceArtifact); n != 0 {
		t.Errorf("second Clear(artifact) = %d, want 0", n)
	}

	n, err = fc.Clear(ctx, NamespaceAll)
	if err != nil || n != 3 {
		t.Errorf("Clear(all) = %d, %v, want 3", n, err)
	}
	if got := fc.Count(NamespaceAll); got != 0 {
		t.Errorf("Count(all) after clear = %d, want 0", got)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("root directory removed by Clear: %v", err)
	}
}

func TestNullCacheClear(t *testing.T) {
	var c Clearer = NewNullCache()
	if n, err := c.Clear(context.Background(), NamespaceAll); n != 0 || err != nil {
		t.Errorf("Clear() = %d, %v", n, err)
	}
}

func TestNamespaceOf(t *testing.T) {
	k := NewDefaultKeyer()
	tests := []struct {
		key  string
		want Namespace
	}{
		{k.SceneKey("d", SceneKeyOpts{}), NamespaceScene},
		{k.ArtifactKey("d", ArtifactKeyOpts{}), NamespaceArtifact},
		{k.ImportKey("ucsc", nil), NamespaceImport},
		{NewScopedKeyer(k, "giv:v1:").SceneKey("d", SceneKeyOpts{}), NamespaceScene},
		{"svg", NamespaceOther},
		{"sceneless:abc", NamespaceOther},
	}
	for _, tt := range tests {
		if got := NamespaceOf(tt.key); got != tt.want {
			t.Errorf("NamespaceOf(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestParseNamespace(t *testing.T) {
	tests := []struct {
		in     string
		want   Namespace
		wantOK bool
	}{
		{"", NamespaceAll, true},
		{"all", NamespaceAll, true},
		{"Scenes", NamespaceScene, true},
		{"artifact", NamespaceArtifact, true},
		{"imports", NamespaceImport, true},
		{"layouts", NamespaceAll, false},
	}
	for _, tt := range tests {
		got, ok := ParseNamespace(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseNamespace(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("GIV_TEST_REDIS_URL")
	if url == "" {
		t.Skip("GIV_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	defer c.Close()

	key := "giv:test:" + Hash([]byte(t.Name()))
	if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if data, hit, err := c.Get(ctx, key); !hit || err != nil || string(data) != "v" {
		t.Errorf("Get = %q %v %v", data, hit, err)
	}
	_ = c.Delete(ctx, key)
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("deleted key should miss")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://localhost"); err == nil {
		t.Error("NewRedisCache should reject non-redis URLs")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	sk1 := k.SceneKey("doc", SceneKeyOpts{Scale: 1, HGap: 2, VGap: 2})
	sk2 := k.SceneKey("doc", SceneKeyOpts{Scale: 2, HGap: 2, VGap: 2})
	if sk1 == sk2 {
		t.Error("Different SceneKeyOpts should produce different keys")
	}
	if sk1 != k.SceneKey("doc", SceneKeyOpts{Scale: 1, HGap: 2, VGap: 2}) {
		t.Error("SceneKey should be deterministic")
	}

	ak1 := k.ArtifactKey("doc", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("doc", ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if ak1 == k.ArtifactKey("other", ArtifactKeyOpts{Format: "svg"}) {
		t.Error("Different documents should produce different keys")
	}

	ik := k.ImportKey("ucsc", map[string]any{"genome": "hg38"})
	if len(ik) != len("import:ucsc:")+64 || ik[:12] != "import:ucsc:" {
		t.Errorf("ImportKey unexpected: %s", ik)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "giv:v1:")
	key := scoped.ArtifactKey("doc", ArtifactKeyOpts{Format: "svg"})
	if key[:7] != "giv:v1:" {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", key)
	}
	if key[7:] != NewDefaultKeyer().ArtifactKey("doc", ArtifactKeyOpts{Format: "svg"}) {
		t.Error("ScopedKeyer should only add the prefix")
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.SceneKey("doc", SceneKeyOpts{})
	if key[:len("prefix:scene:")] != "prefix:scene:" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

var errPermanent = errors.New("permanent")

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
	if IsRetryable(errPermanent) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("success: err %v, calls %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errPermanent
	})
	if err != errPermanent || calls != 1 {
		t.Errorf("permanent: err %v, calls %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry: err %v, calls %d", err, calls)
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
