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

func TestFileCacheRoundtrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	key := "table:abc123"
	payload := []byte(`{"index":6}`)

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, key, payload, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(got) != string(payload) {
		t.Errorf("expected %q, got %q", payload, got)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Error("expected miss after delete")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "short-lived", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, ok, err := c.Get(ctx, "short-lived"); err != nil || ok {
		t.Errorf("expected expired entry to miss, got ok=%v err=%v", ok, err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Overwrite the entry file with garbage.
	hash := Hash([]byte("k"))
	path := filepath.Join(dir, hash[:2], hash[2:]+".json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("expected corrupt entry to miss, got ok=%v err=%v", ok, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected corrupt entry file to be removed")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("expected permanent miss, got ok=%v err=%v", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	tk := k.TableKey("deadbeef", TableKeyOpts{MaxCosets: 1000})
	if !strings.HasPrefix(tk, "table:") {
		t.Errorf("TableKey missing prefix: %s", tk)
	}

	// Same inputs give the same key.
	if again := k.TableKey("deadbeef", TableKeyOpts{MaxCosets: 1000}); again != tk {
		t.Errorf("TableKey not deterministic: %s vs %s", tk, again)
	}

	// Different limits give different keys.
	if other := k.TableKey("deadbeef", TableKeyOpts{MaxCosets: 2000}); other == tk {
		t.Error("TableKey ignored MaxCosets")
	}

	ak := k.ArtifactKey("deadbeef", ArtifactKeyOpts{Format: "svg"})
	if !strings.HasPrefix(ak, "artifact:") {
		t.Errorf("ArtifactKey missing prefix: %s", ak)
	}
	if png := k.ArtifactKey("deadbeef", ArtifactKeyOpts{Format: "png"}); png == ak {
		t.Error("ArtifactKey ignored format")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "client:123:")

	tk := scoped.TableKey("deadbeef", TableKeyOpts{})
	if !strings.HasPrefix(tk, "client:123:table:") {
		t.Errorf("ScopedKeyer TableKey unexpected: %s", tk)
	}

	ak := scoped.ArtifactKey("deadbeef", ArtifactKeyOpts{Format: "dot"})
	if !strings.HasPrefix(ak, "client:123:artifact:") {
		t.Errorf("ScopedKeyer ArtifactKey unexpected: %s", ak)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should fall back to DefaultKeyer when inner is nil.
	scoped := NewScopedKeyer(nil, "prefix:")
	if tk := scoped.TableKey("h", TableKeyOpts{}); !strings.HasPrefix(tk, "prefix:table:") {
		t.Errorf("unexpected key: %s", tk)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	t.Run("permanent errors fail fast", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return errors.New("permanent")
		})
		if err == nil || calls != 1 {
			t.Errorf("expected single failing call, got calls=%d err=%v", calls, err)
		}
	})

	t.Run("success stops retries", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return nil
		})
		if err != nil || calls != 1 {
			t.Errorf("expected single call, got calls=%d err=%v", calls, err)
		}
	})

	t.Run("retryable detection", func(t *testing.T) {
		base := errors.New("connection reset")
		if !IsRetryable(Retryable(base)) {
			t.Error("wrapped error should be retryable")
		}
		if IsRetryable(base) {
			t.Error("bare error should not be retryable")
		}
		if !errors.Is(Retryable(base), base) {
			t.Error("Retryable should preserve the error chain")
		}
	})
}

func TestHashDeterminism(t *testing.T) {
	a := Hash([]byte("presentation"))
	b := Hash([]byte("presentation"))
	if a != b {
		t.Errorf("hash not deterministic: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if Hash([]byte("other")) == a {
		t.Error("distinct inputs should hash differently")
	}
}
