package storage

import (
	"context"
	"testing"
	"time"
)

func TestStore(t *testing.T) {
	t.Run("Read Missing Key Is Empty", func(t *testing.T) {
		store, err := NewStore(t.TempDir(), nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		data, err := store.Read("absent")
		if err != nil {
			t.Fatalf("missing key should not error: %v", err)
		}
		if data != nil {
			t.Errorf("expected nil, got %q", data)
		}
	})

	t.Run("Write Then Read", func(t *testing.T) {
		store, _ := NewStore(t.TempDir(), nil)

		if err := store.Write("k", []byte(`[1,2]`)); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		data, err := store.Read("k")
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if string(data) != `[1,2]` {
			t.Errorf("expected [1,2], got %q", data)
		}
	})

	t.Run("Watch Sees External Writes", func(t *testing.T) {
		dir := t.TempDir()
		store, _ := NewStore(dir, nil)
		other, _ := NewStore(dir, nil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changed := make(chan struct{}, 1)
		if err := store.Watch(ctx, "k", func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		}); err != nil {
			t.Fatalf("watch failed: %v", err)
		}

		if err := other.Write("k", []byte(`"v"`)); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		select {
		case <-changed:
		case <-time.After(2 * time.Second):
			t.Fatal("expected change notification from external write")
		}
	})
}

func TestTheme(t *testing.T) {
	t.Run("Defaults To Light", func(t *testing.T) {
		store, _ := NewStore(t.TempDir(), nil)
		if store.Theme() != "light" {
			t.Errorf("expected light, got %s", store.Theme())
		}
	})

	t.Run("Round Trip Dark", func(t *testing.T) {
		store, _ := NewStore(t.TempDir(), nil)

		if err := store.SetTheme("dark"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if store.Theme() != "dark" {
			t.Errorf("expected dark, got %s", store.Theme())
		}
	})

	t.Run("Garbage Falls Back To Light", func(t *testing.T) {
		store, _ := NewStore(t.TempDir(), nil)
		store.Write(ThemeKey, []byte("neon"))

		if store.Theme() != "light" {
			t.Errorf("expected light, got %s", store.Theme())
		}
	})

	t.Run("Rejects Unknown Theme", func(t *testing.T) {
		store, _ := NewStore(t.TempDir(), nil)
		if err := store.SetTheme("sepia"); err == nil {
			t.Error("expected error for unknown theme")
		}
	})
}
