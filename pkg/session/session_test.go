package session

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/field"
)

func sample() []*field.Record {
	return []*field.Record{
		{Line: 6, Name: "A", Input: "S", Size: field.IntPtr(3), Start: field.IntPtr(1)},
		{Line: 7, Name: "B", Input: "S", Size: field.IntPtr(2), Start: field.IntPtr(4)},
	}
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "sessions"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestNew(t *testing.T) {
	s := New("layout.xlsx", sample(), 0)
	if !ValidID(s.ID) {
		t.Errorf("ID %q is not a UUID", s.ID)
	}
	if got := s.ExpiresAt.Sub(s.CreatedAt); got != DefaultTTL {
		t.Errorf("ttl = %v, want %v", got, DefaultTTL)
	}
	if s.IsExpired() {
		t.Error("new session should not be expired")
	}
	if r := s.Record(7); r == nil || r.Name != "B" {
		t.Errorf("Record(7) = %v", r)
	}
	if s.Record(99) != nil {
		t.Error("Record(99) should be nil")
	}
}

func TestClone(t *testing.T) {
	s := New("x", sample(), time.Hour)
	c := s.Clone()
	*c.Records[0].Size = 99
	c.Records[1].Value = "changed"
	if *s.Records[0].Size != 3 || s.Records[1].Value != "" {
		t.Error("Clone shares records with the original")
	}
}

func TestValidID(t *testing.T) {
	for id, want := range map[string]bool{
		"6f1c2a52-4f0a-4a5e-9a55-0c5b8c1a7f11": true,
		"":                                     false,
		"../../etc/passwd":                     false,
		"abc":                                  false,
	} {
		if got := ValidID(id); got != want {
			t.Errorf("ValidID(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			sess := New("layout.xlsx", sample(), time.Hour)
			if err := store.Set(ctx, sess); err != nil {
				t.Fatalf("Set: %v", err)
			}

			got, err := store.Get(ctx, sess.ID)
			if err != nil || got == nil {
				t.Fatalf("Get = %v, %v", got, err)
			}
			if got.Source != "layout.xlsx" || len(got.Records) != 2 || *got.Records[1].Start != 4 {
				t.Errorf("Get = %+v", got)
			}

			got.Records[0].Value = "not stored"
			again, _ := store.Get(ctx, sess.ID)
			if again.Records[0].Value != "" {
				t.Error("mutating a Get result must not change the store")
			}

			updated, err := store.Update(ctx, sess.ID, func(s *Session) error {
				s.Records[0].Value = "abc"
				return nil
			})
			if err != nil || updated.Records[0].Value != "abc" {
				t.Fatalf("Update = %v, %v", updated, err)
			}
			if again, _ := store.Get(ctx, sess.ID); again.Records[0].Value != "abc" {
				t.Error("Update was not persisted")
			}

			boom := stderrors.New("boom")
			if _, err := store.Update(ctx, sess.ID, func(s *Session) error {
				s.Records[0].Value = "discarded"
				return boom
			}); !stderrors.Is(err, boom) {
				t.Errorf("Update err = %v, want boom", err)
			}
			if again, _ := store.Get(ctx, sess.ID); again.Records[0].Value != "abc" {
				t.Error("failed Update must not be stored")
			}

			if err := store.Delete(ctx, sess.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if got, err := store.Get(ctx, sess.ID); got != nil || err != nil {
				t.Errorf("Get after Delete = %v, %v", got, err)
			}
			if err := store.Delete(ctx, sess.ID); err != nil {
				t.Errorf("second Delete: %v", err)
			}
		})
	}
}

func TestStoreMissingAndExpired(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			missing := New("x", nil, time.Hour).ID
			if got, err := store.Get(ctx, missing); got != nil || err != nil {
				t.Errorf("Get(missing) = %v, %v", got, err)
			}
			_, err := store.Update(ctx, missing, func(*Session) error { return nil })
			if !errors.Is(err, errors.ErrCodeSessionNotFound) {
				t.Errorf("Update(missing) err = %v", err)
			}

			old := New("x", sample(), time.Hour)
			old.ExpiresAt = time.Now().Add(-time.Minute)
			if err := store.Set(ctx, old); err != nil {
				t.Fatal(err)
			}
			if got, _ := store.Get(ctx, old.ID); got != nil {
				t.Error("expired session should not be returned")
			}
			if err := store.Cleanup(ctx); err != nil {
				t.Errorf("Cleanup: %v", err)
			}
		})
	}
}

func TestMemoryStoreConcurrentUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sess := New("x", []*field.Record{{Line: 1, Name: "N", Size: field.IntPtr(0)}}, time.Hour)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Update(ctx, sess.ID, func(s *Session) error {
				*s.Records[0].Size++
				return nil
			})
		}()
	}
	wg.Wait()

	got, _ := store.Get(ctx, sess.ID)
	if *got.Records[0].Size != 50 {
		t.Errorf("size = %d, want 50 (lost updates)", *got.Records[0].Size)
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	live := New("live", nil, time.Hour)
	dead := New("dead", nil, time.Hour)
	dead.ExpiresAt = time.Now().Add(-time.Second)
	store.Set(ctx, live)
	store.Set(ctx, dead)

	if err := store.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestFileStoreRejectsBadIDs(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if store.Path() != dir {
		t.Errorf("Path() = %q", store.Path())
	}

	if err := store.Set(ctx, &Session{ID: "../escape", ExpiresAt: time.Now().Add(time.Hour)}); err == nil {
		t.Error("Set should reject a non-UUID id")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.json")); !os.IsNotExist(err) {
		t.Error("file written outside the store directory")
	}
	if got, err := store.Get(ctx, "../escape"); got != nil || err != nil {
		t.Errorf("Get(bad id) = %v, %v", got, err)
	}
}

func TestNewRedisStorePrefix(t *testing.T) {
	s := NewRedisStore(nil, "")
	if got := s.key("abc"); got != "eventlayout:session:abc" {
		t.Errorf("key = %q", got)
	}
}
