package blob

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"go-vault/internal/config"
)

func newTestLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(&config.Config{
		FSPath:  t.TempDir(),
		FSURL:   "/fs/uploads",
		BaseURL: "http://localhost:8080",
	})
	if err != nil {
		t.Fatalf("Failed to create local store: %v", err)
	}
	return store
}

func TestSaveIsOneShotPerRef(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	target, err := store.IssueUploadTarget(ctx)
	if err != nil {
		t.Fatalf("Failed to issue upload target: %v", err)
	}

	first := []byte("original content")
	if err := store.Save(ctx, target.BlobRef, bytes.NewReader(first), int64(len(first))); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	second := []byte("replacement content")
	if err := store.Save(ctx, target.BlobRef, bytes.NewReader(second), int64(len(second))); err == nil {
		t.Fatal("Expected second save to the same ref to be rejected")
	}

	got, err := os.ReadFile(filepath.Join(store.dir, target.BlobRef))
	if err != nil {
		t.Fatalf("Failed to read blob: %v", err)
	}
	if !bytes.Equal(got, first) {
		t.Errorf("Expected original bytes to survive, got %q", got)
	}
}

func TestSaveRejectsForeignRefs(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	// Only refs this store issued (UUIDs) are valid upload handles.
	for _, ref := range []string{"", "not-a-uuid", "../escape", "victim-file"} {
		if err := store.Save(ctx, ref, bytes.NewReader([]byte("x")), 1); err == nil {
			t.Errorf("Expected save with ref %q to be rejected", ref)
		}
	}
}
