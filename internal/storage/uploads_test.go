package storage

import (
	"bytes"
	"os"
	"testing"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *UploadStore {
	t.Helper()
	s, err := NewUploadStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("new upload store: %v", err)
	}
	return s
}

func TestStoreReadRemove(t *testing.T) {
	s := newTestStore(t)
	payload := []byte("fake image bytes")

	path, err := s.Store(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := s.Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("read %q, want %q", got, payload)
	}

	if err := s.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected file to be gone after Remove")
	}
}

func TestRemove_MissingFileIsNotAnError(t *testing.T) {
	s := newTestStore(t)
	if err := s.Remove(s.dir + "/upload_nonexistent"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStore_UniqueNames(t *testing.T) {
	s := newTestStore(t)

	p1, err := s.Store(bytes.NewReader([]byte("a")))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	p2, err := s.Store(bytes.NewReader([]byte("a")))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if p1 == p2 {
		t.Fatal("identical payloads must still get distinct paths")
	}
}
