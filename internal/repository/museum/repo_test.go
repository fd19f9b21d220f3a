package museum

import (
	"context"
	"errors"
	"testing"

	"github.com/realmeta/artlens/internal/domain"
	dommus "github.com/realmeta/artlens/internal/domain/museum"
)

type mockStore struct {
	hsetFn    func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn func(ctx context.Context, key string) (map[string]string, error)
	existsFn  func(ctx context.Context, key string) (bool, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func TestSave(t *testing.T) {
	m, err := dommus.New("louvre", "Musée du Louvre", 1700000000000)
	if err != nil {
		t.Fatalf("new museum: %v", err)
	}

	var gotKey string
	var gotFields map[string]string
	ms := &mockStore{
		hsetFn: func(_ context.Context, key string, fields map[string]string) error {
			gotKey = key
			gotFields = fields
			return nil
		},
	}

	if err := New(ms).Save(context.Background(), &m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "artlens:museum:louvre" {
		t.Errorf("key = %q", gotKey)
	}
	if gotFields["name"] != "Musée du Louvre" {
		t.Errorf("name field = %q", gotFields["name"])
	}
	if gotFields["created_at"] != "1700000000000" {
		t.Errorf("created_at field = %q", gotFields["created_at"])
	}
}

func TestGet_Found(t *testing.T) {
	ms := &mockStore{
		hgetAllFn: func(_ context.Context, key string) (map[string]string, error) {
			if key != "artlens:museum:louvre" {
				t.Errorf("key = %q", key)
			}
			return map[string]string{
				"name":       "Musée du Louvre",
				"created_at": "1700000000000",
			}, nil
		},
	}

	m, err := New(ms).Get(context.Background(), "louvre")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID() != "louvre" || m.Name() != "Musée du Louvre" || m.CreatedAt() != 1700000000000 {
		t.Errorf("got %q/%q/%d", m.ID(), m.Name(), m.CreatedAt())
	}
}

func TestGet_NotFound(t *testing.T) {
	ms := &mockStore{
		hgetAllFn: func(_ context.Context, _ string) (map[string]string, error) {
			return map[string]string{}, nil
		},
	}

	_, err := New(ms).Get(context.Background(), "atlantis")
	if !errors.Is(err, domain.ErrScopeNotFound) {
		t.Fatalf("expected ErrScopeNotFound, got %v", err)
	}
}

func TestExists(t *testing.T) {
	ms := &mockStore{
		existsFn: func(_ context.Context, key string) (bool, error) {
			return key == "artlens:museum:louvre", nil
		},
	}

	repo := New(ms)
	ok, err := repo.Exists(context.Background(), "louvre")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	ok, err = repo.Exists(context.Background(), "atlantis")
	if err != nil || ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}
