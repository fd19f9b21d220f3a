package artwork

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/realmeta/artlens/internal/domain"
	domart "github.com/realmeta/artlens/internal/domain/artwork"
	dommus "github.com/realmeta/artlens/internal/domain/museum"
)

type mockRepo struct {
	saved    []domart.Artwork
	getFn    func(ctx context.Context, museumID, id string) (domart.Artwork, error)
	findFn   func(ctx context.Context, museumID string) ([]domart.Artwork, error)
	deleteFn func(ctx context.Context, museumID, id string) error
	created  bool
	saveErr  error
}

func (m *mockRepo) Save(_ context.Context, art *domart.Artwork) (bool, error) {
	if m.saveErr != nil {
		return false, m.saveErr
	}
	m.saved = append(m.saved, *art)
	return m.created, nil
}

func (m *mockRepo) Get(ctx context.Context, museumID, id string) (domart.Artwork, error) {
	if m.getFn != nil {
		return m.getFn(ctx, museumID, id)
	}
	return domart.Artwork{}, domain.ErrArtworkNotFound
}

func (m *mockRepo) FindByMuseum(ctx context.Context, museumID string) ([]domart.Artwork, error) {
	if m.findFn != nil {
		return m.findFn(ctx, museumID)
	}
	return nil, nil
}

func (m *mockRepo) Delete(ctx context.Context, museumID, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, museumID, id)
	}
	return nil
}

type mockRegistry struct {
	existing map[string]bool
	saved    []dommus.Museum
}

func (m *mockRegistry) Exists(_ context.Context, id string) (bool, error) {
	return m.existing[id], nil
}

func (m *mockRegistry) Save(_ context.Context, mus *dommus.Museum) error {
	m.saved = append(m.saved, *mus)
	return nil
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) EmbedImage(_ context.Context, _ []byte) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

func newTestService(repo *mockRepo, reg *mockRegistry, emb *mockEmbedder) *Service {
	if reg.existing == nil {
		reg.existing = make(map[string]bool)
	}
	return New(repo, reg, emb, zap.NewNop())
}

func TestRegister_WithImage(t *testing.T) {
	repo := &mockRepo{created: true}
	reg := &mockRegistry{}
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}}

	svc := newTestService(repo, reg, emb)

	art, created, err := svc.Register(context.Background(), RegisterInput{
		ID:       "monalisa",
		MuseumID: "louvre",
		Title:    "Mona Lisa",
		Image:    []byte("reference image"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true")
	}
	if !art.Indexed() {
		t.Error("artwork with an image must be indexed")
	}
	if emb.calls != 1 {
		t.Errorf("embedder calls = %d, want 1", emb.calls)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved = %d artworks, want 1", len(repo.saved))
	}
}

func TestRegister_AutoCreatesMuseumScope(t *testing.T) {
	repo := &mockRepo{created: true}
	reg := &mockRegistry{}
	emb := &mockEmbedder{}

	svc := newTestService(repo, reg, emb)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		ID:       "monalisa",
		MuseumID: "louvre",
		Title:    "Mona Lisa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reg.saved) != 1 || reg.saved[0].ID() != "louvre" {
		t.Fatalf("expected museum scope to be auto-created, saved=%v", reg.saved)
	}
}

func TestRegister_ExistingMuseumNotRecreated(t *testing.T) {
	repo := &mockRepo{}
	reg := &mockRegistry{existing: map[string]bool{"louvre": true}}
	emb := &mockEmbedder{}

	svc := newTestService(repo, reg, emb)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		ID: "monalisa", MuseumID: "louvre", Title: "Mona Lisa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reg.saved) != 0 {
		t.Errorf("museum scope must not be recreated, saved=%v", reg.saved)
	}
}

func TestRegister_WithPrecomputedEmbedding(t *testing.T) {
	repo := &mockRepo{}
	reg := &mockRegistry{}
	emb := &mockEmbedder{}

	svc := newTestService(repo, reg, emb)

	art, _, err := svc.Register(context.Background(), RegisterInput{
		ID: "monalisa", MuseumID: "louvre", Title: "Mona Lisa",
		Embedding: []float32{0.5, 0.5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !art.Indexed() {
		t.Error("expected indexed artwork")
	}
	if emb.calls != 0 {
		t.Error("embedder must not run for a precomputed vector")
	}
}

func TestRegister_WithoutImageIsUnindexed(t *testing.T) {
	repo := &mockRepo{}
	reg := &mockRegistry{}
	emb := &mockEmbedder{}

	svc := newTestService(repo, reg, emb)

	art, _, err := svc.Register(context.Background(), RegisterInput{
		ID: "monalisa", MuseumID: "louvre", Title: "Mona Lisa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if art.Indexed() {
		t.Error("expected unindexed artwork without image or vector")
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	svc := newTestService(&mockRepo{}, &mockRegistry{}, &mockEmbedder{})

	_, _, err := svc.Register(context.Background(), RegisterInput{
		ID: "bad id!", MuseumID: "louvre", Title: "x",
	})
	if !errors.Is(err, domain.ErrInvalidArtwork) {
		t.Fatalf("expected ErrInvalidArtwork, got %v", err)
	}
}

func TestRegister_EmbedderFailure(t *testing.T) {
	repo := &mockRepo{}
	reg := &mockRegistry{}
	emb := &mockEmbedder{err: errors.New("provider down")}

	svc := newTestService(repo, reg, emb)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		ID: "monalisa", MuseumID: "louvre", Title: "Mona Lisa",
		Image: []byte("reference image"),
	})
	if !errors.Is(err, domain.ErrEmbeddingFailed) {
		t.Fatalf("expected ErrEmbeddingFailed, got %v", err)
	}
	if len(repo.saved) != 0 {
		t.Error("artwork must not be saved when embedding fails")
	}
}

func TestList_UnknownMuseum(t *testing.T) {
	svc := newTestService(&mockRepo{}, &mockRegistry{}, &mockEmbedder{})

	_, err := svc.List(context.Background(), "atlantis")
	if !errors.Is(err, domain.ErrScopeNotFound) {
		t.Fatalf("expected ErrScopeNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	art, err := domart.New("monalisa", "louvre", "Mona Lisa", "", "", nil, 0)
	if err != nil {
		t.Fatalf("new artwork: %v", err)
	}
	repo := &mockRepo{findFn: func(_ context.Context, _ string) ([]domart.Artwork, error) {
		return []domart.Artwork{art}, nil
	}}
	reg := &mockRegistry{existing: map[string]bool{"louvre": true}}

	svc := newTestService(repo, reg, &mockEmbedder{})

	arts, err := svc.List(context.Background(), "louvre")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(arts) != 1 || arts[0].ID() != "monalisa" {
		t.Fatalf("arts = %v", arts)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockRepo{deleteFn: func(_ context.Context, _, _ string) error {
		return domain.ErrArtworkNotFound
	}}

	svc := newTestService(repo, &mockRegistry{}, &mockEmbedder{})

	err := svc.Delete(context.Background(), "louvre", "missing")
	if !errors.Is(err, domain.ErrArtworkNotFound) {
		t.Fatalf("expected ErrArtworkNotFound, got %v", err)
	}
}
