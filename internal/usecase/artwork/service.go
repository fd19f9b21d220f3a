// Package artwork manages the catalog: registration with reference
// image embedding, retrieval, listing, and deletion.
package artwork

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/realmeta/artlens/internal/domain"
	domart "github.com/realmeta/artlens/internal/domain/artwork"
	"github.com/realmeta/artlens/internal/domain/lang"
	dommus "github.com/realmeta/artlens/internal/domain/museum"
)

// RegisterInput describes one artwork to register or update.
type RegisterInput struct {
	ID           string
	MuseumID     string
	Title        string
	Artist       string
	Description  string
	Descriptions map[lang.Code]string

	// Image, when present, is embedded and the artwork becomes indexed.
	Image []byte
	// Embedding is an already computed vector, used when Image is empty.
	Embedding []float32
}

// Service implements catalog management.
type Service struct {
	repo     Repository
	museums  MuseumRegistry
	embedder ImageEmbedder
	logger   *zap.Logger
	now      func() time.Time
}

// New creates an artwork management service.
func New(repo Repository, museums MuseumRegistry, embedder ImageEmbedder, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		museums:  museums,
		embedder: embedder,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates or updates an artwork. The museum scope record is
// created on first use. Returns true if the artwork was created.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domart.Artwork, bool, error) {
	art, err := domart.New(
		in.ID, in.MuseumID, in.Title, in.Artist, in.Description,
		in.Descriptions, s.now().UnixMilli(),
	)
	if err != nil {
		return domart.Artwork{}, false, err
	}

	switch {
	case len(in.Image) > 0:
		embResult, err := s.embedder.EmbedImage(ctx, in.Image)
		if err != nil {
			if errors.Is(err, domain.ErrEmbeddingFailed) {
				return domart.Artwork{}, false, err
			}
			return domart.Artwork{}, false, fmt.Errorf("%w: %w", domain.ErrEmbeddingFailed, err)
		}
		art = art.WithEmbedding(embResult.Embedding)
	case len(in.Embedding) > 0:
		art = art.WithEmbedding(in.Embedding)
	}

	if err := s.ensureMuseum(ctx, in.MuseumID); err != nil {
		return domart.Artwork{}, false, err
	}

	created, err := s.repo.Save(ctx, &art)
	if err != nil {
		return domart.Artwork{}, false, fmt.Errorf("save artwork: %w", err)
	}

	s.logger.Info("Artwork registered",
		zap.String("museum", art.MuseumID()),
		zap.String("artwork", art.ID()),
		zap.Bool("created", created),
		zap.Bool("indexed", art.Indexed()))

	return art, created, nil
}

// Get returns one artwork.
func (s *Service) Get(ctx context.Context, museumID, id string) (domart.Artwork, error) {
	art, err := s.repo.Get(ctx, museumID, id)
	if err != nil {
		return domart.Artwork{}, err
	}
	return art, nil
}

// List returns every artwork in a museum. The museum must exist.
func (s *Service) List(ctx context.Context, museumID string) ([]domart.Artwork, error) {
	exists, err := s.museums.Exists(ctx, museumID)
	if err != nil {
		return nil, fmt.Errorf("check museum %s: %w", museumID, err)
	}
	if !exists {
		return nil, domain.ErrScopeNotFound
	}

	arts, err := s.repo.FindByMuseum(ctx, museumID)
	if err != nil {
		return nil, fmt.Errorf("list artworks: %w", err)
	}
	return arts, nil
}

// Delete removes one artwork.
func (s *Service) Delete(ctx context.Context, museumID, id string) error {
	if err := s.repo.Delete(ctx, museumID, id); err != nil {
		return err
	}
	s.logger.Info("Artwork deleted",
		zap.String("museum", museumID), zap.String("artwork", id))
	return nil
}

// ensureMuseum creates the scope record on first registration.
func (s *Service) ensureMuseum(ctx context.Context, museumID string) error {
	exists, err := s.museums.Exists(ctx, museumID)
	if err != nil {
		return fmt.Errorf("check museum %s: %w", museumID, err)
	}
	if exists {
		return nil
	}

	mus, err := dommus.New(museumID, museumID, s.now().UnixMilli())
	if err != nil {
		return err
	}
	if err := s.museums.Save(ctx, &mus); err != nil {
		return fmt.Errorf("register museum %s: %w", museumID, err)
	}
	return nil
}
