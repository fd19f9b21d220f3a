package artwork

import (
	"context"

	"github.com/realmeta/artlens/internal/domain"
	domart "github.com/realmeta/artlens/internal/domain/artwork"
	dommus "github.com/realmeta/artlens/internal/domain/museum"
)

// Repository defines the storage contract for catalog management.
type Repository interface {
	Save(ctx context.Context, art *domart.Artwork) (bool, error)
	Get(ctx context.Context, museumID, id string) (domart.Artwork, error)
	FindByMuseum(ctx context.Context, museumID string) ([]domart.Artwork, error)
	Delete(ctx context.Context, museumID, id string) error
}

// MuseumRegistry checks and creates museum scope records.
type MuseumRegistry interface {
	Exists(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, m *dommus.Museum) error
}

// ImageEmbedder vectorizes reference images at registration time.
type ImageEmbedder interface {
	EmbedImage(ctx context.Context, image []byte) (domain.EmbeddingResult, error)
}
