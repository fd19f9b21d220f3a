package recognition

import (
	"context"
	"io"

	"github.com/realmeta/artlens/internal/domain"
	domart "github.com/realmeta/artlens/internal/domain/artwork"
	dommus "github.com/realmeta/artlens/internal/domain/museum"
)

// MuseumReader resolves the scope for a recognition request.
type MuseumReader interface {
	Get(ctx context.Context, id string) (dommus.Museum, error)
}

// ArtworkReader loads the candidate set for one museum.
type ArtworkReader interface {
	FindByMuseum(ctx context.Context, museumID string) ([]domart.Artwork, error)
}

// ImageEmbedder vectorizes the visitor photo.
type ImageEmbedder interface {
	EmbedImage(ctx context.Context, image []byte) (domain.EmbeddingResult, error)
}

// UploadStore holds the photo on disk for the request lifetime.
type UploadStore interface {
	Store(r io.Reader) (string, error)
	Read(path string) ([]byte, error)
	Remove(path string) error
}
