// Package artwork holds the catalog entry aggregate.
package artwork

import (
	"fmt"
	"regexp"

	"github.com/realmeta/artlens/internal/domain"
	"github.com/realmeta/artlens/internal/domain/lang"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxDescriptionSize is the maximum description size in bytes.
const MaxDescriptionSize = 65536 // 64KB

// Artwork is one catalog entry belonging to exactly one museum
// (immutable value object). An artwork without an embedding is "not
// yet indexed" and never participates in matching.
type Artwork struct {
	id           string
	museumID     string
	title        string
	artist       string
	description  string
	descriptions map[lang.Code]string
	embedding    []float32
	createdAt    int64
}

// New validates and creates an Artwork.
// IDs: ^[a-zA-Z0-9_-]+$, 1-256 chars. Title is required.
// Localized description keys must come from the supported language set.
func New(
	id, museumID, title, artist, description string,
	descriptions map[lang.Code]string,
	createdAt int64,
) (Artwork, error) {
	if err := validateID("artwork ID", id); err != nil {
		return Artwork{}, err
	}
	if err := validateID("museum ID", museumID); err != nil {
		return Artwork{}, err
	}
	if title == "" {
		return Artwork{}, fmt.Errorf("title is required: %w", domain.ErrInvalidArtwork)
	}
	if len(description) > MaxDescriptionSize {
		return Artwork{}, fmt.Errorf("description too large (max %d bytes): %w",
			MaxDescriptionSize, domain.ErrInvalidArtwork)
	}
	for code := range descriptions {
		if _, err := lang.Parse(string(code)); err != nil {
			return Artwork{}, fmt.Errorf("localized description: %w", err)
		}
	}

	return Artwork{
		id:           id,
		museumID:     museumID,
		title:        title,
		artist:       artist,
		description:  description,
		descriptions: cloneDescriptions(descriptions),
		createdAt:    createdAt,
	}, nil
}

// Reconstruct creates an Artwork without validation (storage hydration).
func Reconstruct(
	id, museumID, title, artist, description string,
	descriptions map[lang.Code]string,
	embedding []float32,
	createdAt int64,
) Artwork {
	return Artwork{
		id: id, museumID: museumID, title: title, artist: artist,
		description: description, descriptions: descriptions,
		embedding: embedding, createdAt: createdAt,
	}
}

// ID returns the artwork identifier.
func (a Artwork) ID() string { return a.id }

// MuseumID returns the owning museum scope.
func (a Artwork) MuseumID() string { return a.museumID }

// Title returns the artwork title.
func (a Artwork) Title() string { return a.title }

// Artist returns the artwork author.
func (a Artwork) Artist() string { return a.artist }

// Description returns the default-language description.
func (a Artwork) Description() string { return a.description }

// Descriptions returns the localized descriptions.
func (a Artwork) Descriptions() map[lang.Code]string { return a.descriptions }

// DescriptionIn returns the description for the given language,
// falling back to the default description when no variant exists.
func (a Artwork) DescriptionIn(code lang.Code) string {
	if d, ok := a.descriptions[code]; ok && d != "" {
		return d
	}
	return a.description
}

// Embedding returns the precomputed image embedding, nil if unindexed.
func (a Artwork) Embedding() []float32 { return a.embedding }

// Indexed reports whether the artwork carries an embedding.
func (a Artwork) Indexed() bool { return len(a.embedding) > 0 }

// CreatedAt returns the creation time in unix milliseconds.
func (a Artwork) CreatedAt() int64 { return a.createdAt }

// WithEmbedding returns a copy with the given vector set.
func (a Artwork) WithEmbedding(v []float32) Artwork {
	a.embedding = v
	return a
}

func validateID(what, id string) error {
	if id == "" {
		return fmt.Errorf("%s is required: %w", what, domain.ErrInvalidArtwork)
	}
	if len(id) > 256 {
		return fmt.Errorf("%s too long (max 256): %w", what, domain.ErrInvalidArtwork)
	}
	if !idRegex.MatchString(id) {
		return fmt.Errorf("%s must be alphanumeric with underscores and hyphens: %w",
			what, domain.ErrInvalidArtwork)
	}
	return nil
}

func cloneDescriptions(m map[lang.Code]string) map[lang.Code]string {
	if m == nil {
		return nil
	}
	c := make(map[lang.Code]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
