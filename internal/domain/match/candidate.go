package match

import (
	"math"

	"github.com/realmeta/artlens/internal/domain/artwork"
)

// Candidate pairs a catalog entry with its similarity score for one
// identification request. Candidates are never persisted.
type Candidate struct {
	art   artwork.Artwork
	score float64
}

// NewCandidate creates a candidate.
func NewCandidate(art artwork.Artwork, score float64) Candidate {
	return Candidate{art: art, score: score}
}

// Artwork returns the matched catalog entry.
func (c Candidate) Artwork() artwork.Artwork { return c.art }

// Score returns the cosine similarity in [0, 1].
func (c Candidate) Score() float64 { return c.score }

// ScorePercent returns the similarity as a rounded integer percentage.
func (c Candidate) ScorePercent() int { return int(math.Round(c.score * 100)) }
