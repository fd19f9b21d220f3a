package match

import (
	"sort"

	"github.com/realmeta/artlens/internal/domain/artwork"
)

// Skipped reports a candidate excluded from ranking because its stored
// vector does not match the query dimensionality. A stale embedding
// from an older provider version is a bug in that one record, not a
// reason to fail the whole request; callers log these.
type Skipped struct {
	ArtworkID string
	Err       error
}

// Rank scores every indexed candidate against the query vector and
// returns the topK best, descending by score. Candidates without an
// embedding are silently filtered; candidates with a wrong-length
// embedding are excluded and reported in skipped.
//
// The sort is stable: equal scores keep their incoming order, so the
// ranking is reproducible for identical inputs.
func Rank(query []float32, candidates []artwork.Artwork, topK int) ([]Candidate, []Skipped) {
	if topK <= 0 {
		return nil, nil
	}

	ranked := make([]Candidate, 0, len(candidates))
	var skipped []Skipped

	for _, art := range candidates {
		if !art.Indexed() {
			continue
		}
		score, err := Cosine(query, art.Embedding())
		if err != nil {
			skipped = append(skipped, Skipped{ArtworkID: art.ID(), Err: err})
			continue
		}
		ranked = append(ranked, NewCandidate(art, score))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	return ranked, skipped
}
