// Package match is the visitor identification core: cosine similarity,
// museum-scoped ranking, and the confidence-tiered match policy. Every
// function here is pure; errors are raised, never caught.
package match

import (
	"fmt"
	"math"

	"github.com/realmeta/artlens/internal/domain"
)

// Cosine returns the cosine similarity of two vectors.
// Accumulation happens in float64 so high-dimensional float32 vectors
// do not lose precision before the final division. A zero-norm vector
// yields 0.0 rather than a division by zero. Vectors of differing
// length are a data-integrity violation, never truncated.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
