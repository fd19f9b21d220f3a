package domain

import "errors"

var (
	// ErrScopeNotFound signals an unknown museum scope.
	ErrScopeNotFound = errors.New("museum scope not found")
	// ErrArtworkNotFound signals a missing artwork record.
	ErrArtworkNotFound = errors.New("artwork not found")
	// ErrNoCandidates signals a scope with zero indexed artworks.
	ErrNoCandidates = errors.New("no indexed artworks to match against")
	// ErrEmbeddingFailed signals an embedding provider failure or an unreadable image.
	ErrEmbeddingFailed = errors.New("embedding generation failed")
	// ErrDimensionMismatch signals vectors of differing length reaching the similarity engine.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrInvalidArtwork signals an artwork record that fails validation.
	ErrInvalidArtwork = errors.New("invalid artwork")
	// ErrInvalidMuseum signals a museum record that fails validation.
	ErrInvalidMuseum = errors.New("invalid museum")
	// ErrInvalidLanguage signals a language code outside the supported set.
	ErrInvalidLanguage = errors.New("unsupported language code")
)
