// Package recognition orchestrates photo identification: persist the
// upload, embed it, rank the museum's catalog, classify the result.
// The uploaded photo is transient and is removed on every exit path.
package recognition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/realmeta/artlens/internal/domain"
	"github.com/realmeta/artlens/internal/domain/lang"
	"github.com/realmeta/artlens/internal/domain/match"
	"github.com/realmeta/artlens/internal/metrics"
)

// Result is the outcome of one recognition request.
type Result struct {
	Identification  match.Identification
	MuseumID        string
	Language        lang.Code
	Provider        string // which embedding provider produced the query vector
	TotalCandidates int    // indexed candidates considered
}

// Service runs the recognition flow.
type Service struct {
	museums  MuseumReader
	artworks ArtworkReader
	embedder ImageEmbedder
	uploads  UploadStore

	threshold    float64
	topK         int
	embedTimeout time.Duration
	logger       *zap.Logger
}

// Config holds the match policy knobs.
type Config struct {
	Threshold    float64
	TopK         int
	EmbedTimeout time.Duration
}

// New creates a recognition service.
func New(
	museums MuseumReader,
	artworks ArtworkReader,
	embedder ImageEmbedder,
	uploads UploadStore,
	cfg Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		museums:      museums,
		artworks:     artworks,
		embedder:     embedder,
		uploads:      uploads,
		threshold:    cfg.Threshold,
		topK:         cfg.TopK,
		embedTimeout: cfg.EmbedTimeout,
		logger:       logger,
	}
}

// Identify matches a visitor photo against one museum's catalog.
//
// The photo is written to a transient file first and removed via defer,
// so cleanup runs on success, on every error, and on request
// cancellation alike.
func (s *Service) Identify(
	ctx context.Context, museumID string, photo io.Reader, language lang.Code,
) (Result, error) {
	start := time.Now()
	outcome := "error"
	defer func() {
		metrics.RecognitionTotal.WithLabelValues(outcome).Inc()
		metrics.RecognitionDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	path, err := s.uploads.Store(photo)
	if err != nil {
		return Result{}, fmt.Errorf("store upload: %w", err)
	}
	defer func() {
		// Removal takes no context: cleanup must survive request cancellation.
		if rmErr := s.uploads.Remove(path); rmErr != nil {
			s.logger.Warn("Transient upload cleanup failed",
				zap.String("path", path), zap.Error(rmErr))
		}
	}()

	mus, err := s.museums.Get(ctx, museumID)
	if err != nil {
		if errors.Is(err, domain.ErrScopeNotFound) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("resolve museum %s: %w", museumID, err)
	}

	candidates, err := s.artworks.FindByMuseum(ctx, mus.ID())
	if err != nil {
		return Result{}, fmt.Errorf("load candidates: %w", err)
	}

	image, err := s.uploads.Read(path)
	if err != nil {
		return Result{}, fmt.Errorf("read upload: %w", err)
	}

	embedCtx := ctx
	if s.embedTimeout > 0 {
		var cancel context.CancelFunc
		embedCtx, cancel = context.WithTimeout(ctx, s.embedTimeout)
		defer cancel()
	}

	embResult, err := s.embedder.EmbedImage(embedCtx, image)
	if err != nil {
		if errors.Is(err, domain.ErrEmbeddingFailed) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingFailed, err)
	}

	ranked, skipped := match.Rank(embResult.Embedding, candidates, s.topK)
	for _, sk := range skipped {
		s.logger.Warn("Candidate excluded from ranking",
			zap.String("museum", mus.ID()),
			zap.String("artwork", sk.ArtworkID),
			zap.Error(sk.Err))
	}

	ident, err := match.Classify(ranked, s.threshold)
	if err != nil {
		if errors.Is(err, domain.ErrNoCandidates) {
			outcome = "no_candidates"
		}
		return Result{}, err
	}

	if ident.Confident() {
		outcome = "confident"
	} else {
		outcome = "ambiguous"
	}

	s.logger.Info("Recognition complete",
		zap.String("museum", mus.ID()),
		zap.String("best", ident.Best().Artwork().ID()),
		zap.Float64("score", ident.Best().Score()),
		zap.Bool("confident", ident.Confident()),
		zap.Int("candidates", len(candidates)))

	return Result{
		Identification:  ident,
		MuseumID:        mus.ID(),
		Language:        language,
		Provider:        embResult.Provider,
		TotalCandidates: len(candidates),
	}, nil
}
