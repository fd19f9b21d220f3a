package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ImageEmbedder is the shared image vectorization contract between layers.
type ImageEmbedder interface {
	EmbedImage(ctx context.Context, image []byte) (EmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and provider attribution
// through the decorator chain.
type EmbeddingResult struct {
	Embedding []float32
	Provider  string
}

// FallbackEmbedder tries an ordered list of providers and returns the
// first successful result. All providers failing is a single
// ErrEmbeddingFailed carrying every attempt.
type FallbackEmbedder struct {
	providers []ImageEmbedder
}

// NewFallbackEmbedder creates a provider chain. At least one provider is required.
func NewFallbackEmbedder(providers ...ImageEmbedder) (*FallbackEmbedder, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one embedding provider is required")
	}
	return &FallbackEmbedder{providers: providers}, nil
}

// EmbedImage delegates to each provider in order until one succeeds.
func (f *FallbackEmbedder) EmbedImage(ctx context.Context, image []byte) (EmbeddingResult, error) {
	var errs []error
	for i, p := range f.providers {
		res, err := p.EmbedImage(ctx, image)
		if err == nil {
			return res, nil
		}
		errs = append(errs, fmt.Errorf("provider[%d]: %w", i, err))
		if ctx.Err() != nil {
			break
		}
	}
	return EmbeddingResult{}, fmt.Errorf("all providers failed: %w: %w", ErrEmbeddingFailed, errors.Join(errs...))
}

// HealthCheck passes when any provider in the chain is healthy.
func (f *FallbackEmbedder) HealthCheck(ctx context.Context) error {
	var errs []error
	for _, p := range f.providers {
		hc, ok := p.(HealthChecker)
		if !ok {
			return nil
		}
		err := hc.HealthCheck(ctx)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return fmt.Errorf("no healthy embedding provider: %w", errors.Join(errs...))
}

// LazyEmbedder defers provider construction until the first call and
// guarantees it happens exactly once, so concurrent first requests do
// not trigger duplicate initialization.
type LazyEmbedder struct {
	build func() (ImageEmbedder, error)
	once  sync.Once
	inner ImageEmbedder
	err   error
}

// NewLazyEmbedder wraps a constructor for one-time initialization.
func NewLazyEmbedder(build func() (ImageEmbedder, error)) *LazyEmbedder {
	return &LazyEmbedder{build: build}
}

func (l *LazyEmbedder) init() (ImageEmbedder, error) {
	l.once.Do(func() {
		l.inner, l.err = l.build()
	})
	if l.err != nil {
		return nil, fmt.Errorf("initialize embedder: %w", l.err)
	}
	return l.inner, nil
}

// EmbedImage initializes the inner embedder on first use and delegates.
func (l *LazyEmbedder) EmbedImage(ctx context.Context, image []byte) (EmbeddingResult, error) {
	inner, err := l.init()
	if err != nil {
		return EmbeddingResult{}, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
	return inner.EmbedImage(ctx, image)
}

// HealthCheck initializes the inner embedder and delegates when it
// supports health checks.
func (l *LazyEmbedder) HealthCheck(ctx context.Context) error {
	inner, err := l.init()
	if err != nil {
		return err
	}
	if hc, ok := inner.(HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}
