// Package artwork persists catalog entries as one hash per artwork
// under artlens:artwork:{museum}:{id}.
package artwork

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/realmeta/artlens/internal/domain"
	domart "github.com/realmeta/artlens/internal/domain/artwork"
)

// store is the consumer interface for artwork records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the catalog store contracts of the usecase layer.
type Repo struct {
	store  store
	logger *zap.Logger
}

// New creates an artwork repository.
func New(s store, logger *zap.Logger) *Repo {
	return &Repo{store: s, logger: logger}
}

// Save creates or updates an artwork. Returns true if created.
func (r *Repo) Save(ctx context.Context, art *domart.Artwork) (bool, error) {
	key := artworkKey(art.MuseumID(), art.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.HSet(ctx, key, toFields(art)); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}

	return !exists, nil
}

// Get returns an artwork by museum and ID.
func (r *Repo) Get(ctx context.Context, museumID, id string) (domart.Artwork, error) {
	key := artworkKey(museumID, id)

	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domart.Artwork{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(fields) == 0 {
		return domart.Artwork{}, domain.ErrArtworkNotFound
	}

	art, err := fromFields(id, fields)
	if err != nil {
		return domart.Artwork{}, fmt.Errorf("hydrate %s: %w", key, err)
	}
	return art, nil
}

// FindByMuseum returns every artwork in one museum scope via SCAN over
// the key prefix plus a pipelined HGETALL. A corrupt record is logged
// and skipped, not fatal to the read.
func (r *Repo) FindByMuseum(ctx context.Context, museumID string) ([]domart.Artwork, error) {
	keys, err := r.store.Scan(ctx, museumPattern(museumID))
	if err != nil {
		return nil, fmt.Errorf("scan museum %s: %w", museumID, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	all, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall museum %s: %w", museumID, err)
	}

	arts := make([]domart.Artwork, 0, len(all))
	for i, fields := range all {
		if len(fields) == 0 {
			continue // deleted between SCAN and HGETALL
		}
		art, err := fromFields(idFromKey(keys[i], museumID), fields)
		if err != nil {
			r.logger.Warn("skipping corrupt artwork record",
				zap.String("key", keys[i]), zap.Error(err))
			continue
		}
		arts = append(arts, art)
	}

	return arts, nil
}

// Delete removes an artwork.
func (r *Repo) Delete(ctx context.Context, museumID, id string) error {
	key := artworkKey(museumID, id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrArtworkNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func artworkKey(museumID, id string) string {
	return fmt.Sprintf("%sartwork:%s:%s", domain.KeyPrefix, museumID, id)
}

func museumPattern(museumID string) string {
	return fmt.Sprintf("%sartwork:%s:*", domain.KeyPrefix, museumID)
}

func idFromKey(key, museumID string) string {
	prefix := fmt.Sprintf("%sartwork:%s:", domain.KeyPrefix, museumID)
	return strings.TrimPrefix(key, prefix)
}
