// Package museum persists scope records under artlens:museum:{id}.
package museum

import (
	"context"
	"fmt"
	"strconv"

	"github.com/realmeta/artlens/internal/domain"
	dommus "github.com/realmeta/artlens/internal/domain/museum"
)

const (
	fieldName      = "name"
	fieldCreatedAt = "created_at"
)

// store is the consumer interface for museum records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Repo implements the scope resolver and registry.
type Repo struct {
	store store
}

// New creates a museum repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save creates or updates a museum record.
func (r *Repo) Save(ctx context.Context, m *dommus.Museum) error {
	key := museumKey(m.ID())
	fields := map[string]string{
		fieldName:      m.Name(),
		fieldCreatedAt: strconv.FormatInt(m.CreatedAt(), 10),
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Get resolves a museum scope by ID.
func (r *Repo) Get(ctx context.Context, id string) (dommus.Museum, error) {
	key := museumKey(id)

	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return dommus.Museum{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(fields) == 0 {
		return dommus.Museum{}, domain.ErrScopeNotFound
	}

	createdAt, _ := strconv.ParseInt(fields[fieldCreatedAt], 10, 64)
	return dommus.Reconstruct(id, fields[fieldName], createdAt), nil
}

// Exists checks whether a museum scope is registered.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := r.store.Exists(ctx, museumKey(id))
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", museumKey(id), err)
	}
	return ok, nil
}

func museumKey(id string) string {
	return domain.KeyPrefix + "museum:" + id
}
