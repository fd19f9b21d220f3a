// Package museum holds the scope aggregate. A museum is the isolation
// boundary for matching: identification never crosses it.
package museum

import (
	"fmt"
	"regexp"

	"github.com/realmeta/artlens/internal/domain"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Museum is a catalog scope.
type Museum struct {
	id        string
	name      string
	createdAt int64
}

// New validates and creates a Museum.
func New(id, name string, createdAt int64) (Museum, error) {
	if id == "" || len(id) > 256 || !idRegex.MatchString(id) {
		return Museum{}, fmt.Errorf("museum ID must be alphanumeric with underscores and hyphens: %w",
			domain.ErrInvalidMuseum)
	}
	return Museum{id: id, name: name, createdAt: createdAt}, nil
}

// Reconstruct creates a Museum without validation (storage hydration).
func Reconstruct(id, name string, createdAt int64) Museum {
	return Museum{id: id, name: name, createdAt: createdAt}
}

// ID returns the museum identifier.
func (m Museum) ID() string { return m.id }

// Name returns the display name.
func (m Museum) Name() string { return m.name }

// CreatedAt returns the creation time in unix milliseconds.
func (m Museum) CreatedAt() int64 { return m.createdAt }
