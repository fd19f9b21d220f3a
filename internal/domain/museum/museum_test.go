package museum

import (
	"errors"
	"strings"
	"testing"

	"github.com/realmeta/artlens/internal/domain"
)

func TestNew(t *testing.T) {
	m, err := New("louvre", "Musée du Louvre", 1700000000000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if m.ID() != "louvre" || m.Name() != "Musée du Louvre" {
		t.Errorf("got ID=%q Name=%q", m.ID(), m.Name())
	}
	if m.CreatedAt() != 1700000000000 {
		t.Errorf("CreatedAt() = %d", m.CreatedAt())
	}
}

func TestNew_InvalidID(t *testing.T) {
	cases := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"spaces", "the louvre"},
		{"slash", "a/b"},
		{"too long", strings.Repeat("x", 257)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.id, "name", 0)
			if !errors.Is(err, domain.ErrInvalidMuseum) {
				t.Errorf("New(%q) error = %v, want ErrInvalidMuseum", tc.id, err)
			}
		})
	}
}

func TestReconstruct_SkipsValidation(t *testing.T) {
	m := Reconstruct("legacy id with spaces", "", 0)
	if m.ID() != "legacy id with spaces" {
		t.Errorf("ID() = %q", m.ID())
	}
}
