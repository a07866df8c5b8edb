// Package preset provides named, persisted dimension presets.
//
// A preset stores the *inputs* of a settings computation (tile size and tile
// counts) under a human-readable name, so recurring sprite configurations
// can be recalled by the CLI, TUI, and HTTP API. Derived settings are never
// persisted; they are recomputed from the dimensions on demand.
//
// The Store interface has several backends:
//   - memory: in-process storage for development and testing
//   - file: JSON files under the user config dir, for CLI usage
//   - redis: shared storage for multi-instance server deployments
//   - mongo: document storage for server deployments
package preset

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tilecraft/isocam/pkg/blender"
)

// Sentinel errors for preset operations.
var (
	// ErrNotFound is returned when a preset does not exist.
	ErrNotFound = errors.New("preset not found")

	// ErrInvalidName is returned when a preset name is empty or blank.
	ErrInvalidName = errors.New("invalid preset name")
)

// Preset is a named set of input dimensions.
type Preset struct {
	ID         string             `json:"id" bson:"_id"`
	Name       string             `json:"name" bson:"name"`
	Dimensions blender.Dimensions `json:"dimensions" bson:"dimensions"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// New creates a preset with a fresh ID and creation timestamp.
func New(name string, d blender.Dimensions) (*Preset, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	now := time.Now().UTC()
	return &Preset{
		ID:         uuid.NewString(),
		Name:       name,
		Dimensions: d,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Store is the interface for preset storage backends.
type Store interface {
	// Get retrieves a preset by ID. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*Preset, error)

	// List returns all presets, ordered by name.
	List(ctx context.Context) ([]*Preset, error)

	// Save stores a preset, replacing any existing preset with the same ID.
	Save(ctx context.Context, p *Preset) error

	// Delete removes a preset. Deleting a missing preset returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases resources held by the backend.
	Close() error
}

// FindByName returns the first preset in s whose name matches exactly.
// Returns ErrNotFound if no preset has that name.
func FindByName(ctx context.Context, s Store, name string) (*Preset, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, ErrNotFound
}
