package preset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore persists presets as JSON files in a directory, one file per
// preset named <id>.json. Suited to CLI usage where presets live under the
// user's config directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store in dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create preset dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get retrieves a preset by ID.
func (s *FileStore) Get(ctx context.Context, id string) (*Preset, error) {
	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode preset %s: %w", id, err)
	}
	return &p, nil
}

// List returns all presets ordered by name. Files that fail to decode are
// skipped rather than failing the whole listing.
func (s *FileStore) List(ctx context.Context) ([]*Preset, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var out []*Preset
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var p Preset
		if err := json.Unmarshal(data, &p); err != nil {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Save writes the preset to its file.
func (s *FileStore) Save(ctx context.Context, p *Preset) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(p.ID), data, 0644)
}

// Delete removes the preset's file.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
