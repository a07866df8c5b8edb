package preset

import (
	"context"
	"errors"
	"testing"

	"github.com/tilecraft/isocam/pkg/blender"
)

func testDims() blender.Dimensions {
	return blender.Dimensions{TileSize: 32, XTiles: 2, YTiles: 2, ZTiles: 4}
}

func TestNew(t *testing.T) {
	p, err := New("crate", testDims())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if p.ID == "" {
		t.Error("New should assign an ID")
	}
	if p.Name != "crate" {
		t.Errorf("Name = %q, want %q", p.Name, "crate")
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}

	p2, err := New("crate", testDims())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if p.ID == p2.ID {
		t.Error("IDs should be unique")
	}
}

func TestNewInvalidName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t"} {
		if _, err := New(name, testDims()); !errors.Is(err, ErrInvalidName) {
			t.Errorf("New(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}

// storeTest exercises the Store contract against any backend.
func storeTest(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	// Empty store
	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on empty store = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete on empty store = %v, want ErrNotFound", err)
	}

	// Save and retrieve
	p, err := New("barrel", testDims())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != p.Name || got.Dimensions != p.Dimensions {
		t.Errorf("Get = %+v, want %+v", got, p)
	}

	// List is name-ordered
	q, _ := New("anvil", blender.Dimensions{TileSize: 16, XTiles: 1, YTiles: 1, ZTiles: 1})
	if err := s.Save(ctx, q); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List returned %d presets, want 2", len(all))
	}
	if all[0].Name != "anvil" || all[1].Name != "barrel" {
		t.Errorf("List order = [%s, %s], want [anvil, barrel]", all[0].Name, all[1].Name)
	}

	// Overwrite keeps a single entry
	p.Dimensions.ZTiles = 9
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save (overwrite) error: %v", err)
	}
	got, err = s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Dimensions.ZTiles != 9 {
		t.Errorf("overwritten ZTiles = %d, want 9", got.Dimensions.ZTiles)
	}

	// FindByName
	found, err := FindByName(ctx, s, "anvil")
	if err != nil {
		t.Fatalf("FindByName error: %v", err)
	}
	if found.ID != q.ID {
		t.Errorf("FindByName ID = %s, want %s", found.ID, q.ID)
	}
	if _, err := FindByName(ctx, s, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByName(ghost) = %v, want ErrNotFound", err)
	}

	// Delete
	if err := s.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	storeTest(t, s)
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	p, _ := New("crate", testDims())
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	// Mutating the caller's preset must not affect the stored copy.
	p.Name = "mutated"
	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != "crate" {
		t.Errorf("stored name = %q, want %q", got.Name, "crate")
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	defer s.Close()
	storeTest(t, s)
}

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	p, _ := New("crate", testDims())
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	s.Close()

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore (reopen) error: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get after reopen error: %v", err)
	}
	if got.Name != p.Name || got.Dimensions != p.Dimensions {
		t.Errorf("reopened preset = %+v, want %+v", got, p)
	}
}
