package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tilecraft/isocam/pkg/blender"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up", "down", "tab", "enter", "backspace", "esc":
		types := map[string]tea.KeyType{
			"up":        tea.KeyUp,
			"down":      tea.KeyDown,
			"tab":       tea.KeyTab,
			"enter":     tea.KeyEnter,
			"backspace": tea.KeyBackspace,
			"esc":       tea.KeyEsc,
		}
		return tea.KeyMsg{Type: types[s]}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m FormModel, keys ...string) FormModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(FormModel)
		if !ok {
			t.Fatalf("Update returned %T, want FormModel", next)
		}
	}
	return m
}

func TestFormModelInitialSettings(t *testing.T) {
	d := blender.Dimensions{TileSize: 32, XTiles: 3, YTiles: 3, ZTiles: 1}
	m := NewFormModel(d)

	want := blender.Compute(d)
	if m.Settings != want {
		t.Errorf("initial settings = %+v, want %+v", m.Settings, want)
	}
}

func TestFormModelNavigation(t *testing.T) {
	m := NewFormModel(blender.Dimensions{TileSize: 32, XTiles: 1, YTiles: 1, ZTiles: 1})

	if m.Cursor != fieldTileSize {
		t.Fatalf("initial cursor = %d, want %d", m.Cursor, fieldTileSize)
	}

	m = update(t, m, "down", "down")
	if m.Cursor != fieldY {
		t.Errorf("cursor after two downs = %d, want %d", m.Cursor, fieldY)
	}

	m = update(t, m, "up")
	if m.Cursor != fieldX {
		t.Errorf("cursor after up = %d, want %d", m.Cursor, fieldX)
	}

	// Cursor clamps at both ends.
	m = update(t, m, "up", "up", "up")
	if m.Cursor != fieldTileSize {
		t.Errorf("cursor should clamp at first field, got %d", m.Cursor)
	}
	m = update(t, m, "down", "down", "down", "down", "down")
	if m.Cursor != fieldZ {
		t.Errorf("cursor should clamp at last field, got %d", m.Cursor)
	}
}

func TestFormModelEditingRecomputes(t *testing.T) {
	m := NewFormModel(blender.Dimensions{TileSize: 32, XTiles: 1, YTiles: 1, ZTiles: 1})

	// Clear the x field and type "3".
	m = update(t, m, "down", "backspace", "3")
	if got := m.Fields[fieldX]; got != "3" {
		t.Fatalf("x field = %q, want %q", got, "3")
	}

	want := blender.Compute(blender.Dimensions{TileSize: 32, XTiles: 3, YTiles: 1, ZTiles: 1})
	if m.Settings != want {
		t.Errorf("settings after edit = %+v, want %+v", m.Settings, want)
	}
}

func TestFormModelEmptyFieldComputesAsZero(t *testing.T) {
	m := NewFormModel(blender.Dimensions{TileSize: 32, XTiles: 1, YTiles: 1, ZTiles: 1})

	// Empty out the z field entirely.
	m = update(t, m, "down", "down", "down", "backspace")
	if got := m.Fields[fieldZ]; got != "" {
		t.Fatalf("z field = %q, want empty", got)
	}

	want := blender.Compute(blender.Dimensions{TileSize: 32, XTiles: 1, YTiles: 1, ZTiles: 0})
	if m.Settings != want {
		t.Errorf("settings with empty z = %+v, want %+v", m.Settings, want)
	}
}

func TestFormModelIgnoresNonDigits(t *testing.T) {
	m := NewFormModel(blender.Dimensions{TileSize: 32, XTiles: 1, YTiles: 1, ZTiles: 1})
	before := m.Fields[fieldTileSize]

	m = update(t, m, "a", "-", ".")
	if got := m.Fields[fieldTileSize]; got != before {
		t.Errorf("field changed to %q on non-digit input, want %q", got, before)
	}
}

func TestFormModelQuit(t *testing.T) {
	m := NewFormModel(blender.Dimensions{TileSize: 32, XTiles: 1, YTiles: 1, ZTiles: 1})

	for _, key := range []string{"q", "esc"} {
		_, cmd := m.Update(keyMsg(key))
		if cmd == nil {
			t.Errorf("key %q should quit", key)
		}
	}
}

func TestFormModelView(t *testing.T) {
	m := NewFormModel(blender.Dimensions{TileSize: 32, XTiles: 3, YTiles: 3, ZTiles: 1})
	view := m.View()

	for _, want := range []string{"tile size", "x tiles", "y tiles", "z tiles", "width", "height", "scale"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
