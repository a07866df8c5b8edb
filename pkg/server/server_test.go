package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tilecraft/isocam/pkg/blender"
	"github.com/tilecraft/isocam/pkg/preset"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(preset.NewMemoryStore(), nil))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestComputeSettings(t *testing.T) {
	srv := newTestServer(t)
	dims := blender.Dimensions{TileSize: 32, XTiles: 3, YTiles: 3, ZTiles: 1}

	resp := postJSON(t, srv.URL+"/v1/settings", dims)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	got := decode[blender.Settings](t, resp)

	want := blender.Compute(dims)
	if got.Width != want.Width || got.Height != want.Height {
		t.Errorf("frame = %dx%d, want %dx%d", got.Width, got.Height, want.Width, want.Height)
	}
	if math.Abs(got.Scale-want.Scale) > 1e-9 {
		t.Errorf("scale = %v, want %v", got.Scale, want.Scale)
	}
}

func TestComputeSettingsClampsNegatives(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/v1/settings",
		blender.Dimensions{TileSize: 32, XTiles: -4, YTiles: 2, ZTiles: 1})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	got := decode[blender.Settings](t, resp)
	want := blender.Compute(blender.Dimensions{TileSize: 32, XTiles: 0, YTiles: 2, ZTiles: 1})
	if got != want {
		t.Errorf("settings = %+v, want negatives coerced to zero: %+v", got, want)
	}
}

func TestComputeSettingsBadPayload(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/v1/settings", "application/json", bytes.NewBufferString("{not json"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPresetLifecycle(t *testing.T) {
	srv := newTestServer(t)
	dims := blender.Dimensions{TileSize: 16, XTiles: 1, YTiles: 1, ZTiles: 5}

	// Create
	resp := postJSON(t, srv.URL+"/v1/presets", map[string]any{
		"name":       "tower",
		"dimensions": dims,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	created := decode[preset.Preset](t, resp)
	if created.ID == "" || created.Name != "tower" {
		t.Fatalf("created = %+v", created)
	}

	// List
	resp, err := http.Get(srv.URL + "/v1/presets")
	if err != nil {
		t.Fatal(err)
	}
	all := decode[[]preset.Preset](t, resp)
	if len(all) != 1 || all[0].ID != created.ID {
		t.Errorf("list = %+v", all)
	}

	// Fetch
	resp, err = http.Get(srv.URL + "/v1/presets/" + created.ID)
	if err != nil {
		t.Fatal(err)
	}
	fetched := decode[preset.Preset](t, resp)
	if fetched.Dimensions != dims {
		t.Errorf("fetched dimensions = %+v, want %+v", fetched.Dimensions, dims)
	}

	// Settings from stored inputs
	resp, err = http.Get(fmt.Sprintf("%s/v1/presets/%s/settings", srv.URL, created.ID))
	if err != nil {
		t.Fatal(err)
	}
	settings := decode[blender.Settings](t, resp)
	if want := blender.Compute(dims); settings != want {
		t.Errorf("preset settings = %+v, want %+v", settings, want)
	}

	// Delete
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/presets/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}

	// Gone
	resp, err = http.Get(srv.URL + "/v1/presets/" + created.ID)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("fetch after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestCreatePresetEmptyName(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/v1/presets", map[string]any{
		"name":       "  ",
		"dimensions": blender.Dimensions{TileSize: 32},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUnknownPreset(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/presets/no-such-id")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
