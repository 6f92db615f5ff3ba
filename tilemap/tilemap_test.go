package tilemap

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/ninja/common"
)

func TestPointKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    Point
		wantErr bool
	}{
		{name: "positive", key: "3;4", want: Point{X: 3, Y: 4}},
		{name: "negative", key: "-2;-7", want: Point{X: -2, Y: -7}},
		{name: "no separator", key: "34", wantErr: true},
		{name: "not a number", key: "a;1", wantErr: true},
		{name: "empty half", key: "1;", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.key)
			if tt.wantErr {
				if !errors.Is(err, ErrBadKey) {
					t.Fatalf("expected ErrBadKey, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
			if got.Key() != tt.key {
				t.Fatalf("Key() = %q, want %q", got.Key(), tt.key)
			}
		})
	}
}

func TestSetTileLastWriteWins(t *testing.T) {
	m := New(DefaultConfig())
	m.SetTile("grass", 0, Point{X: 1, Y: 1})
	m.SetTile("stone", 3, Point{X: 1, Y: 1})

	if m.Len() != 1 {
		t.Fatalf("expected one tile, got %d", m.Len())
	}
	got, ok := m.Tile(Point{X: 1, Y: 1})
	if !ok || got.Type != "stone" || got.Variant != 3 {
		t.Fatalf("unexpected tile %+v", got)
	}

	m.RemoveTile(Point{X: 1, Y: 1})
	m.RemoveTile(Point{X: 9, Y: 9})
	if m.Len() != 0 {
		t.Fatalf("expected empty map, got %d tiles", m.Len())
	}
}

func TestTilesAroundOrderAndFloor(t *testing.T) {
	m := New(DefaultConfig())
	m.SetTile("grass", 0, Point{X: -1, Y: -1})
	m.SetTile("grass", 1, Point{X: 0, Y: 0})
	m.SetTile("grass", 2, Point{X: 1, Y: 1})
	m.SetTile("grass", 3, Point{X: 5, Y: 5})

	got := m.TilesAround(cp.Vector{X: 8, Y: 8})
	want := []Point{{X: 1, Y: 1}, {X: 0, Y: 0}, {X: -1, Y: -1}}
	if len(got) != len(want) {
		t.Fatalf("expected %d tiles, got %d: %+v", len(want), len(got), got)
	}
	for i, p := range want {
		if got[i].Pos != p {
			t.Fatalf("tile %d at %v, want %v", i, got[i].Pos, p)
		}
	}

	// -1 px lies in cell -1, whose neighbourhood still reaches (0,0).
	neg := m.TilesAround(cp.Vector{X: -1, Y: -1})
	if len(neg) != 2 {
		t.Fatalf("expected 2 tiles around (-1,-1), got %+v", neg)
	}
}

func TestTilesAroundEmpty(t *testing.T) {
	m := New(DefaultConfig())
	m.SetTile("grass", 0, Point{X: 100, Y: 100})
	if got := m.TilesAround(cp.Vector{X: 0, Y: 0}); len(got) != 0 {
		t.Fatalf("expected no tiles, got %+v", got)
	}
	if got := m.PhysicsRectsAround(cp.Vector{X: 0, Y: 0}); len(got) != 0 {
		t.Fatalf("expected no rects, got %+v", got)
	}
}

func TestPhysicsRectsAroundFiltersDecor(t *testing.T) {
	m := New(DefaultConfig())
	m.SetTile("grass", 0, Point{X: 1, Y: 0})
	m.SetTile("decor", 0, Point{X: 0, Y: 1})

	rects := m.PhysicsRectsAround(cp.Vector{X: 4, Y: 4})
	if len(rects) != 1 {
		t.Fatalf("expected 1 rect, got %+v", rects)
	}
	if rects[0].X != 16 || rects[0].Y != 0 || rects[0].W != 16 || rects[0].H != 16 {
		t.Fatalf("unexpected rect %+v", rects[0])
	}
}

func TestSolidCheck(t *testing.T) {
	m := New(DefaultConfig())
	m.SetTile("decor", 0, Point{X: 0, Y: 0})
	m.SetTile("stone", 2, Point{X: 1, Y: 0})

	if _, ok := m.SolidCheck(cp.Vector{X: 3, Y: 3}); ok {
		t.Fatalf("decor must not be solid")
	}
	if _, ok := m.SolidCheck(cp.Vector{X: 40, Y: 3}); ok {
		t.Fatalf("empty cell must not be solid")
	}
	got, ok := m.SolidCheck(cp.Vector{X: 20, Y: 3})
	if !ok || got.Type != "stone" || got.Variant != 2 {
		t.Fatalf("expected stone tile, got %+v ok=%v", got, ok)
	}
}

func TestExtract(t *testing.T) {
	build := func() *Tilemap {
		m := New(DefaultConfig())
		m.SetTile("spawners", 0, Point{X: 2, Y: 3})
		m.SetTile("spawners", 1, Point{X: 5, Y: 1})
		m.SetTile("grass", 0, Point{X: 0, Y: 0})
		m.AddOffgrid("spawners", 1, cp.Vector{X: 7.5, Y: 9})
		m.AddOffgrid("decor", 0, cp.Vector{X: 1, Y: 1})
		return m
	}
	kinds := []Kind{{Type: "spawners", Variant: 0}, {Type: "spawners", Variant: 1}}

	t.Run("keep", func(t *testing.T) {
		m := build()
		before := m.Clone()
		got := m.Extract(kinds, true)
		if len(got) != 3 {
			t.Fatalf("expected 3 matches, got %+v", got)
		}
		if !m.Equal(before) {
			t.Fatalf("keep=true must leave the map unchanged")
		}
	})

	t.Run("remove", func(t *testing.T) {
		m := build()
		got := m.Extract(kinds, false)
		if len(got) != 3 {
			t.Fatalf("expected 3 matches, got %+v", got)
		}
		if got[0].OnGrid || got[0].Pos != (cp.Vector{X: 7.5, Y: 9}) {
			t.Fatalf("off-grid match must come first, got %+v", got[0])
		}
		if !got[1].OnGrid || got[1].Pos != (cp.Vector{X: 32, Y: 48}) {
			t.Fatalf("grid match must be scaled to pixels, got %+v", got[1])
		}
		if again := m.Extract(kinds, true); len(again) != 0 {
			t.Fatalf("expected matches to be removed, got %+v", again)
		}
		if m.Len() != 1 || len(m.Offgrids()) != 1 {
			t.Fatalf("non-matching tiles must survive, grid=%d offgrid=%d", m.Len(), len(m.Offgrids()))
		}
	})
}

func TestRoundTrip(t *testing.T) {
	m := New(DefaultConfig())
	m.SetTile("grass", 1, Point{X: 3, Y: 4})
	m.SetTile("stone", 8, Point{X: -2, Y: 0})
	m.AddOffgrid("decor", 2, cp.Vector{X: 40.5, Y: 12})
	m.AddOffgrid("large_decor", 2, cp.Vector{X: -3, Y: 7.25})

	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(buf.String(), `"3;4"`) {
		t.Fatalf("expected x;y key in output:\n%s", buf.String())
	}

	loaded := New(Config{TileSize: 8})
	if err := loaded.Load(&buf); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.Equal(m) {
		t.Fatalf("round trip mismatch: %+v vs %+v", loaded.Grid(), m.Grid())
	}
	if loaded.TileSize() != 16 {
		t.Fatalf("expected tile size from file, got %d", loaded.TileSize())
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{name: "bad key", doc: `{"tilemap":{"x":{"type":"grass","variant":0,"pos":[0,0]}},"tile_size":16,"offgrid":[]}`, want: ErrBadKey},
		{name: "zero tile size", doc: `{"tilemap":{},"tile_size":0,"offgrid":[]}`, want: ErrBadTileSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(DefaultConfig())
			m.SetTile("grass", 0, Point{X: 1, Y: 1})
			err := m.Load(strings.NewReader(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if m.Len() != 1 {
				t.Fatalf("failed load must not modify the map")
			}
		})
	}

	t.Run("not json", func(t *testing.T) {
		m := New(DefaultConfig())
		if err := m.Load(strings.NewReader("{")); err == nil {
			t.Fatalf("expected decode error")
		}
	})
}

func TestFileRoundTripAndMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "maps", "0.json")

	m := New(DefaultConfig())
	m.SetTile("grass", 0, Point{X: 0, Y: 0})
	if err := m.SaveFile(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Open(path, DefaultConfig())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !got.Equal(m) {
		t.Fatalf("file round trip mismatch")
	}

	_, err = Open(filepath.Join(dir, "missing.json"), DefaultConfig())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestVisible(t *testing.T) {
	m := New(DefaultConfig())
	m.SetTile("grass", 0, Point{X: 0, Y: 0})
	m.SetTile("grass", 0, Point{X: 2, Y: 1})
	m.SetTile("grass", 0, Point{X: 50, Y: 50})
	m.AddOffgrid("decor", 0, cp.Vector{X: 999, Y: 999})

	got := m.Visible(common.Rect{X: 0, Y: 0, W: 32, H: 16})
	if len(got) != 3 {
		t.Fatalf("expected off-grid plus 2 grid tiles, got %+v", got)
	}
	if got[0].OnGrid {
		t.Fatalf("off-grid tiles are listed first")
	}
	if got[2].Pos != (cp.Vector{X: 32, Y: 16}) {
		t.Fatalf("expected edge cell to be included, got %+v", got[2])
	}
}

func TestBounds(t *testing.T) {
	m := New(DefaultConfig())
	if _, ok := m.Bounds(); ok {
		t.Fatalf("empty map has no bounds")
	}
	m.SetTile("grass", 0, Point{X: -1, Y: 0})
	m.SetTile("grass", 0, Point{X: 2, Y: 3})
	r, ok := m.Bounds()
	if !ok || r.X != -16 || r.Y != 0 || r.W != 64 || r.H != 64 {
		t.Fatalf("unexpected bounds %+v", r)
	}
}
