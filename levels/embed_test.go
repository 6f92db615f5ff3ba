package levels

import (
	"errors"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/milk9111/ninja/tilemap"
)

func TestEmbeddedLevelsLoad(t *testing.T) {
	cat, err := Embedded()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if cat.Count() < 3 {
		t.Fatalf("expected at least 3 levels, got %d", cat.Count())
	}

	for id := 0; id < cat.Count(); id++ {
		m, err := cat.Load(id, tilemap.DefaultConfig())
		if err != nil {
			t.Fatalf("load %d: %v", id, err)
		}
		players := m.Extract([]tilemap.Kind{{Type: "spawners", Variant: 0}}, true)
		enemies := m.Extract([]tilemap.Kind{{Type: "spawners", Variant: 1}}, true)
		if len(players) != 1 {
			t.Fatalf("level %d: expected one player spawner, got %d", id, len(players))
		}
		if len(enemies) == 0 {
			t.Fatalf("level %d: expected enemies", id)
		}

		before := m.Clone()
		m.Autotile()
		if !m.Equal(before) {
			t.Fatalf("level %d is not saved autotiled", id)
		}
	}
}

func TestCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
		want error
	}{
		{name: "empty", fsys: fstest.MapFS{"readme.md": {}}, want: ErrNoLevels},
		{name: "gap", fsys: fstest.MapFS{"0.json": {}, "2.json": {}}, want: ErrGap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog(tt.fsys); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadOutOfRange(t *testing.T) {
	cat, err := NewCatalog(fstest.MapFS{"0.json": {Data: []byte(`{"tilemap":{},"tile_size":16,"offgrid":[]}`)}})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if _, err := cat.Load(0, tilemap.DefaultConfig()); err != nil {
		t.Fatalf("load 0: %v", err)
	}
	if _, err := cat.Load(1, tilemap.DefaultConfig()); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestOpenReturnsRawJSON(t *testing.T) {
	raw := []byte(`{"tilemap":{},"tile_size":16,"offgrid":[]}`)
	cat, err := NewCatalog(fstest.MapFS{"0.json": {Data: raw}})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	f, err := cat.Open(0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != string(raw) {
		t.Fatalf("got %q", got)
	}
	if _, err := cat.Open(-1); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}
