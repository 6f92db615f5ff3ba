package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/ninja/prefabs"
	"github.com/milk9111/ninja/tilemap"
)

var groups = []prefabs.TileGroupSpec{
	{Type: "decor", Variants: 4},
	{Type: "grass", Variants: 9},
	{Type: "stone", Variants: 9},
}

func newEditor(t *testing.T) *Editor {
	t.Helper()
	e, err := Open(filepath.Join(t.TempDir(), "map.json"), tilemap.DefaultConfig(), groups)
	require.NoError(t, err)
	return e
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	e := newEditor(t)
	assert.Zero(t, e.Map.Len())
	assert.True(t, e.OnGrid)
	assert.Equal(t, tilemap.Kind{Type: "decor"}, e.Current())
}

func TestOpenErrors(t *testing.T) {
	_, err := Open("map.json", tilemap.DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrNoGroups)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = Open(path, tilemap.DefaultConfig(), groups)
	assert.Error(t, err)
}

func TestCycling(t *testing.T) {
	e := newEditor(t)

	e.CycleVariant(-1)
	assert.Equal(t, 3, e.Variant, "variants wrap backwards")

	e.CycleGroup(1)
	assert.Equal(t, tilemap.Kind{Type: "grass"}, e.Current(), "changing group resets the variant")

	e.CycleGroup(-2)
	assert.Equal(t, "stone", e.Current().Type)

	for range 10 {
		e.CycleVariant(1)
	}
	assert.Equal(t, 1, e.Variant)
}

func TestPlaceAndErase(t *testing.T) {
	e := newEditor(t)
	e.CycleGroup(1)
	e.ScrollBy(cp.Vector{X: 16, Y: 0})

	e.Place(cp.Vector{X: 5, Y: 20})
	tile, ok := e.Map.Tile(tilemap.Point{X: 1, Y: 1})
	require.True(t, ok)
	assert.Equal(t, "grass", tile.Type)
	assert.True(t, e.Dirty)

	e.ToggleGrid()
	e.Place(cp.Vector{X: 40, Y: 3})
	require.Len(t, e.Map.Offgrids(), 1)
	assert.Equal(t, cp.Vector{X: 56, Y: 3}, e.Map.Offgrids()[0].Pos)

	assert.Zero(t, e.Erase(cp.Vector{X: 200, Y: 200}))
	assert.Equal(t, 1, e.Erase(cp.Vector{X: 45, Y: 10}), "inside the off-grid tile's box")
	assert.Empty(t, e.Map.Offgrids())
	assert.Equal(t, 1, e.Erase(cp.Vector{X: 1, Y: 17}))
	assert.Zero(t, e.Map.Len())
}

func TestAutotileAndSave(t *testing.T) {
	e := newEditor(t)
	e.CycleGroup(1)
	for x := range 3 {
		for y := range 2 {
			e.Place(cp.Vector{X: float64(x * 16), Y: float64(y * 16)})
		}
	}
	// Every cell of a 3x2 block but the top-left corner needs a new variant.
	assert.Equal(t, 5, e.Autotile())

	require.NoError(t, e.Save())
	assert.False(t, e.Dirty)

	reopened, err := Open(e.Path, tilemap.DefaultConfig(), groups)
	require.NoError(t, err)
	assert.True(t, reopened.Map.Equal(e.Map))

	data, err := e.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tile_size"`)
	assert.Contains(t, e.Status(), "grass:0")
}
