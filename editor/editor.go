// Package editor holds the level editor's state and edit operations,
// independent of any window or input handling.
package editor

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/ninja/common"
	"github.com/milk9111/ninja/prefabs"
	"github.com/milk9111/ninja/tilemap"
)

var ErrNoGroups = errors.New("editor: no tile groups")

type Editor struct {
	Map    *tilemap.Tilemap
	Path   string
	Groups []prefabs.TileGroupSpec

	Group   int
	Variant int
	// OnGrid places tiles on grid cells; off, tiles go exactly where the
	// cursor is.
	OnGrid bool
	Scroll cp.Vector
	// Dirty is set by any edit and cleared by Save.
	Dirty bool
}

// Open loads path, or starts an empty map when the file does not exist yet.
func Open(path string, cfg tilemap.Config, groups []prefabs.TileGroupSpec) (*Editor, error) {
	if len(groups) == 0 {
		return nil, ErrNoGroups
	}
	m, err := tilemap.Open(path, cfg)
	if errors.Is(err, os.ErrNotExist) {
		m, err = tilemap.New(cfg), nil
	}
	if err != nil {
		return nil, err
	}
	return &Editor{Map: m, Path: path, Groups: groups, OnGrid: true}, nil
}

// Current is the tile kind the next placement uses.
func (e *Editor) Current() tilemap.Kind {
	return tilemap.Kind{Type: e.Groups[e.Group].Type, Variant: e.Variant}
}

// CycleGroup moves to the next (dir > 0) or previous group and resets the
// variant.
func (e *Editor) CycleGroup(dir int) {
	e.Group = wrap(e.Group+dir, len(e.Groups))
	e.Variant = 0
}

func (e *Editor) CycleVariant(dir int) {
	e.Variant = wrap(e.Variant+dir, max(1, e.Groups[e.Group].Variants))
}

func (e *Editor) ToggleGrid() { e.OnGrid = !e.OnGrid }

// ScrollBy pans the view.
func (e *Editor) ScrollBy(d cp.Vector) { e.Scroll = e.Scroll.Add(d) }

// World converts a cursor position in view pixels to world pixels.
func (e *Editor) World(cursor cp.Vector) cp.Vector { return cursor.Add(e.Scroll) }

// Place puts the current kind at the cursor.
func (e *Editor) Place(cursor cp.Vector) {
	k := e.Current()
	pos := e.World(cursor)
	if e.OnGrid {
		e.Map.SetTile(k.Type, k.Variant, e.Map.WorldToGrid(pos))
	} else {
		e.Map.AddOffgrid(k.Type, k.Variant, pos)
	}
	e.Dirty = true
}

// Erase removes the grid tile under the cursor and every off-grid tile whose
// cell-sized box covers it. It returns the number of tiles removed.
func (e *Editor) Erase(cursor cp.Vector) int {
	pos := e.World(cursor)
	n := 0
	at := e.Map.WorldToGrid(pos)
	if _, ok := e.Map.Tile(at); ok {
		e.Map.RemoveTile(at)
		n++
	}
	size := float64(e.Map.TileSize())
	n += e.Map.RemoveOffgridFunc(func(t tilemap.Offgrid) bool {
		return common.Rect{X: t.Pos.X, Y: t.Pos.Y, W: size, H: size}.Contains(pos)
	})
	if n > 0 {
		e.Dirty = true
	}
	return n
}

func (e *Editor) Autotile() int {
	n := e.Map.Autotile()
	if n > 0 {
		e.Dirty = true
	}
	return n
}

func (e *Editor) Save() error {
	if err := e.Map.SaveFile(e.Path); err != nil {
		return err
	}
	e.Dirty = false
	return nil
}

// JSON is the map in its file format.
func (e *Editor) JSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Map.Save(&buf); err != nil {
		return nil, fmt.Errorf("editor: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Status is a one-line summary for the editor's title bar.
func (e *Editor) Status() string {
	mode := "grid"
	if !e.OnGrid {
		mode = "free"
	}
	k := e.Current()
	dirty := ""
	if e.Dirty {
		dirty = " *"
	}
	return fmt.Sprintf("%s%s  %s:%d  %s  tiles %d  offgrid %d",
		e.Path, dirty, k.Type, k.Variant, mode, e.Map.Len(), len(e.Map.Offgrids()))
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
