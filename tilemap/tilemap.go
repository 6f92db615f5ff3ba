package tilemap

import (
	"errors"
	"slices"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/ninja/common"
)

var (
	ErrBadKey      = errors.New("tilemap: malformed grid key")
	ErrBadTileSize = errors.New("tilemap: tile size must be positive")
)

// neighbourOffsets is the fixed 3x3 scan order used by TilesAround.
var neighbourOffsets = [9]Point{
	{1, 1}, {1, 0}, {1, -1},
	{0, 1}, {0, 0}, {0, -1},
	{-1, 1}, {-1, 0}, {-1, -1},
}

// Tilemap is a sparse grid of tiles plus a list of free-placed tiles.
type Tilemap struct {
	cfg      Config
	tileSize int
	grid     map[Point]Tile
	offgrid  []Offgrid
}

func New(cfg Config) *Tilemap {
	if cfg.TileSize <= 0 {
		cfg.TileSize = DefaultConfig().TileSize
	}
	return &Tilemap{
		cfg:      cfg,
		tileSize: cfg.TileSize,
		grid:     make(map[Point]Tile),
	}
}

func (m *Tilemap) TileSize() int  { return m.tileSize }
func (m *Tilemap) Config() Config { return m.cfg }

// Len returns the number of grid tiles.
func (m *Tilemap) Len() int { return len(m.grid) }

func (m *Tilemap) SetTile(typ string, variant int, at Point) {
	m.grid[at] = Tile{Type: typ, Variant: variant, Pos: at}
}

func (m *Tilemap) RemoveTile(at Point) {
	delete(m.grid, at)
}

func (m *Tilemap) Tile(at Point) (Tile, bool) {
	t, ok := m.grid[at]
	return t, ok
}

func (m *Tilemap) AddOffgrid(typ string, variant int, pos cp.Vector) {
	m.offgrid = append(m.offgrid, Offgrid{Type: typ, Variant: variant, Pos: pos})
}

// RemoveOffgrid removes the first entry equal to t.
func (m *Tilemap) RemoveOffgrid(t Offgrid) bool {
	i := slices.Index(m.offgrid, t)
	if i < 0 {
		return false
	}
	m.offgrid = slices.Delete(m.offgrid, i, i+1)
	return true
}

// RemoveOffgridFunc removes every entry for which match returns true and
// reports how many were removed.
func (m *Tilemap) RemoveOffgridFunc(match func(Offgrid) bool) int {
	kept := make([]Offgrid, 0, len(m.offgrid))
	for _, t := range m.offgrid {
		if !match(t) {
			kept = append(kept, t)
		}
	}
	removed := len(m.offgrid) - len(kept)
	m.offgrid = kept
	return removed
}

func (m *Tilemap) WorldToGrid(pos cp.Vector) Point {
	return Point{X: common.FloorDiv(pos.X, m.tileSize), Y: common.FloorDiv(pos.Y, m.tileSize)}
}

func (m *Tilemap) GridToWorld(p Point) cp.Vector {
	return cp.Vector{X: float64(p.X * m.tileSize), Y: float64(p.Y * m.tileSize)}
}

// TilesAround returns the grid tiles in the 3x3 block centred on the cell
// containing pos.
func (m *Tilemap) TilesAround(pos cp.Vector) []Tile {
	center := m.WorldToGrid(pos)
	var out []Tile
	for _, off := range neighbourOffsets {
		if t, ok := m.grid[center.Add(off)]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Extract returns copies of every tile whose kind is listed, off-grid tiles
// first, grid tiles rescaled to world pixels. Unless keep is set the matches
// are removed from the map.
func (m *Tilemap) Extract(kinds []Kind, keep bool) []Placed {
	want := make(map[Kind]struct{}, len(kinds))
	for _, k := range kinds {
		want[k] = struct{}{}
	}
	matches := func(k Kind) bool {
		_, ok := want[k]
		return ok
	}

	var out []Placed
	for _, t := range m.offgrid {
		if matches(t.Kind()) {
			out = append(out, Placed{Type: t.Type, Variant: t.Variant, Pos: t.Pos})
		}
	}

	var hits []Point
	for _, t := range m.Grid() {
		if matches(t.Kind()) {
			out = append(out, Placed{Type: t.Type, Variant: t.Variant, Pos: m.GridToWorld(t.Pos), OnGrid: true})
			hits = append(hits, t.Pos)
		}
	}

	if !keep {
		m.RemoveOffgridFunc(func(t Offgrid) bool { return matches(t.Kind()) })
		for _, p := range hits {
			delete(m.grid, p)
		}
	}
	return out
}

// Grid returns a snapshot of the grid tiles ordered by X then Y.
func (m *Tilemap) Grid() []Tile {
	out := make([]Tile, 0, len(m.grid))
	for _, t := range m.grid {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b Tile) int {
		if a.Pos.X != b.Pos.X {
			return a.Pos.X - b.Pos.X
		}
		return a.Pos.Y - b.Pos.Y
	})
	return out
}

func (m *Tilemap) Offgrids() []Offgrid {
	return slices.Clone(m.offgrid)
}

// Bounds returns the world-pixel box covering every tile. ok is false for an
// empty map.
func (m *Tilemap) Bounds() (r common.Rect, ok bool) {
	ts := float64(m.tileSize)
	for _, t := range m.grid {
		cell := common.NewRect(m.GridToWorld(t.Pos), cp.Vector{X: ts, Y: ts})
		r, ok = grow(r, ok, cell), true
	}
	for _, t := range m.offgrid {
		cell := common.NewRect(t.Pos, cp.Vector{X: ts, Y: ts})
		r, ok = grow(r, ok, cell), true
	}
	return r, ok
}

func grow(r common.Rect, ok bool, cell common.Rect) common.Rect {
	if !ok {
		return cell
	}
	return r.Union(cell)
}

func (m *Tilemap) Clone() *Tilemap {
	c := &Tilemap{
		cfg:      m.cfg,
		tileSize: m.tileSize,
		grid:     make(map[Point]Tile, len(m.grid)),
		offgrid:  slices.Clone(m.offgrid),
	}
	for k, v := range m.grid {
		c.grid[k] = v
	}
	return c
}

// Equal compares tile size, grid and off-grid contents. Off-grid order matters.
func (m *Tilemap) Equal(other *Tilemap) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.tileSize != other.tileSize || len(m.grid) != len(other.grid) {
		return false
	}
	for k, v := range m.grid {
		if ov, ok := other.grid[k]; !ok || ov != v {
			return false
		}
	}
	return slices.Equal(m.offgrid, other.offgrid)
}
