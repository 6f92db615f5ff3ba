package tilemap

import "github.com/milk9111/ninja/common"

// Visible lists what a renderer should draw for the given view: every
// off-grid tile, then grid tiles in the cells the view covers, column by
// column.
func (m *Tilemap) Visible(view common.Rect) []Placed {
	out := make([]Placed, 0, len(m.offgrid))
	for _, t := range m.offgrid {
		out = append(out, Placed{Type: t.Type, Variant: t.Variant, Pos: t.Pos})
	}

	x0 := common.FloorDiv(view.X, m.tileSize)
	x1 := common.FloorDiv(view.X+view.W, m.tileSize)
	y0 := common.FloorDiv(view.Y, m.tileSize)
	y1 := common.FloorDiv(view.Y+view.H, m.tileSize)
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			t, ok := m.grid[Point{X: x, Y: y}]
			if !ok {
				continue
			}
			out = append(out, Placed{Type: t.Type, Variant: t.Variant, Pos: m.GridToWorld(t.Pos), OnGrid: true})
		}
	}
	return out
}
