package tilemap

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/ninja/common"
)

// PhysicsRectsAround returns collision boxes for the physics-enabled tiles
// near pos, in TilesAround order.
func (m *Tilemap) PhysicsRectsAround(pos cp.Vector) []common.Rect {
	ts := float64(m.tileSize)
	var rects []common.Rect
	for _, t := range m.TilesAround(pos) {
		if !m.cfg.PhysicsTypes.Has(t.Type) {
			continue
		}
		rects = append(rects, common.NewRect(m.GridToWorld(t.Pos), cp.Vector{X: ts, Y: ts}))
	}
	return rects
}

// SolidCheck reports the physics-enabled tile occupying the cell at pos.
func (m *Tilemap) SolidCheck(pos cp.Vector) (Tile, bool) {
	t, ok := m.grid[m.WorldToGrid(pos)]
	if !ok || !m.cfg.PhysicsTypes.Has(t.Type) {
		return Tile{}, false
	}
	return t, true
}
