package tilemap

// Autotile recomputes the variant of every autotile-eligible grid tile from
// its same-type cardinal neighbours. Signatures missing from the rule table
// leave the variant alone. It returns how many tiles changed.
func (m *Tilemap) Autotile() int {
	changed := 0
	for _, t := range m.Grid() {
		if !m.cfg.AutotileTypes.Has(t.Type) {
			continue
		}
		variant, ok := m.cfg.Rules.Lookup(m.signature(t))
		if !ok || variant == t.Variant {
			continue
		}
		t.Variant = variant
		m.grid[t.Pos] = t
		changed++
	}
	return changed
}

func (m *Tilemap) signature(t Tile) Signature {
	var s Signature
	for _, d := range directionOffsets {
		if n, ok := m.grid[t.Pos.Add(d.off)]; ok && n.Type == t.Type {
			s |= Signature(d.dir)
		}
	}
	return s
}
