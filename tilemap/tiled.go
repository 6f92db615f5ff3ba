package tilemap

import (
	"fmt"
	"io/fs"
	"strconv"

	"github.com/jakecoffman/cp"
	"github.com/lafriks/go-tiled"
)

// ImportTMX converts a Tiled map into a Tilemap. Tile layers become grid
// tiles and object groups become off-grid tiles. A tile's type comes from the
// tileset property "type" and falls back to the layer name; its variant comes
// from the property "variant" and falls back to the tile ID. Objects read the
// same properties and fall back to the group name and variant 0.
func ImportTMX(fsys fs.FS, path string, cfg Config) (*Tilemap, error) {
	tm, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("tilemap: load TMX %s: %w", path, err)
	}
	if tm.TileWidth <= 0 || tm.TileWidth != tm.TileHeight {
		return nil, fmt.Errorf("%w: TMX tiles are %dx%d", ErrBadTileSize, tm.TileWidth, tm.TileHeight)
	}

	cfg.TileSize = tm.TileWidth
	m := New(cfg)

	for _, layer := range tm.Layers {
		for y := 0; y < tm.Height; y++ {
			for x := 0; x < tm.Width; x++ {
				i := y*tm.Width + x
				if i >= len(layer.Tiles) {
					continue
				}
				tile := layer.Tiles[i]
				if tile == nil || tile.IsNil() {
					continue
				}
				typ := layer.Name
				variant := int(tile.ID)
				if tile.Tileset != nil {
					if ts, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
						typ = stringOr(ts.Properties.GetString("type"), typ)
						variant = intOr(ts.Properties.GetString("variant"), variant)
					}
				}
				m.SetTile(typ, variant, Point{X: x, Y: y})
			}
		}
	}

	for _, og := range tm.ObjectGroups {
		for _, o := range og.Objects {
			typ := stringOr(o.Properties.GetString("type"), og.Name)
			variant := intOr(o.Properties.GetString("variant"), 0)
			m.AddOffgrid(typ, variant, cp.Vector{X: o.X, Y: o.Y})
		}
	}
	return m, nil
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func intOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
