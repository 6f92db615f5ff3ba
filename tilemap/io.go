package tilemap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/jakecoffman/cp"
)

type fileDoc struct {
	Tilemap  map[string]fileTile `json:"tilemap"`
	TileSize int                 `json:"tile_size"`
	Offgrid  []fileOffgrid       `json:"offgrid"`
}

type fileTile struct {
	Type    string `json:"type"`
	Variant int    `json:"variant"`
	Pos     [2]int `json:"pos"`
}

type fileOffgrid struct {
	Type    string     `json:"type"`
	Variant int        `json:"variant"`
	Pos     [2]float64 `json:"pos"`
}

// Save writes the map as JSON.
func (m *Tilemap) Save(w io.Writer) error {
	doc := fileDoc{
		Tilemap:  make(map[string]fileTile, len(m.grid)),
		TileSize: m.tileSize,
		Offgrid:  make([]fileOffgrid, 0, len(m.offgrid)),
	}
	for p, t := range m.grid {
		doc.Tilemap[p.Key()] = fileTile{Type: t.Type, Variant: t.Variant, Pos: [2]int{p.X, p.Y}}
	}
	for _, t := range m.offgrid {
		doc.Offgrid = append(doc.Offgrid, fileOffgrid{Type: t.Type, Variant: t.Variant, Pos: [2]float64{t.Pos.X, t.Pos.Y}})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("tilemap: encode: %w", err)
	}
	return nil
}

// Load replaces the map's contents with the JSON document read from r. On
// error the map is left unchanged. The grid key is authoritative over the
// tile's own pos field.
func (m *Tilemap) Load(r io.Reader) error {
	var doc fileDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("tilemap: decode: %w", err)
	}
	if doc.TileSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadTileSize, doc.TileSize)
	}

	keys := make([]string, 0, len(doc.Tilemap))
	for k := range doc.Tilemap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	grid := make(map[Point]Tile, len(doc.Tilemap))
	for _, k := range keys {
		p, err := ParseKey(k)
		if err != nil {
			return err
		}
		ft := doc.Tilemap[k]
		grid[p] = Tile{Type: ft.Type, Variant: ft.Variant, Pos: p}
	}

	offgrid := make([]Offgrid, 0, len(doc.Offgrid))
	for _, fo := range doc.Offgrid {
		offgrid = append(offgrid, Offgrid{Type: fo.Type, Variant: fo.Variant, Pos: cp.Vector{X: fo.Pos[0], Y: fo.Pos[1]}})
	}

	m.tileSize = doc.TileSize
	m.grid = grid
	m.offgrid = offgrid
	return nil
}

func (m *Tilemap) SaveFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("tilemap: save %s: %w", path, err)
		}
	}
	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("tilemap: save %s: %w", path, err)
	}
	return nil
}

func (m *Tilemap) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("tilemap: load %s: %w", path, err)
	}
	defer f.Close()
	if err := m.Load(f); err != nil {
		return fmt.Errorf("tilemap: load %s: %w", path, err)
	}
	return nil
}

// Open builds a map from cfg and loads path into it.
func Open(path string, cfg Config) (*Tilemap, error) {
	m := New(cfg)
	if err := m.LoadFile(path); err != nil {
		return nil, err
	}
	return m, nil
}
