// Package levels lists and loads the numbered level maps.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/milk9111/ninja/tilemap"
)

//go:embed *.json
var LevelsFS embed.FS

var (
	ErrNoLevels = errors.New("levels: no levels found")
	ErrGap      = errors.New("levels: level ids must run 0..n-1")
)

// Catalog is a set of levels stored as "<id>.json" in one directory.
type Catalog struct {
	fsys fs.FS
	ids  []int
}

func NewCatalog(fsys fs.FS) (*Catalog, error) {
	matches, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("levels: glob: %w", err)
	}

	var ids []int
	for _, m := range matches {
		id, err := strconv.Atoi(strings.TrimSuffix(path.Base(m), ".json"))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, ErrNoLevels
	}
	slices.Sort(ids)
	for i, id := range ids {
		if id != i {
			return nil, fmt.Errorf("%w: missing %d.json", ErrGap, i)
		}
	}
	return &Catalog{fsys: fsys, ids: ids}, nil
}

func Embedded() (*Catalog, error) {
	return NewCatalog(LevelsFS)
}

func Dir(dir string) (*Catalog, error) {
	return NewCatalog(os.DirFS(dir))
}

func (c *Catalog) Count() int { return len(c.ids) }

func (c *Catalog) Last() int { return len(c.ids) - 1 }

func (c *Catalog) Name(id int) string { return strconv.Itoa(id) + ".json" }

// Open returns the raw JSON of level id.
func (c *Catalog) Open(id int) (fs.File, error) {
	if id < 0 || id >= len(c.ids) {
		return nil, fmt.Errorf("levels: open %d: %w", id, fs.ErrNotExist)
	}
	f, err := c.fsys.Open(c.Name(id))
	if err != nil {
		return nil, fmt.Errorf("levels: open %d: %w", id, err)
	}
	return f, nil
}

// Load reads level id into a new tilemap built from cfg.
func (c *Catalog) Load(id int, cfg tilemap.Config) (*tilemap.Tilemap, error) {
	f, err := c.Open(id)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := tilemap.New(cfg)
	if err := m.Load(f); err != nil {
		return nil, fmt.Errorf("levels: load %d: %w", id, err)
	}
	return m, nil
}
