package tilemap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
)

// Point is a grid cell coordinate. It is the in-memory key of the grid; the
// "x;y" string form only exists in persisted files.
type Point struct {
	X, Y int
}

func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

func (p Point) Key() string {
	return strconv.Itoa(p.X) + ";" + strconv.Itoa(p.Y)
}

func (p Point) String() string { return p.Key() }

// ParseKey parses the persisted "x;y" form of a grid key.
func ParseKey(key string) (Point, error) {
	xs, ys, ok := strings.Cut(key, ";")
	if !ok {
		return Point{}, fmt.Errorf("%w: %q", ErrBadKey, key)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Point{}, fmt.Errorf("%w: %q", ErrBadKey, key)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Point{}, fmt.Errorf("%w: %q", ErrBadKey, key)
	}
	return Point{X: x, Y: y}, nil
}

// Kind identifies a tile by type and variant.
type Kind struct {
	Type    string
	Variant int
}

func (k Kind) String() string { return fmt.Sprintf("%s/%d", k.Type, k.Variant) }

// Tile is a grid-aligned tile.
type Tile struct {
	Type    string
	Variant int
	Pos     Point
}

func (t Tile) Kind() Kind { return Kind{Type: t.Type, Variant: t.Variant} }

// Offgrid is a free-placed decorative tile in world pixels.
type Offgrid struct {
	Type    string
	Variant int
	Pos     cp.Vector
}

func (t Offgrid) Kind() Kind { return Kind{Type: t.Type, Variant: t.Variant} }

// Placed is a tile copy in world pixels, as handed to spawners and renderers.
type Placed struct {
	Type    string
	Variant int
	Pos     cp.Vector
	OnGrid  bool
}

func (p Placed) Kind() Kind { return Kind{Type: p.Type, Variant: p.Variant} }
