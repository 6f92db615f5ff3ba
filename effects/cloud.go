package effects

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/jakecoffman/cp"
)

// Cloud is a parallax background element. Depth scales how much camera
// scroll affects it.
type Cloud struct {
	Pos     cp.Vector
	Speed   float64
	Depth   float64
	Variant int
}

// NewClouds scatters count clouds, sorted back to front.
func NewClouds(rng *rand.Rand, count, variants int) []Cloud {
	clouds := make([]Cloud, 0, count)
	for range count {
		clouds = append(clouds, Cloud{
			Pos:     cp.Vector{X: rng.Float64() * 99999, Y: rng.Float64() * 99999},
			Speed:   rng.Float64()*0.05 + 0.05,
			Depth:   rng.Float64()*0.6 + 0.2,
			Variant: rng.IntN(max(1, variants)),
		})
	}
	slices.SortFunc(clouds, func(a, b Cloud) int {
		switch {
		case a.Depth < b.Depth:
			return -1
		case a.Depth > b.Depth:
			return 1
		}
		return 0
	})
	return clouds
}

func (c *Cloud) Update() {
	c.Pos.X += c.Speed
}

// ScreenPos wraps the cloud into a view of the given size.
func (c Cloud) ScreenPos(scroll cp.Vector, w, h float64) cp.Vector {
	x := c.Pos.X - scroll.X*c.Depth
	y := c.Pos.Y - scroll.Y*c.Depth
	return cp.Vector{X: wrap(x, w), Y: wrap(y, h)}
}

func wrap(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}
