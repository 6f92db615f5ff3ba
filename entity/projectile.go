package entity

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Projectile is a bullet travelling horizontally at Speed pixels per frame.
type Projectile struct {
	Pos   cp.Vector
	Speed float64
	Age   int
}

func (p *Projectile) Step() {
	p.Pos.X += p.Speed
	p.Age++
}

// Heading is the angle of travel, 0 for right and pi for left.
func (p *Projectile) Heading() float64 {
	if p.Speed < 0 {
		return math.Pi
	}
	return 0
}
