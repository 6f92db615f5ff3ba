package effects

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	KindLeaf     = "leaf"
	KindParticle = "particle"
)

// Drift is a sideways sway applied after each step, driven by the
// animation tick.
type Drift struct {
	Frequency float64
	Amplitude float64
}

type Particle struct {
	Kind     string
	Pos      cp.Vector
	Velocity cp.Vector
	Anim     Animation
	Drift    Drift
}

// Update steps the particle and reports whether it should be removed. The
// check happens before the step, so a finished particle is drawn once more.
func (p *Particle) Update() bool {
	kill := p.Anim.Done
	p.Pos = p.Pos.Add(p.Velocity)
	p.Anim.Update()
	if p.Drift.Amplitude != 0 {
		p.Pos.X += math.Sin(float64(p.Anim.Tick)*p.Drift.Frequency) * p.Drift.Amplitude
	}
	return kill
}
