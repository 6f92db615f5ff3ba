package effects

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Spark is a short streak that flies along Angle and slows by Decay per
// tick until it stops.
type Spark struct {
	Pos   cp.Vector
	Angle float64
	Speed float64
	Decay float64
}

// Update steps the spark and reports whether it has stopped.
func (s *Spark) Update() bool {
	s.Pos = s.Pos.Add(cp.ForAngle(s.Angle).Mult(s.Speed))
	s.Speed = max(0, s.Speed-s.Decay)
	return s.Speed == 0
}

// Points returns the diamond outline of the spark, stretched along its
// heading in proportion to its speed.
func (s Spark) Points() [4]cp.Vector {
	at := func(angle, length float64) cp.Vector {
		return s.Pos.Add(cp.ForAngle(angle).Mult(length))
	}
	return [4]cp.Vector{
		at(s.Angle, s.Speed*3),
		at(s.Angle+math.Pi*0.5, s.Speed*0.5),
		at(s.Angle+math.Pi, s.Speed*3),
		at(s.Angle-math.Pi*0.5, s.Speed*0.5),
	}
}
