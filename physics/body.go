// Package physics resolves axis-aligned bodies against static tile geometry.
package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/ninja/common"
)

// Querier supplies the solid rectangles near a position.
type Querier interface {
	PhysicsRectsAround(pos cp.Vector) []common.Rect
}

// Collisions records which sides touched solid geometry during the most
// recent Update.
type Collisions struct {
	Up, Down, Left, Right bool
}

func (c Collisions) Any() bool { return c.Up || c.Down || c.Left || c.Right }

func (c Collisions) Side() bool { return c.Left || c.Right }

type Tuning struct {
	Gravity float64
	MaxFall float64
}

func DefaultTuning() Tuning {
	return Tuning{Gravity: 0.1, MaxFall: 5}
}

// Body is an axis-aligned box moved by per-frame input plus its own velocity.
type Body struct {
	Kind         string
	Pos          cp.Vector
	Size         cp.Vector
	Velocity     cp.Vector
	Collisions   Collisions
	Flip         bool
	LastMovement cp.Vector
	Action       string
	Tuning       Tuning
}

func NewBody(kind string, pos, size cp.Vector, tuning Tuning) *Body {
	return &Body{
		Kind:   kind,
		Pos:    pos,
		Size:   size,
		Tuning: tuning,
	}
}

func (b *Body) Rect() common.Rect {
	return common.NewRect(b.Pos, b.Size)
}

func (b *Body) Center() cp.Vector {
	return b.Rect().Center()
}

// SetAction switches the current action and reports whether it changed.
func (b *Body) SetAction(action string) bool {
	if b.Action == action {
		return false
	}
	b.Action = action
	return true
}

// Update advances the body one frame. X is resolved fully before Y so a body
// sliding along a floor never snags on tile seams.
func (b *Body) Update(q Querier, movement cp.Vector) {
	b.Collisions = Collisions{}
	frame := movement.Add(b.Velocity)

	b.Pos.X += frame.X
	r := b.Rect()
	for _, solid := range q.PhysicsRectsAround(b.Pos) {
		if !r.Intersects(solid) {
			continue
		}
		if frame.X > 0 {
			r.X = solid.Left() - r.W
			b.Collisions.Right = true
		}
		if frame.X < 0 {
			r.X = solid.Right()
			b.Collisions.Left = true
		}
		b.Pos.X = r.X
	}

	b.Pos.Y += frame.Y
	r = b.Rect()
	for _, solid := range q.PhysicsRectsAround(b.Pos) {
		if !r.Intersects(solid) {
			continue
		}
		if frame.Y > 0 {
			r.Y = solid.Top() - r.H
			b.Collisions.Down = true
		}
		if frame.Y < 0 {
			r.Y = solid.Bottom()
			b.Collisions.Up = true
		}
		b.Pos.Y = r.Y
	}

	if movement.X > 0 {
		b.Flip = false
	}
	if movement.X < 0 {
		b.Flip = true
	}
	b.LastMovement = movement

	b.Velocity.Y = min(b.Tuning.MaxFall, b.Velocity.Y+b.Tuning.Gravity)
	if b.Collisions.Down || b.Collisions.Up {
		b.Velocity.Y = 0
	}
}
