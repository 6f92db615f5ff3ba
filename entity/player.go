// Package entity holds the player, enemies and projectiles. Each embeds a
// physics.Body and layers its own per-frame rules on top of it.
package entity

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/ninja/common"
	"github.com/milk9111/ninja/physics"
)

const (
	ActionIdle      = "idle"
	ActionRun       = "run"
	ActionJump      = "jump"
	ActionWallSlide = "wall_slide"
)

type PlayerTuning struct {
	Size    cp.Vector
	Physics physics.Tuning

	MaxJumps        int
	FallDeathFrames int
	// AirborneAfter is how many frames off the ground count as airborne
	// for wall slides and the jump animation.
	AirborneAfter    int
	WallSlideMaxFall float64
	JumpVelocity     float64
	// WallJumpLeft is the launch velocity off a wall on the player's left.
	// The mirrored jump uses WallJumpRight.
	WallJumpLeft  cp.Vector
	WallJumpRight cp.Vector
	Friction      float64

	DashFrames  int
	DashAttack  int
	DashSpeed   float64
	DashEndSlow float64
}

func DefaultPlayerTuning() PlayerTuning {
	return PlayerTuning{
		Size:             cp.Vector{X: 8, Y: 15},
		Physics:          physics.DefaultTuning(),
		MaxJumps:         2,
		FallDeathFrames:  300,
		AirborneAfter:    4,
		WallSlideMaxFall: 0.5,
		JumpVelocity:     -3,
		WallJumpLeft:     cp.Vector{X: 2.3, Y: -3},
		WallJumpRight:    cp.Vector{X: -2.3, Y: -2},
		Friction:         0.1,
		DashFrames:       60,
		DashAttack:       50,
		DashSpeed:        8,
		DashEndSlow:      0.1,
	}
}

// PlayerFrame reports what happened during one Player.Update.
type PlayerFrame struct {
	FellOut   bool
	DashPuff  bool
	DashTrail bool
}

type Player struct {
	*physics.Body
	Tuning PlayerTuning

	AirTime   int
	Jumps     int
	WallSlide bool
	// Dashing counts down from ±DashFrames toward zero; the sign is the
	// dash direction.
	Dashing int
}

func NewPlayer(pos cp.Vector, tuning PlayerTuning) *Player {
	return &Player{
		Body:   physics.NewBody("player", pos, tuning.Size, tuning.Physics),
		Tuning: tuning,
		Jumps:  tuning.MaxJumps,
	}
}

// Spawn places the player at pos with no momentum.
func (p *Player) Spawn(pos cp.Vector) {
	p.Pos = pos
	p.Velocity = cp.Vector{}
	p.AirTime = 0
	p.Dashing = 0
	p.WallSlide = false
	p.Jumps = p.Tuning.MaxJumps
}

func (p *Player) Update(q physics.Querier, movement cp.Vector) PlayerFrame {
	var frame PlayerFrame
	p.Body.Update(q, movement)

	p.AirTime++
	if p.AirTime > p.Tuning.FallDeathFrames {
		frame.FellOut = true
	}
	if p.Collisions.Down {
		p.AirTime = 0
		p.Jumps = p.Tuning.MaxJumps
	}

	p.WallSlide = false
	if p.Collisions.Side() && p.AirTime > p.Tuning.AirborneAfter {
		p.WallSlide = true
		p.Velocity.Y = min(p.Velocity.Y, p.Tuning.WallSlideMaxFall)
		p.Flip = !p.Collisions.Right
		p.SetAction(ActionWallSlide)
	}
	if !p.WallSlide {
		switch {
		case p.AirTime > p.Tuning.AirborneAfter:
			p.SetAction(ActionJump)
		case movement.X != 0:
			p.SetAction(ActionRun)
		default:
			p.SetAction(ActionIdle)
		}
	}

	if d := abs(p.Dashing); d == p.Tuning.DashFrames || d == p.Tuning.DashAttack {
		frame.DashPuff = true
	}
	if p.Dashing > 0 {
		p.Dashing--
	} else if p.Dashing < 0 {
		p.Dashing++
	}
	if abs(p.Dashing) > p.Tuning.DashAttack {
		p.Velocity.X = p.DashDir() * p.Tuning.DashSpeed
		if abs(p.Dashing) == p.Tuning.DashAttack+1 {
			p.Velocity.X *= p.Tuning.DashEndSlow
		}
		frame.DashTrail = true
	}

	p.Velocity.X = common.Approach(p.Velocity.X, 0, p.Tuning.Friction)
	return frame
}

// Jump tries a wall jump, then a regular jump, and reports whether one
// happened.
func (p *Player) Jump() bool {
	if p.WallSlide {
		v := p.Tuning.WallJumpRight
		if p.Flip {
			v = p.Tuning.WallJumpLeft
		}
		p.Velocity = v
		p.AirTime = p.Tuning.AirborneAfter + 1
		p.Jumps = 0
		return true
	}
	if p.Jumps > 0 {
		p.Velocity.Y = p.Tuning.JumpVelocity
		p.Jumps--
		p.AirTime = p.Tuning.AirborneAfter + 1
		return true
	}
	return false
}

// Dash starts a dash in the facing direction unless one is running.
func (p *Player) Dash() bool {
	if p.Dashing != 0 {
		return false
	}
	p.Dashing = p.Tuning.DashFrames
	if p.Flip {
		p.Dashing = -p.Tuning.DashFrames
	}
	return true
}

func (p *Player) DashDir() float64 {
	return common.Sign(float64(p.Dashing))
}

// Attacking reports whether the dash is in its fast phase, where it kills
// enemies and ignores projectiles.
func (p *Player) Attacking() bool {
	return abs(p.Dashing) >= p.Tuning.DashAttack
}

// Visible is false during the fast phase of a dash.
func (p *Player) Visible() bool {
	return abs(p.Dashing) <= p.Tuning.DashAttack
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
