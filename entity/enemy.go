package entity

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/ninja/physics"
	"github.com/milk9111/ninja/tilemap"
)

// Terrain is what an enemy needs from the level: collision rects and point
// probes.
type Terrain interface {
	physics.Querier
	SolidCheck(pos cp.Vector) (tilemap.Tile, bool)
}

type EnemyTuning struct {
	Size    cp.Vector
	Physics physics.Tuning

	WalkSpeed float64
	// GroundProbe is the offset from the enemy's centre x and top y that
	// must be solid for it to keep walking.
	GroundProbe     cp.Vector
	MuzzleOffset    float64
	ProjectileSpeed float64
	WalkChance      float64
	WalkMin         int
	WalkMax         int
	ShootRangeY     float64
}

func DefaultEnemyTuning() EnemyTuning {
	return EnemyTuning{
		Size:            cp.Vector{X: 8, Y: 15},
		Physics:         physics.DefaultTuning(),
		WalkSpeed:       0.5,
		GroundProbe:     cp.Vector{X: 7, Y: 23},
		MuzzleOffset:    7,
		ProjectileSpeed: 1.5,
		WalkChance:      0.01,
		WalkMin:         30,
		WalkMax:         120,
		ShootRangeY:     16,
	}
}

// Senses is the enemy's view of the world for one decision. Random draws
// are made by the caller so brains stay deterministic.
type Senses struct {
	Flip        bool
	PlayerDelta cp.Vector
	// Roll is uniform in [0, 1). WalkRoll is a candidate walk duration.
	Roll     float64
	WalkRoll int

	WalkChance  float64
	ShootRangeY float64
}

// Brain decides when an enemy starts walking and whether it fires at the
// end of a walk.
type Brain interface {
	// Idle returns how many frames to walk for, or 0 to stay put.
	Idle(s Senses) int
	ShouldShoot(s Senses) bool
}

// EnemyFrame reports what happened during one Enemy.Update.
type EnemyFrame struct {
	Shot *Projectile
}

type Enemy struct {
	*physics.Body
	Tuning  EnemyTuning
	Brain   Brain
	Walking int
}

func NewEnemy(pos cp.Vector, tuning EnemyTuning, brain Brain) *Enemy {
	if brain == nil {
		brain = PatrolBrain{}
	}
	return &Enemy{
		Body:   physics.NewBody("enemy", pos, tuning.Size, tuning.Physics),
		Tuning: tuning,
		Brain:  brain,
	}
}

// Senses fills in the enemy-specific fields of s.
func (e *Enemy) Senses(player cp.Vector, roll float64, walkRoll int) Senses {
	return Senses{
		Flip:        e.Flip,
		PlayerDelta: player.Sub(e.Pos),
		Roll:        roll,
		WalkRoll:    walkRoll,
		WalkChance:  e.Tuning.WalkChance,
		ShootRangeY: e.Tuning.ShootRangeY,
	}
}

// Update patrols while walking, turning at walls and ledges, and may fire
// when a walk ends. Otherwise it asks the brain whether to start walking.
func (e *Enemy) Update(t Terrain, s Senses) EnemyFrame {
	var frame EnemyFrame
	var movement cp.Vector

	if e.Walking > 0 {
		if _, ground := t.SolidCheck(e.probe()); ground {
			if e.Collisions.Side() {
				e.Flip = !e.Flip
			} else {
				movement.X = e.facing() * e.Tuning.WalkSpeed
			}
		} else {
			e.Flip = !e.Flip
		}

		e.Walking--
		if e.Walking == 0 {
			s.Flip = e.Flip
			if e.Brain.ShouldShoot(s) {
				frame.Shot = e.fire()
			}
		}
	} else if n := e.Brain.Idle(s); n > 0 {
		e.Walking = n
	}

	e.Body.Update(t, movement)
	if movement.X != 0 {
		e.SetAction(ActionRun)
	} else {
		e.SetAction(ActionIdle)
	}
	return frame
}

// HitBy reports whether a dashing player is cutting through the enemy.
func (e *Enemy) HitBy(p *Player) bool {
	return p.Attacking() && e.Rect().Intersects(p.Rect())
}

func (e *Enemy) facing() float64 {
	if e.Flip {
		return -1
	}
	return 1
}

func (e *Enemy) probe() cp.Vector {
	return cp.Vector{
		X: e.Center().X + e.facing()*e.Tuning.GroundProbe.X,
		Y: e.Pos.Y + e.Tuning.GroundProbe.Y,
	}
}

func (e *Enemy) fire() *Projectile {
	c := e.Center()
	return &Projectile{
		Pos:   cp.Vector{X: c.X + e.facing()*e.Tuning.MuzzleOffset, Y: c.Y},
		Speed: e.facing() * e.Tuning.ProjectileSpeed,
	}
}
