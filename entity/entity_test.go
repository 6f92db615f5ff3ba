package entity

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/ninja/tilemap"
)

// floor builds a strip of stone from x0 to x1 (inclusive) on row y.
func floor(x0, x1, y int) *tilemap.Tilemap {
	m := tilemap.New(tilemap.DefaultConfig())
	for x := x0; x <= x1; x++ {
		m.SetTile("stone", 0, tilemap.Point{X: x, Y: y})
	}
	return m
}

func TestPlayerLandsAndRefillsJumps(t *testing.T) {
	m := floor(0, 4, 2)
	p := NewPlayer(cp.Vector{X: 20, Y: 10}, DefaultPlayerTuning())
	p.Jumps = 0
	p.AirTime = 40

	for i := 0; i < 60 && !p.Collisions.Down; i++ {
		p.Update(m, cp.Vector{})
	}

	assert.True(t, p.Collisions.Down)
	assert.Equal(t, 0, p.AirTime)
	assert.Equal(t, 2, p.Jumps)
	assert.Equal(t, ActionIdle, p.Action)
	assert.InDelta(t, 17.0, p.Pos.Y, 1e-9)
}

func TestPlayerJumpsTwiceThenStops(t *testing.T) {
	p := NewPlayer(cp.Vector{}, DefaultPlayerTuning())

	require.True(t, p.Jump())
	assert.Equal(t, -3.0, p.Velocity.Y)
	assert.Equal(t, 5, p.AirTime)
	require.True(t, p.Jump())
	assert.False(t, p.Jump())
	assert.Equal(t, 0, p.Jumps)
}

func TestPlayerWallSlideAndWallJump(t *testing.T) {
	m := tilemap.New(tilemap.DefaultConfig())
	for y := -2; y <= 3; y++ {
		m.SetTile("stone", 0, tilemap.Point{X: 2, Y: y})
	}
	p := NewPlayer(cp.Vector{X: 24, Y: 0}, DefaultPlayerTuning())
	p.AirTime = 10
	p.Velocity.Y = 3

	p.Update(m, cp.Vector{X: 1})

	require.True(t, p.Collisions.Right)
	assert.True(t, p.WallSlide)
	assert.False(t, p.Flip)
	assert.Equal(t, ActionWallSlide, p.Action)
	assert.LessOrEqual(t, p.Velocity.Y, 0.5)

	require.True(t, p.Jump())
	assert.Equal(t, cp.Vector{X: -2.3, Y: -2}, p.Velocity)
	assert.Equal(t, 0, p.Jumps)
}

func TestPlayerDash(t *testing.T) {
	m := tilemap.New(tilemap.DefaultConfig())
	p := NewPlayer(cp.Vector{}, DefaultPlayerTuning())
	p.Flip = true

	require.True(t, p.Dash())
	assert.Equal(t, -60, p.Dashing)
	assert.False(t, p.Dash(), "cannot dash again mid-dash")

	frame := p.Update(m, cp.Vector{})
	assert.True(t, frame.DashPuff)
	assert.True(t, frame.DashTrail)
	assert.Equal(t, -59, p.Dashing)
	assert.InDelta(t, -7.9, p.Velocity.X, 1e-9)
	assert.True(t, p.Attacking())
	assert.False(t, p.Visible())

	for p.Dashing != -51 {
		p.Update(m, cp.Vector{})
	}
	assert.InDelta(t, -0.7, p.Velocity.X, 1e-9, "last fast frame slows to a tenth")

	frame = p.Update(m, cp.Vector{})
	assert.False(t, frame.DashTrail)
	assert.Equal(t, -50, p.Dashing)

	frame = p.Update(m, cp.Vector{})
	assert.True(t, frame.DashPuff, "puff again when the fast phase ends")

	for p.Dashing != 0 {
		p.Update(m, cp.Vector{})
	}
	assert.False(t, p.Attacking())
	assert.True(t, p.Dash())
}

func TestPlayerFallsOut(t *testing.T) {
	m := tilemap.New(tilemap.DefaultConfig())
	p := NewPlayer(cp.Vector{}, DefaultPlayerTuning())
	p.AirTime = 300

	frame := p.Update(m, cp.Vector{})
	assert.True(t, frame.FellOut)
}

type scriptedBrain struct {
	walk  int
	shoot bool
}

func (b scriptedBrain) Idle(Senses) int         { return b.walk }
func (b scriptedBrain) ShouldShoot(Senses) bool { return b.shoot }

func TestEnemyWalksAndTurnsAtLedge(t *testing.T) {
	m := floor(0, 3, 2)
	e := NewEnemy(cp.Vector{X: 40, Y: 17}, DefaultEnemyTuning(), scriptedBrain{walk: 100})

	e.Update(m, Senses{})
	require.Equal(t, 100, e.Walking)

	startX := e.Pos.X
	e.Update(m, Senses{})
	assert.InDelta(t, startX+0.5, e.Pos.X, 1e-9)
	assert.Equal(t, ActionRun, e.Action)

	turned := false
	for range 40 {
		e.Update(m, Senses{})
		if e.Flip {
			turned = true
			break
		}
	}
	assert.True(t, turned, "enemy must turn before walking off the ledge")
	assert.LessOrEqual(t, e.Pos.X, 64.0)
}

func TestEnemyFiresWhenWalkEnds(t *testing.T) {
	m := floor(0, 10, 2)
	e := NewEnemy(cp.Vector{X: 40, Y: 17}, DefaultEnemyTuning(), scriptedBrain{shoot: true})
	e.Walking = 1

	frame := e.Update(m, Senses{})
	require.NotNil(t, frame.Shot)
	assert.Equal(t, 1.5, frame.Shot.Speed)
	assert.InDelta(t, 44.0+7, frame.Shot.Pos.X, 1e-9)
}

func TestPatrolBrainShouldShoot(t *testing.T) {
	tests := []struct {
		name  string
		flip  bool
		delta cp.Vector
		want  bool
	}{
		{name: "ahead facing right", delta: cp.Vector{X: 50, Y: 3}, want: true},
		{name: "behind facing right", delta: cp.Vector{X: -50, Y: 3}},
		{name: "ahead facing left", flip: true, delta: cp.Vector{X: -50, Y: -3}, want: true},
		{name: "too high", delta: cp.Vector{X: 50, Y: -16}},
		{name: "too low", delta: cp.Vector{X: 50, Y: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Senses{Flip: tt.flip, PlayerDelta: tt.delta, ShootRangeY: 16}
			assert.Equal(t, tt.want, PatrolBrain{}.ShouldShoot(s))
		})
	}
}

func TestEnemyHitByDash(t *testing.T) {
	e := NewEnemy(cp.Vector{X: 10, Y: 10}, DefaultEnemyTuning(), nil)
	p := NewPlayer(cp.Vector{X: 12, Y: 12}, DefaultPlayerTuning())

	assert.False(t, e.HitBy(p))
	p.Dashing = 55
	assert.True(t, e.HitBy(p))
	p.Pos = cp.Vector{X: 100}
	assert.False(t, e.HitBy(p))
}

func TestProjectileStep(t *testing.T) {
	p := Projectile{Pos: cp.Vector{X: 10, Y: 4}, Speed: -1.5}
	p.Step()
	p.Step()
	assert.Equal(t, 7.0, p.Pos.X)
	assert.Equal(t, 2, p.Age)
}
