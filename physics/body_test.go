package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/ninja/common"
	"github.com/milk9111/ninja/tilemap"
)

func newMap(tiles ...tilemap.Point) *tilemap.Tilemap {
	m := tilemap.New(tilemap.DefaultConfig())
	for _, p := range tiles {
		m.SetTile("stone", 0, p)
	}
	return m
}

func TestRightWallStopsFlush(t *testing.T) {
	m := newMap(tilemap.Point{X: 1, Y: 0})
	b := NewBody("player", cp.Vector{X: 0, Y: 0}, cp.Vector{X: 15, Y: 16}, Tuning{})

	b.Update(m, cp.Vector{X: 3, Y: 0})

	assert.InDelta(t, 1.0, b.Pos.X, 1e-9, "right edge should sit on the wall at x=16")
	assert.True(t, b.Collisions.Right)
	assert.False(t, b.Collisions.Left)
	assert.False(t, b.Collisions.Up)
	assert.False(t, b.Collisions.Down)
	assert.False(t, b.Flip)
}

func TestLeftWallStopsFlush(t *testing.T) {
	m := newMap(tilemap.Point{X: 0, Y: 0})
	b := NewBody("player", cp.Vector{X: 17, Y: 0}, cp.Vector{X: 8, Y: 16}, Tuning{})

	b.Update(m, cp.Vector{X: -3, Y: 0})

	assert.InDelta(t, 16.0, b.Pos.X, 1e-9)
	assert.True(t, b.Collisions.Left)
	assert.True(t, b.Flip)
}

func TestLandingZeroesVerticalVelocity(t *testing.T) {
	m := newMap(tilemap.Point{X: 0, Y: 2}, tilemap.Point{X: 1, Y: 2})
	b := NewBody("player", cp.Vector{X: 4, Y: 14}, cp.Vector{X: 8, Y: 15}, DefaultTuning())
	b.Velocity.Y = 4

	b.Update(m, cp.Vector{})

	require.True(t, b.Collisions.Down)
	assert.InDelta(t, 17.0, b.Pos.Y, 1e-9, "feet should rest on y=32")
	assert.Zero(t, b.Velocity.Y)
}

func TestCeilingStopsJump(t *testing.T) {
	m := newMap(tilemap.Point{X: 0, Y: 0})
	b := NewBody("player", cp.Vector{X: 2, Y: 17}, cp.Vector{X: 8, Y: 15}, DefaultTuning())
	b.Velocity.Y = -3

	b.Update(m, cp.Vector{})

	assert.True(t, b.Collisions.Up)
	assert.InDelta(t, 16.0, b.Pos.Y, 1e-9)
	assert.Zero(t, b.Velocity.Y)
}

func TestGravityCapsAtMaxFall(t *testing.T) {
	m := newMap()
	b := NewBody("player", cp.Vector{}, cp.Vector{X: 8, Y: 15}, DefaultTuning())
	b.Velocity.Y = 4.95

	b.Update(m, cp.Vector{})
	assert.InDelta(t, 5.0, b.Velocity.Y, 1e-9)

	b.Update(m, cp.Vector{})
	assert.InDelta(t, 5.0, b.Velocity.Y, 1e-9)
	assert.False(t, b.Collisions.Any())
}

func TestEdgeContactIsNotCollision(t *testing.T) {
	m := newMap(tilemap.Point{X: 1, Y: 1})
	b := NewBody("player", cp.Vector{X: 0, Y: 0}, cp.Vector{X: 16, Y: 16}, Tuning{})

	b.Update(m, cp.Vector{})

	assert.False(t, b.Collisions.Any())
	assert.Equal(t, cp.Vector{}, b.Pos)
}

type fixedRects []common.Rect

func (f fixedRects) PhysicsRectsAround(cp.Vector) []common.Rect { return f }

func TestWalkAlongFloorKeepsX(t *testing.T) {
	floor := fixedRects{
		{X: 0, Y: 16, W: 16, H: 16},
		{X: 16, Y: 16, W: 16, H: 16},
	}
	b := NewBody("enemy", cp.Vector{X: 10, Y: 1}, cp.Vector{X: 8, Y: 15}, DefaultTuning())
	b.Velocity.Y = 1

	b.Update(floor, cp.Vector{X: 0.5, Y: 0})

	assert.InDelta(t, 10.5, b.Pos.X, 1e-9, "horizontal pass must not be blocked by the floor")
	assert.True(t, b.Collisions.Down)
	assert.False(t, b.Collisions.Side())
}
