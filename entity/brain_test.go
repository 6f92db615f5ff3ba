package entity_test

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/ninja/common"
	"github.com/milk9111/ninja/entity"
	"github.com/milk9111/ninja/prefabs"
)

func TestScriptBrainMatchesPatrolBrain(t *testing.T) {
	src, err := prefabs.LoadScript("enemy.tengo")
	require.NoError(t, err)
	brain, err := entity.NewScriptBrain("enemy.tengo", src, common.Discard())
	require.NoError(t, err)

	cases := []entity.Senses{
		{Roll: 0.005, WalkRoll: 77, WalkChance: 0.01},
		{Roll: 0.5, WalkRoll: 77, WalkChance: 0.01},
		{PlayerDelta: cp.Vector{X: 40, Y: 2}, ShootRangeY: 16},
		{PlayerDelta: cp.Vector{X: -40, Y: 2}, ShootRangeY: 16},
		{Flip: true, PlayerDelta: cp.Vector{X: -40, Y: -15.5}, ShootRangeY: 16},
		{Flip: true, PlayerDelta: cp.Vector{X: -40, Y: 16}, ShootRangeY: 16},
	}

	var patrol entity.PatrolBrain
	for _, s := range cases {
		assert.Equal(t, patrol.Idle(s), brain.Idle(s), "idle %+v", s)
		assert.Equal(t, patrol.ShouldShoot(s), brain.ShouldShoot(s), "shoot %+v", s)
	}
}

func TestScriptBrainCompileError(t *testing.T) {
	_, err := entity.NewScriptBrain("broken", []byte("idle := func(s) {"), nil)
	assert.Error(t, err)
}
