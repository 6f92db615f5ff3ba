package entity

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/ninja/common"
)

// PatrolBrain wanders at random and fires at a player level with it and in
// front of it.
type PatrolBrain struct{}

func (PatrolBrain) Idle(s Senses) int {
	if s.Roll < s.WalkChance {
		return s.WalkRoll
	}
	return 0
}

func (PatrolBrain) ShouldShoot(s Senses) bool {
	if math.Abs(s.PlayerDelta.Y) >= s.ShootRangeY {
		return false
	}
	if s.Flip {
		return s.PlayerDelta.X < 0
	}
	return s.PlayerDelta.X > 0
}

const brainDispatchScript = `
if __phase == "idle" {
	__result = idle(__senses)
} else if __phase == "shoot" {
	__result = should_shoot(__senses)
}
`

// ScriptBrain runs the decisions in a tengo script that defines
// idle(senses) and should_shoot(senses). Script errors are logged and treated
// as "do nothing".
type ScriptBrain struct {
	name     string
	compiled *tengo.Compiled
	logger   *log.Logger
}

func NewScriptBrain(name string, src []byte, logger *log.Logger) (*ScriptBrain, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + brainDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__senses", map[string]any{})
	_ = script.Add("__result", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("entity: compile brain %s: %w", name, err)
	}
	return &ScriptBrain{name: name, compiled: compiled, logger: common.OrDiscard(logger)}, nil
}

func (b *ScriptBrain) Idle(s Senses) int {
	res, err := b.run("idle", s)
	if err != nil {
		b.logger.Error("brain idle failed", "script", b.name, "err", err)
		return 0
	}
	return res.Int()
}

func (b *ScriptBrain) ShouldShoot(s Senses) bool {
	res, err := b.run("shoot", s)
	if err != nil {
		b.logger.Error("brain shoot failed", "script", b.name, "err", err)
		return false
	}
	return res.Bool()
}

func (b *ScriptBrain) run(phase string, s Senses) (*tengo.Variable, error) {
	if b == nil || b.compiled == nil {
		return nil, fmt.Errorf("nil script brain")
	}
	senses := map[string]any{
		"flip":          s.Flip,
		"dx":            s.PlayerDelta.X,
		"dy":            s.PlayerDelta.Y,
		"roll":          s.Roll,
		"walk_roll":     s.WalkRoll,
		"walk_chance":   s.WalkChance,
		"shoot_range_y": s.ShootRangeY,
	}
	if err := b.compiled.Set("__phase", phase); err != nil {
		return nil, err
	}
	if err := b.compiled.Set("__senses", senses); err != nil {
		return nil, err
	}
	if err := b.compiled.Set("__result", 0); err != nil {
		return nil, err
	}
	if err := b.compiled.Run(); err != nil {
		return nil, err
	}
	return b.compiled.Get("__result"), nil
}
