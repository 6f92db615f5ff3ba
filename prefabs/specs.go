package prefabs

import (
	"fmt"
	"image/color"

	"github.com/milk9111/ninja/effects"
	"github.com/milk9111/ninja/entity"
	"github.com/milk9111/ninja/physics"
	"github.com/milk9111/ninja/tilemap"
)

// Specs is every spec the game reads at startup and on hot reload.
type Specs struct {
	World   WorldSpec
	Player  PlayerSpec
	Enemy   EnemySpec
	Effects EffectsSpec
}

func LoadAll() (Specs, error) {
	var s Specs
	world, err := LoadWorldSpec()
	if err != nil {
		return s, err
	}
	player, err := LoadPlayerSpec()
	if err != nil {
		return s, err
	}
	enemy, err := LoadEnemySpec()
	if err != nil {
		return s, err
	}
	fx, err := LoadEffectsSpec()
	if err != nil {
		return s, err
	}
	s = Specs{World: *world, Player: *player, Enemy: *enemy, Effects: *fx}
	if err := s.Validate(); err != nil {
		return Specs{}, err
	}
	return s, nil
}

func (s Specs) Validate() error {
	w := s.World
	switch {
	case w.TileSize <= 0:
		return fmt.Errorf("%w: world.tile_size must be positive", ErrInvalidSpec)
	case w.View.Width <= 0 || w.View.Height <= 0:
		return fmt.Errorf("%w: world.view must be positive", ErrInvalidSpec)
	case w.CameraLag < 1:
		return fmt.Errorf("%w: world.camera_lag must be at least 1", ErrInvalidSpec)
	case len(w.TileGroups) == 0:
		return fmt.Errorf("%w: world.tile_groups is empty", ErrInvalidSpec)
	}
	for _, g := range w.TileGroups {
		if g.Variants <= 0 {
			return fmt.Errorf("%w: tile group %q has no variants", ErrInvalidSpec, g.Type)
		}
	}

	if s.Player.MaxJumps < 0 || s.Player.Dash.Attack >= s.Player.Dash.Frames {
		return fmt.Errorf("%w: player dash/jump settings", ErrInvalidSpec)
	}

	e := s.Enemy
	if e.WalkMin <= 0 || e.WalkMax < e.WalkMin {
		return fmt.Errorf("%w: enemy walk range %d..%d", ErrInvalidSpec, e.WalkMin, e.WalkMax)
	}
	if e.Brain != BrainPatrol && e.Brain != BrainScript {
		return fmt.Errorf("%w: unknown enemy brain %q", ErrInvalidSpec, e.Brain)
	}
	if e.Brain == BrainScript && e.Script == "" {
		return fmt.Errorf("%w: enemy brain script not set", ErrInvalidSpec)
	}

	for kind, a := range s.Effects.Animations {
		if a.Frames <= 0 || a.FrameDuration <= 0 {
			return fmt.Errorf("%w: animation %q", ErrInvalidSpec, kind)
		}
	}
	return nil
}

func (w WorldSpec) TilemapConfig() tilemap.Config {
	return tilemap.Config{
		TileSize:      w.TileSize,
		PhysicsTypes:  tilemap.NewTypeSet(w.PhysicsTypes...),
		AutotileTypes: tilemap.NewTypeSet(w.AutotileTypes...),
		Rules:         tilemap.DefaultRules(),
	}
}

func (k KindSpec) Kind() tilemap.Kind {
	return tilemap.Kind{Type: k.Type, Variant: k.Variant}
}

// Color returns the palette colour for a tile type, or fallback.
func (w WorldSpec) Color(typ string, fallback color.Color) color.Color {
	if c, ok := w.Palette[typ]; ok && c.Color != nil {
		return c.Color
	}
	return fallback
}

func (p PlayerSpec) Tuning() entity.PlayerTuning {
	return entity.PlayerTuning{
		Size:             p.Size.Vector(),
		Physics:          physics.Tuning{Gravity: p.Gravity, MaxFall: p.MaxFall},
		MaxJumps:         p.MaxJumps,
		FallDeathFrames:  p.FallDeathFrames,
		AirborneAfter:    p.AirborneAfter,
		WallSlideMaxFall: p.WallSlideMaxFall,
		JumpVelocity:     p.JumpVelocity,
		WallJumpLeft:     p.WallJumpLeft.Vector(),
		WallJumpRight:    p.WallJumpRight.Vector(),
		Friction:         p.Friction,
		DashFrames:       p.Dash.Frames,
		DashAttack:       p.Dash.Attack,
		DashSpeed:        p.Dash.Speed,
		DashEndSlow:      p.Dash.EndSlow,
	}
}

func (e EnemySpec) Tuning() entity.EnemyTuning {
	return entity.EnemyTuning{
		Size:            e.Size.Vector(),
		Physics:         physics.Tuning{Gravity: e.Gravity, MaxFall: e.MaxFall},
		WalkSpeed:       e.WalkSpeed,
		GroundProbe:     e.GroundProbe.Vector(),
		MuzzleOffset:    e.MuzzleOffset,
		ProjectileSpeed: e.ProjectileSpeed,
		WalkChance:      e.WalkChance,
		WalkMin:         e.WalkMin,
		WalkMax:         e.WalkMax,
		ShootRangeY:     e.ShootRangeY,
	}
}

func (f EffectsSpec) Config() effects.Config {
	anims := make(map[string]effects.Animation, len(f.Animations))
	for kind, a := range f.Animations {
		anims[kind] = effects.NewAnimation(a.Frames, a.FrameDuration, a.Loop)
	}
	return effects.Config{
		Animations:         anims,
		SparkDecay:         f.SparkDecay,
		LeafVelocity:       f.LeafVelocity.Vector(),
		LeafDrift:          effects.Drift{Frequency: f.LeafDrift.Frequency, Amplitude: f.LeafDrift.Amplitude},
		LeafStartTicks:     f.LeafStartTicks,
		ParticleStartTicks: f.ParticleStartTicks,
	}
}
