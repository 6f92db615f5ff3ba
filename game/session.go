// Package game runs a play session: level loading, the per-frame update of
// every entity, and the death and level-clear transitions.
package game

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/ninja/common"
	"github.com/milk9111/ninja/effects"
	"github.com/milk9111/ninja/entity"
	"github.com/milk9111/ninja/levels"
	"github.com/milk9111/ninja/prefabs"
	"github.com/milk9111/ninja/tilemap"
)

// Input is one frame of player intent. Jump, Dash and Restart are edge
// triggered.
type Input struct {
	Left, Right bool
	Jump        bool
	Dash        bool
	Restart     bool
}

func (in Input) Movement() cp.Vector {
	var x float64
	if in.Right {
		x++
	}
	if in.Left {
		x--
	}
	return cp.Vector{X: x}
}

type Options struct {
	Seed       uint64
	Logger     *log.Logger
	StartLevel int
	// Deaths carries a death count over from a resumed run.
	Deaths int
	// Autotile recomputes tile variants after each level load.
	Autotile bool
}

type Session struct {
	specs   prefabs.Specs
	catalog *levels.Catalog
	logger  *log.Logger
	rng     *rand.Rand
	brain   entity.Brain
	opts    Options
	arena   *arena
	events  EventQueue

	Level        int
	Tilemap      *tilemap.Tilemap
	Player       *entity.Player
	Enemies      []*entity.Enemy
	Projectiles  []*entity.Projectile
	Effects      *effects.System
	Clouds       []effects.Cloud
	LeafSpawners []common.Rect

	Scroll      cp.Vector
	Screenshake float64
	// Dead counts frames since the player died, 0 while alive.
	Dead int
	// Transition runs from -TransitionFrames up to 0 after a load and from 0
	// up to TransitionFrames before the next one.
	Transition int
	// Deaths is the death count of the current run.
	Deaths int
	Frame  uint64
}

func NewSession(cat *levels.Catalog, specs prefabs.Specs, opts Options) (*Session, error) {
	if err := specs.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		specs:   specs,
		catalog: cat,
		logger:  common.OrDiscard(opts.Logger),
		rng:     rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		opts:    opts,
		Deaths:  opts.Deaths,
	}
	brain, err := s.buildBrain(specs.Enemy)
	if err != nil {
		return nil, err
	}
	s.brain = brain
	s.Player = entity.NewPlayer(cp.Vector{X: 50, Y: 50}, specs.Player.Tuning())
	s.Effects = effects.NewSystem(specs.Effects.Config(), s.rng)
	s.Clouds = effects.NewClouds(s.rng, specs.World.Clouds, 2)

	start := opts.StartLevel
	if start < 0 || start > cat.Last() {
		start = 0
	}
	if err := s.LoadLevel(start); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) buildBrain(spec prefabs.EnemySpec) (entity.Brain, error) {
	if spec.Brain != prefabs.BrainScript {
		return entity.PatrolBrain{}, nil
	}
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("game: load brain %s: %w", spec.Script, err)
	}
	return entity.NewScriptBrain(spec.Script, src, s.logger)
}

func (s *Session) Specs() prefabs.Specs { return s.specs }

func (s *Session) Catalog() *levels.Catalog { return s.catalog }

// Events drains the events raised since the last call.
func (s *Session) Events() []Event { return s.events.Drain() }

func (s *Session) emit(kind EventKind, pos cp.Vector) {
	s.events.Push(Event{Kind: kind, Level: s.Level, Deaths: s.Deaths, Pos: pos})
}

// ApplySpecs swaps in reloaded specs. Live entities pick up the new tuning
// immediately; tile settings apply from the next level load.
func (s *Session) ApplySpecs(specs prefabs.Specs) error {
	if err := specs.Validate(); err != nil {
		return err
	}
	brain, err := s.buildBrain(specs.Enemy)
	if err != nil {
		return err
	}
	s.specs = specs
	s.brain = brain

	s.Player.Tuning = specs.Player.Tuning()
	s.Player.Size = s.Player.Tuning.Size
	s.Player.Body.Tuning = s.Player.Tuning.Physics
	et := specs.Enemy.Tuning()
	for _, e := range s.Enemies {
		e.Tuning = et
		e.Size = et.Size
		e.Body.Tuning = et.Physics
		e.Brain = brain
	}
	s.Effects.SetConfig(specs.Effects.Config())
	s.arena.setPlayer(s.Player)
	return nil
}

// LoadLevel replaces the tilemap and every entity list with level id.
func (s *Session) LoadLevel(id int) error {
	w := s.specs.World
	m, err := s.catalog.Load(id, w.TilemapConfig())
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if s.opts.Autotile {
		m.Autotile()
	}

	s.Level = id
	s.Tilemap = m

	s.LeafSpawners = s.LeafSpawners[:0]
	for _, tree := range m.Extract([]tilemap.Kind{w.Spawners.Leaf.Kind()}, true) {
		s.LeafSpawners = append(s.LeafSpawners, common.Rect{
			X: tree.Pos.X + w.LeafArea.X,
			Y: tree.Pos.Y + w.LeafArea.Y,
			W: w.LeafArea.W,
			H: w.LeafArea.H,
		})
	}

	playerKind := w.Spawners.Player.Kind()
	enemyTuning := s.specs.Enemy.Tuning()
	s.Enemies = nil
	spawned := false
	for _, sp := range m.Extract([]tilemap.Kind{playerKind, w.Spawners.Enemy.Kind()}, false) {
		if sp.Kind() == playerKind {
			s.Player.Spawn(sp.Pos)
			spawned = true
			continue
		}
		s.Enemies = append(s.Enemies, entity.NewEnemy(sp.Pos, enemyTuning, s.brain))
	}
	if !spawned {
		s.logger.Warn("level has no player spawner", "level", id)
	}

	bounds, ok := m.Bounds()
	if !ok {
		bounds = common.Rect{W: float64(w.View.Width), H: float64(w.View.Height)}
	}
	s.arena = newArena(bounds.Union(s.Player.Rect()), m.TileSize())
	s.arena.setPlayer(s.Player)
	for _, e := range s.Enemies {
		s.arena.addEnemy(e)
	}

	s.Projectiles = nil
	s.Effects.Reset()
	s.Scroll = cp.Vector{}
	s.Dead = 0
	s.Transition = -w.TransitionFrames

	s.logger.Info("level loaded", "level", id, "enemies", len(s.Enemies), "tiles", m.Len())
	s.emit(EventLevelLoaded, s.Player.Pos)
	return nil
}

// Update advances the session by one frame.
func (s *Session) Update(in Input) error {
	w := s.specs.World
	s.Frame++
	s.Screenshake = max(0, s.Screenshake-1)

	if err := s.updateProgress(); err != nil {
		return err
	}

	if s.Dead > 0 {
		s.Dead++
		if s.Dead >= w.DeathFadeAfter {
			s.Transition = min(w.TransitionFrames, s.Transition+1)
		}
		if s.Dead > w.DeathReloadAfter {
			if err := s.LoadLevel(s.Level); err != nil {
				return err
			}
		}
	}

	s.updateCamera()
	s.spawnLeaves()
	for i := range s.Clouds {
		s.Clouds[i].Update()
	}

	s.updateEnemies()
	if s.Dead == 0 {
		s.updatePlayer(in.Movement())
	}
	s.updateProjectiles()
	s.Effects.Update()

	if in.Jump && s.Player.Jump() {
		s.emit(EventJump, s.Player.Center())
	}
	if in.Dash && s.Player.Dash() {
		s.emit(EventDash, s.Player.Center())
	}
	if in.Restart {
		return s.LoadLevel(s.Level)
	}
	return nil
}

// updateProgress advances the level-clear transition once every enemy is
// gone. Clearing the last level finishes the run and starts over at level 0.
func (s *Session) updateProgress() error {
	w := s.specs.World
	if len(s.Enemies) == 0 {
		s.Transition++
		if s.Level == s.catalog.Last() {
			deaths := s.Deaths
			s.logger.Info("run complete", "levels", s.catalog.Count(), "deaths", deaths)
			s.Deaths = 0
			s.events.Push(Event{Kind: EventRunComplete, Level: s.Level, Deaths: deaths})
			if err := s.LoadLevel(0); err != nil {
				return err
			}
		}
		if s.Transition == w.TransitionFrames {
			if err := s.LoadLevel(min(s.Level+1, s.catalog.Last())); err != nil {
				return err
			}
		}
	}
	if s.Transition < 0 {
		s.Transition++
	}
	return nil
}

func (s *Session) viewSize() cp.Vector {
	return cp.Vector{X: float64(s.specs.World.View.Width), Y: float64(s.specs.World.View.Height)}
}

func (s *Session) updateCamera() {
	target := s.Player.Center().Sub(s.viewSize().Mult(0.5))
	t := 1 / s.specs.World.CameraLag
	s.Scroll.X = common.Lerp(s.Scroll.X, target.X, t)
	s.Scroll.Y = common.Lerp(s.Scroll.Y, target.Y, t)
}

// View is the visible world rectangle, snapped to whole pixels.
func (s *Session) View() common.Rect {
	size := s.viewSize()
	return common.Rect{X: math.Trunc(s.Scroll.X), Y: math.Trunc(s.Scroll.Y), W: size.X, H: size.Y}
}

func (s *Session) spawnLeaves() {
	rate := s.specs.World.LeafRate
	for _, r := range s.LeafSpawners {
		if s.rng.Float64()*rate < r.W*r.H {
			s.Effects.Leaf(cp.Vector{X: r.X + s.rng.Float64()*r.W, Y: r.Y + s.rng.Float64()*r.H})
		}
	}
}

func (s *Session) walkRoll() int {
	t := s.specs.Enemy
	return t.WalkMin + s.rng.IntN(t.WalkMax-t.WalkMin+1)
}

func (s *Session) updateEnemies() {
	w := s.specs.World
	for _, e := range s.Enemies {
		frame := e.Update(s.Tilemap, e.Senses(s.Player.Pos, s.rng.Float64(), s.walkRoll()))
		s.arena.syncEnemy(e)
		if frame.Shot != nil {
			s.Projectiles = append(s.Projectiles, frame.Shot)
			s.arena.addProjectile(frame.Shot)
			s.Effects.Fan(frame.Shot.Pos, frame.Shot.Heading(), w.Bursts.Fan)
			s.emit(EventShoot, frame.Shot.Pos)
		}
	}

	if !s.Player.Attacking() {
		return
	}
	near := s.arena.near(tagEnemy)
	alive := s.Enemies[:0]
	for _, e := range s.Enemies {
		if !near[e] || !e.HitBy(s.Player) {
			alive = append(alive, e)
			continue
		}
		c := e.Center()
		s.Screenshake = max(w.Screenshake, s.Screenshake)
		s.Effects.Impact(c, w.Bursts.Impact)
		s.Effects.Flash(c)
		s.arena.removeEnemy(e)
		s.emit(EventEnemyKilled, c)
	}
	clear(s.Enemies[len(alive):])
	s.Enemies = alive
}

func (s *Session) updatePlayer(movement cp.Vector) {
	w := s.specs.World
	frame := s.Player.Update(s.Tilemap, movement)
	s.arena.syncPlayer(s.Player.Body)

	if frame.FellOut {
		s.kill()
	}
	if frame.DashPuff {
		s.Effects.Puff(s.Player.Center(), w.Bursts.Puff)
	}
	if frame.DashTrail {
		s.Effects.Trail(s.Player.Center(), s.Player.DashDir())
	}
}

// kill starts the death sequence.
func (s *Session) kill() {
	if s.Dead == 0 {
		s.Screenshake = max(s.specs.World.Screenshake, s.Screenshake)
		s.Deaths++
		s.emit(EventPlayerDied, s.Player.Center())
	}
	s.Dead++
}

func (s *Session) updateProjectiles() {
	w := s.specs.World
	for _, p := range s.Projectiles {
		p.Step()
		s.arena.syncProjectile(p)
	}
	near := s.arena.near(tagProjectile)

	live := s.Projectiles[:0]
	for _, p := range s.Projectiles {
		switch {
		case s.solid(p.Pos):
			s.Effects.Fan(p.Pos, p.Heading()+math.Pi, w.Bursts.Fan)
		case p.Age > w.ProjectileLifetime:
		case !s.Player.Attacking() && near[p] && s.Player.Rect().Contains(p.Pos):
			c := s.Player.Center()
			s.Screenshake = max(w.Screenshake, s.Screenshake)
			s.Effects.Impact(c, w.Bursts.Impact)
			s.emit(EventHit, c)
			s.kill()
		default:
			live = append(live, p)
			continue
		}
		s.arena.removeProjectile(p)
	}
	clear(s.Projectiles[len(live):])
	s.Projectiles = live
}

func (s *Session) solid(pos cp.Vector) bool {
	_, ok := s.Tilemap.SolidCheck(pos)
	return ok
}
