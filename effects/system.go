package effects

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
)

type Config struct {
	// Animations are the templates copied into new particles, keyed by kind.
	Animations map[string]Animation

	SparkDecay         float64
	LeafVelocity       cp.Vector
	LeafDrift          Drift
	LeafStartTicks     int
	ParticleStartTicks int
}

func DefaultConfig() Config {
	return Config{
		Animations: map[string]Animation{
			KindLeaf:     NewAnimation(18, 20, false),
			KindParticle: NewAnimation(4, 6, false),
		},
		SparkDecay:         0.1,
		LeafVelocity:       cp.Vector{X: -0.1, Y: 0.3},
		LeafDrift:          Drift{Frequency: 0.035, Amplitude: 0.3},
		LeafStartTicks:     20,
		ParticleStartTicks: 7,
	}
}

// System owns the live particles and sparks of one session.
type System struct {
	cfg       Config
	rng       *rand.Rand
	Particles []Particle
	Sparks    []Spark
}

func NewSystem(cfg Config, rng *rand.Rand) *System {
	return &System{cfg: cfg, rng: rng}
}

// SetConfig applies to effects spawned from now on.
func (s *System) SetConfig(cfg Config) {
	s.cfg = cfg
}

func (s *System) Reset() {
	s.Particles = nil
	s.Sparks = nil
}

// Update steps every spark and then every particle, dropping the finished
// ones.
func (s *System) Update() {
	sparks := s.Sparks[:0]
	for _, sp := range s.Sparks {
		if !sp.Update() {
			sparks = append(sparks, sp)
		}
	}
	s.Sparks = sparks

	particles := s.Particles[:0]
	for _, p := range s.Particles {
		if !p.Update() {
			particles = append(particles, p)
		}
	}
	s.Particles = particles
}

func (s *System) AddSpark(pos cp.Vector, angle, speed float64) {
	s.Sparks = append(s.Sparks, Spark{Pos: pos, Angle: angle, Speed: speed, Decay: s.cfg.SparkDecay})
}

func (s *System) AddParticle(kind string, pos, velocity cp.Vector, startTick int) {
	anim := s.cfg.Animations[kind]
	if anim.Frames == 0 {
		anim = NewAnimation(1, 1, false)
	}
	anim.Tick = min(startTick, anim.length()-1)
	p := Particle{Kind: kind, Pos: pos, Velocity: velocity, Anim: anim}
	if kind == KindLeaf {
		p.Drift = s.cfg.LeafDrift
	}
	s.Particles = append(s.Particles, p)
}

// Leaf drops a falling leaf at pos.
func (s *System) Leaf(pos cp.Vector) {
	s.AddParticle(KindLeaf, pos, s.cfg.LeafVelocity, s.rng.IntN(s.cfg.LeafStartTicks+1))
}

// Impact is the hit effect: sparks flying out and dust blown back.
func (s *System) Impact(center cp.Vector, count int) {
	for range count {
		angle := s.rng.Float64() * math.Pi * 2
		speed := s.rng.Float64() * 5
		s.AddSpark(center, angle, 2+s.rng.Float64())
		s.AddParticle(KindParticle, center, cp.ForAngle(angle+math.Pi).Mult(speed*0.5), s.particleTick())
	}
}

// Flash adds two fast sparks shooting left and right.
func (s *System) Flash(center cp.Vector) {
	s.AddSpark(center, 0, 5+s.rng.Float64())
	s.AddSpark(center, math.Pi, 5+s.rng.Float64())
}

// Puff is the ring of dust at the start and end of a dash.
func (s *System) Puff(center cp.Vector, count int) {
	for range count {
		angle := s.rng.Float64() * math.Pi * 2
		speed := s.rng.Float64()*0.5 + 0.5
		s.AddParticle(KindParticle, center, cp.ForAngle(angle).Mult(speed), s.particleTick())
	}
}

// Trail leaves one dust particle behind a dash moving in direction dir.
func (s *System) Trail(center cp.Vector, dir float64) {
	s.AddParticle(KindParticle, center, cp.Vector{X: dir * s.rng.Float64() * 3}, s.particleTick())
}

// Fan throws count sparks around heading.
func (s *System) Fan(pos cp.Vector, heading float64, count int) {
	for range count {
		s.AddSpark(pos, heading+s.rng.Float64()-0.5, 2+s.rng.Float64())
	}
}

func (s *System) particleTick() int {
	return s.rng.IntN(s.cfg.ParticleStartTicks + 1)
}
