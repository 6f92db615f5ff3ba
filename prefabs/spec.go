package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Vec is a two-element YAML sequence, [x, y].
type Vec [2]float64

func (v Vec) Vector() cp.Vector { return cp.Vector{X: v[0], Y: v[1]} }

type KindSpec struct {
	Type    string `yaml:"type"`
	Variant int    `yaml:"variant"`
}

type RectSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type SizeSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type TileGroupSpec struct {
	Type     string `yaml:"type"`
	Variants int    `yaml:"variants"`
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type WorldSpec struct {
	Name          string   `yaml:"name"`
	TileSize      int      `yaml:"tile_size"`
	PhysicsTypes  []string `yaml:"physics_types"`
	AutotileTypes []string `yaml:"autotile_types"`
	View          SizeSpec `yaml:"view"`
	Window        SizeSpec `yaml:"window"`

	CameraLag          float64 `yaml:"camera_lag"`
	TransitionFrames   int     `yaml:"transition_frames"`
	DeathFadeAfter     int     `yaml:"death_fade_after"`
	DeathReloadAfter   int     `yaml:"death_reload_after"`
	Screenshake        float64 `yaml:"screenshake"`
	ProjectileLifetime int     `yaml:"projectile_lifetime"`

	Spawners struct {
		Player KindSpec `yaml:"player"`
		Enemy  KindSpec `yaml:"enemy"`
		Leaf   KindSpec `yaml:"leaf"`
	} `yaml:"spawners"`
	LeafArea RectSpec `yaml:"leaf_area"`
	LeafRate float64  `yaml:"leaf_rate"`
	Clouds   int      `yaml:"clouds"`

	Bursts struct {
		Impact int `yaml:"impact"`
		Puff   int `yaml:"puff"`
		Fan    int `yaml:"fan"`
	} `yaml:"bursts"`

	Palette    map[string]YAMLColor `yaml:"palette"`
	TileGroups []TileGroupSpec      `yaml:"tile_groups"`
	Audio      []AudioSpec          `yaml:"audio"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	data, err := Load("world.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load world.yaml: %w", err)
	}
	var spec WorldSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal world.yaml: %w", err)
	}
	return &spec, nil
}

// Volume returns the configured volume for an audio cue, 0 if unknown.
func (w WorldSpec) Volume(name string) float64 {
	for _, a := range w.Audio {
		if a.Name == name {
			return a.Volume
		}
	}
	return 0
}

type DashSpec struct {
	Frames  int     `yaml:"frames"`
	Attack  int     `yaml:"attack"`
	Speed   float64 `yaml:"speed"`
	EndSlow float64 `yaml:"end_slow"`
}

type PlayerSpec struct {
	Name             string   `yaml:"name"`
	Size             Vec      `yaml:"size"`
	Gravity          float64  `yaml:"gravity"`
	MaxFall          float64  `yaml:"max_fall"`
	MaxJumps         int      `yaml:"max_jumps"`
	FallDeathFrames  int      `yaml:"fall_death_frames"`
	AirborneAfter    int      `yaml:"airborne_after"`
	WallSlideMaxFall float64  `yaml:"wall_slide_max_fall"`
	JumpVelocity     float64  `yaml:"jump_velocity"`
	WallJumpLeft     Vec      `yaml:"wall_jump_left"`
	WallJumpRight    Vec      `yaml:"wall_jump_right"`
	Friction         float64  `yaml:"friction"`
	Dash             DashSpec `yaml:"dash"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

const (
	BrainPatrol = "patrol"
	BrainScript = "script"
)

type EnemySpec struct {
	Name            string  `yaml:"name"`
	Size            Vec     `yaml:"size"`
	Gravity         float64 `yaml:"gravity"`
	MaxFall         float64 `yaml:"max_fall"`
	WalkSpeed       float64 `yaml:"walk_speed"`
	GroundProbe     Vec     `yaml:"ground_probe"`
	MuzzleOffset    float64 `yaml:"muzzle_offset"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	WalkChance      float64 `yaml:"walk_chance"`
	WalkMin         int     `yaml:"walk_min"`
	WalkMax         int     `yaml:"walk_max"`
	ShootRangeY     float64 `yaml:"shoot_range_y"`
	Brain           string  `yaml:"brain"`
	Script          string  `yaml:"script"`
}

func LoadEnemySpec() (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec]("enemy.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type AnimationSpec struct {
	Frames        int  `yaml:"frames"`
	FrameDuration int  `yaml:"frame_duration"`
	Loop          bool `yaml:"loop"`
}

type EffectsSpec struct {
	Animations   map[string]AnimationSpec `yaml:"animations"`
	SparkDecay   float64                  `yaml:"spark_decay"`
	LeafVelocity Vec                      `yaml:"leaf_velocity"`
	LeafDrift    struct {
		Frequency float64 `yaml:"frequency"`
		Amplitude float64 `yaml:"amplitude"`
	} `yaml:"leaf_drift"`
	LeafStartTicks     int `yaml:"leaf_start_ticks"`
	ParticleStartTicks int `yaml:"particle_start_ticks"`
}

func LoadEffectsSpec() (*EffectsSpec, error) {
	spec, err := LoadSpec[EffectsSpec]("effects.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG colour name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		if a, err = parse(6); err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
