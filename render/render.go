// Package render draws a game.Session with flat shapes: palette-coloured
// tiles, entity boxes, sparks and particles, and the circle transition.
package render

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/ninja/common"
	"github.com/milk9111/ninja/effects"
	"github.com/milk9111/ninja/entity"
	"github.com/milk9111/ninja/game"
	"github.com/milk9111/ninja/prefabs"
)

// transitionScale turns remaining transition frames into the radius of the
// visible circle.
const transitionScale = 8

type Renderer struct {
	display *ebiten.Image
	overlay *ebiten.Image
	hole    *ebiten.Image
	face    text.Face
	rng     *rand.Rand

	// ShowHUD draws the level and death counters.
	ShowHUD bool
}

func New(seed uint64) *Renderer {
	return &Renderer{
		face:    text.NewGoXFace(basicfont.Face7x13),
		rng:     rand.New(rand.NewPCG(seed, seed+1)),
		ShowHUD: true,
	}
}

// Layout is the logical screen size: the session's view.
func (r *Renderer) Layout(s *game.Session) (int, int) {
	v := s.Specs().World.View
	return v.Width, v.Height
}

func (r *Renderer) ensure(w, h int) {
	if r.display != nil && r.display.Bounds().Dx() == w && r.display.Bounds().Dy() == h {
		return
	}
	r.display = ebiten.NewImage(w, h)
	r.overlay = ebiten.NewImage(w, h)
	r.hole = ebiten.NewImage(w, h)
}

func (r *Renderer) Draw(screen *ebiten.Image, s *game.Session) {
	world := s.Specs().World
	w, h := r.Layout(s)
	r.ensure(w, h)

	view := s.View()
	offset := cp.Vector{X: view.X, Y: view.Y}

	r.display.Fill(world.Color("sky", colornames.Lightskyblue))
	r.drawClouds(s, world)
	r.drawTiles(s, world, view, offset)
	r.drawEnemies(s.Enemies, world, offset)
	if s.Player.Visible() && s.Dead == 0 {
		fillRect(r.display, s.Player.Rect(), offset, world.Color("player", colornames.Crimson))
	}
	for _, p := range s.Projectiles {
		fillRect(r.display, common.Rect{X: p.Pos.X - 2, Y: p.Pos.Y - 1, W: 4, H: 2}, offset, world.Color("projectile", colornames.White))
	}
	for _, sp := range s.Effects.Sparks {
		drawSpark(r.display, sp, offset)
	}
	for _, p := range s.Effects.Particles {
		drawParticle(r.display, p, offset)
	}
	if s.Transition != 0 {
		r.drawTransition(s.Transition, world.TransitionFrames)
	}

	screen.Clear()
	op := &ebiten.DrawImageOptions{}
	if s.Screenshake > 0 {
		op.GeoM.Translate(
			r.rng.Float64()*s.Screenshake-s.Screenshake/2,
			r.rng.Float64()*s.Screenshake-s.Screenshake/2,
		)
	}
	screen.DrawImage(r.display, op)

	if r.ShowHUD {
		r.drawHUD(screen, s)
	}
}

func (r *Renderer) drawClouds(s *game.Session, world prefabs.WorldSpec) {
	w := float64(world.View.Width)
	h := float64(world.View.Height)
	c := world.Color("cloud", colornames.Whitesmoke)
	for _, cl := range s.Clouds {
		// Clouds wrap over a region one cloud larger than the view so they
		// slide fully off an edge before reappearing on the other.
		const cw, ch = 48, 16
		pos := cl.ScreenPos(s.Scroll, w+cw, h+ch).Sub(cp.Vector{X: cw, Y: ch})
		size := float32(0.5 + cl.Depth)
		vector.FillRect(r.display, float32(pos.X), float32(pos.Y), cw*size, ch*size, c, false)
	}
}

func (r *Renderer) drawTiles(s *game.Session, world prefabs.WorldSpec, view common.Rect, offset cp.Vector) {
	size := float64(s.Tilemap.TileSize())
	for _, t := range s.Tilemap.Visible(view) {
		base := world.Color(t.Type, colornames.Gray)
		rect := common.Rect{X: t.Pos.X, Y: t.Pos.Y, W: size, H: size}
		fillRect(r.display, rect, offset, shade(base, t.Variant))
		if t.OnGrid {
			strokeRect(r.display, rect, offset, shade(base, 12))
		}
	}
}

func (r *Renderer) drawEnemies(enemies []*entity.Enemy, world prefabs.WorldSpec, offset cp.Vector) {
	c := world.Color("enemy", colornames.Steelblue)
	for _, e := range enemies {
		fillRect(r.display, e.Rect(), offset, c)
		// The muzzle shows which way the enemy faces.
		ctr := e.Center()
		dir := 1.0
		if e.Flip {
			dir = -1
		}
		vector.StrokeLine(r.display,
			float32(ctr.X-offset.X), float32(ctr.Y-offset.Y),
			float32(ctr.X+dir*e.Tuning.MuzzleOffset-offset.X), float32(ctr.Y-offset.Y),
			2, colornames.Black, false)
	}
}

func (r *Renderer) drawTransition(t, frames int) {
	r.overlay.Fill(color.Black)
	r.hole.Clear()
	b := r.overlay.Bounds()
	radius := float32(frames-abs(t)) * transitionScale
	if radius > 0 {
		vector.FillCircle(r.hole, float32(b.Dx())/2, float32(b.Dy())/2, radius, color.White, true)
		op := &ebiten.DrawImageOptions{}
		op.Blend = ebiten.BlendDestinationOut
		r.overlay.DrawImage(r.hole, op)
	}
	r.display.DrawImage(r.overlay, nil)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, s *game.Session) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(4, 4)
	op.ColorScale.ScaleWithColor(colornames.White)
	text.Draw(screen, fmt.Sprintf("level %d/%d  deaths %d", s.Level+1, s.Catalog().Count(), s.Deaths), r.face, op)
}

func drawSpark(dst *ebiten.Image, sp effects.Spark, offset cp.Vector) {
	pts := sp.Points()
	width := float32(max(1, sp.Speed))
	vector.StrokeLine(dst,
		float32(pts[0].X-offset.X), float32(pts[0].Y-offset.Y),
		float32(pts[2].X-offset.X), float32(pts[2].Y-offset.Y),
		width, colornames.White, true)
}

func drawParticle(dst *ebiten.Image, p effects.Particle, offset cp.Vector) {
	c := colornames.White
	if p.Kind == effects.KindLeaf {
		c = colornames.Yellowgreen
	}
	// Particles shrink as their animation plays out.
	remaining := float64(p.Anim.Frames - p.Anim.Image())
	size := max(1, math.Ceil(remaining/float64(p.Anim.Frames)*3))
	vector.FillRect(dst, float32(p.Pos.X-offset.X-size/2), float32(p.Pos.Y-offset.Y-size/2), float32(size), float32(size), c, false)
}

func fillRect(dst *ebiten.Image, r common.Rect, offset cp.Vector, c color.Color) {
	vector.FillRect(dst, float32(r.X-offset.X), float32(r.Y-offset.Y), float32(r.W), float32(r.H), c, false)
}

func strokeRect(dst *ebiten.Image, r common.Rect, offset cp.Vector, c color.Color) {
	vector.StrokeRect(dst, float32(r.X-offset.X), float32(r.Y-offset.Y), float32(r.W), float32(r.H), 1, c, false)
}

// shade darkens c a little per variant so neighbouring variants stay
// distinguishable.
func shade(c color.Color, variant int) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	f := 1 - 0.04*float64(variant%13)
	n.R = uint8(float64(n.R) * f)
	n.G = uint8(float64(n.G) * f)
	n.B = uint8(float64(n.B) * f)
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
