package main

import (
	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"

	"github.com/milk9111/ninja/common"
	"github.com/milk9111/ninja/editor"
	"github.com/milk9111/ninja/prefabs"
)

type editorGame struct {
	ed      *editor.Editor
	world   *prefabs.WorldSpec
	ui      *ebitenui.UI
	toolbar *toolBar
	canvas  *ebiten.Image
	// clipboardOK is false when the system clipboard is unavailable.
	clipboardOK bool
}

func newEditorGame(ed *editor.Editor, world *prefabs.WorldSpec) *editorGame {
	g := &editorGame{
		ed:     ed,
		world:  world,
		canvas: ebiten.NewImage(world.View.Width, world.View.Height),
	}
	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "err", err)
	} else {
		g.clipboardOK = true
	}
	g.ui, g.toolbar = buildUI(toolActions{
		toggleGrid: g.ed.ToggleGrid,
		autotile:   g.autotile,
		save:       g.save,
		copy:       g.copyJSON,
	})
	return g
}

func (g *editorGame) autotile() {
	logger.Info("autotiled", "changed", g.ed.Autotile())
}

func (g *editorGame) save() {
	if err := g.ed.Save(); err != nil {
		logger.Error("save", "err", err)
		return
	}
	logger.Info("saved", "path", g.ed.Path)
}

func (g *editorGame) copyJSON() {
	if !g.clipboardOK {
		return
	}
	data, err := g.ed.JSON()
	if err != nil {
		logger.Error("copy", "err", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	logger.Info("copied map json", "bytes", len(data))
}

func (g *editorGame) cursor() cp.Vector {
	x, y := ebiten.CursorPosition()
	return cp.Vector{X: float64(x) / renderScale, Y: float64(y) / renderScale}
}

func (g *editorGame) Update() error {
	g.ui.Update()

	var d cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		d.X -= scrollStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		d.X += scrollStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		d.Y -= scrollStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		d.Y += scrollStep
	}
	g.ed.ScrollBy(d)

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.ed.ToggleGrid()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.autotile()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.save()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyJSON()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}

	if !ebuiinput.UIHovered {
		g.updateMouse()
	}
	g.toolbar.setStatus(g.ed.Status())
	return nil
}

func (g *editorGame) updateMouse() {
	if _, wy := ebiten.Wheel(); wy != 0 {
		dir := 1
		if wy > 0 {
			dir = -1
		}
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			g.ed.CycleVariant(dir)
		} else {
			g.ed.CycleGroup(dir)
		}
	}

	cur := g.cursor()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		// Off-grid tiles go down once per click so a held button does not
		// stack copies.
		if g.ed.OnGrid || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.ed.Place(cur)
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		g.ed.Erase(cur)
	}
}

func (g *editorGame) Draw(screen *ebiten.Image) {
	g.canvas.Fill(colornames.Dimgray)
	size := float64(g.ed.Map.TileSize())
	view := common.Rect{
		X: g.ed.Scroll.X, Y: g.ed.Scroll.Y,
		W: float64(g.world.View.Width), H: float64(g.world.View.Height),
	}
	for _, t := range g.ed.Map.Visible(view) {
		x := float32(t.Pos.X - view.X)
		y := float32(t.Pos.Y - view.Y)
		vector.FillRect(g.canvas, x, y, float32(size), float32(size), g.world.Color(t.Type, colornames.Gray), false)
		if !t.OnGrid {
			vector.StrokeRect(g.canvas, x, y, float32(size), float32(size), 1, colornames.Yellow, false)
		}
	}

	// Preview the selected tile at the cursor, snapped when placing on grid.
	cur := g.ed.World(g.cursor())
	if g.ed.OnGrid {
		cur = g.ed.Map.GridToWorld(g.ed.Map.WorldToGrid(cur))
	}
	preview := g.world.Color(g.ed.Current().Type, colornames.Gray)
	vector.StrokeRect(g.canvas, float32(cur.X-view.X), float32(cur.Y-view.Y), float32(size), float32(size), 1, preview, false)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(renderScale, renderScale)
	screen.DrawImage(g.canvas, op)

	g.ui.Draw(screen)
	ebitenutil.DebugPrintAt(screen, "wheel: group  shift+wheel: variant  g t o c", 4, screen.Bounds().Dy()-16)
}

func (g *editorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.world.View.Width * renderScale, g.world.View.Height * renderScale
}
