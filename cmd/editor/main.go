// editor is the level editor.
//
//	editor [map.json]
//
// Left click places the selected tile, right click erases. The wheel picks
// the tile group and shift+wheel the variant. WASD or the arrows scroll.
// G toggles grid snapping, T autotiles, O saves, C copies the map JSON.
package main

import (
	"errors"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/ninja/common"
	"github.com/milk9111/ninja/editor"
	"github.com/milk9111/ninja/prefabs"
)

const (
	renderScale = 2
	scrollStep  = 5
)

var logger = common.NewLogger("editor")

func main() {
	prefabDir := flag.String("prefabs", "prefabs", "directory whose specs override the built-in ones")
	flag.Parse()

	path := "map.json"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	prefabs.Dir = *prefabDir

	world, err := prefabs.LoadWorldSpec()
	if err != nil {
		logger.Fatal("load world spec", "err", err)
	}
	ed, err := editor.Open(path, world.TilemapConfig(), world.TileGroups)
	if err != nil {
		logger.Fatal("open map", "path", path, "err", err)
	}
	logger.Info("editing", "path", path, "tiles", ed.Map.Len())

	g := newEditorGame(ed, world)
	ebiten.SetWindowSize(world.View.Width*renderScale, world.View.Height*renderScale)
	ebiten.SetWindowTitle("editor")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("editor", "err", err)
		os.Exit(1)
	}
}
