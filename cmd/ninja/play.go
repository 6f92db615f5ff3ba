package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"github.com/milk9111/ninja/assets"
	"github.com/milk9111/ninja/game"
	"github.com/milk9111/ninja/levels"
	"github.com/milk9111/ninja/prefabs"
	"github.com/milk9111/ninja/render"
	"github.com/milk9111/ninja/save"
	"github.com/milk9111/ninja/stats"
)

var (
	flagLevel    int
	flagSeed     uint64
	flagLevelDir string
	flagWatch    bool
	flagNoSave   bool
	flagAutotile bool
	flagMute     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Open the game window.

Controls:
  Left/Right or A/D  - Move
  Up/W/Space         - Jump (again in the air, or off a wall)
  X/Shift            - Dash
  R                  - Restart the level
  Esc                - Quit`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", -1, "Start level (-1 resumes the saved level)")
	playCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = time based)")
	playCmd.Flags().StringVar(&flagLevelDir, "levels", "", "Load levels from this directory instead of the built-in set")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload specs when files under --prefabs change")
	playCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not read or write saved progress")
	playCmd.Flags().BoolVar(&flagAutotile, "autotile", false, "Autotile each level on load")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

type playGame struct {
	session  *game.Session
	renderer *render.Renderer
	mixer    *assets.Mixer
	save     *save.Store
	stats    *stats.Store
	watcher  *prefabs.Watcher
	seed     uint64
	runStart uint64
}

func runPlay(cmd *cobra.Command, args []string) error {
	prefabs.Dir = flagPrefabs

	specs, err := prefabs.LoadAll()
	if err != nil {
		return err
	}
	cat, err := openCatalog()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	opts := game.Options{
		Seed:       seed,
		Logger:     logger,
		StartLevel: flagLevel,
		Autotile:   flagAutotile,
	}

	g := &playGame{renderer: render.New(seed), seed: seed}
	if !flagNoSave {
		if g.save, err = save.Open(appName); err != nil {
			logger.Warn("progress will not be saved", "err", err)
		}
	}
	if g.save != nil && flagLevel < 0 {
		if p, ok, err := g.save.Load(); err != nil {
			logger.Warn("could not read saved progress", "err", err)
		} else if ok {
			opts.StartLevel = p.Level
			opts.Deaths = p.Deaths
			logger.Info("resuming", "level", p.Level, "deaths", p.Deaths)
		}
	}
	if opts.StartLevel < 0 {
		opts.StartLevel = 0
	}

	if g.stats, err = stats.Open(flagDBPath); err != nil {
		logger.Warn("runs will not be recorded", "err", err)
	} else {
		defer g.stats.Close()
	}

	if g.session, err = game.NewSession(cat, specs, opts); err != nil {
		return err
	}
	g.runStart = g.session.Frame

	if flagWatch {
		dirs := []string{prefabs.Dir}
		if scripts := filepath.Join(prefabs.Dir, "scripts"); isDir(scripts) {
			dirs = append(dirs, scripts)
		}
		if g.watcher, err = prefabs.NewWatcher(dirs...); err != nil {
			logger.Warn("hot reload disabled", "err", err)
		} else {
			defer g.watcher.Close()
			logger.Info("watching specs", "dirs", dirs)
		}
	}

	if !flagMute {
		if g.mixer, err = assets.NewMixer(audio.NewContext(assets.SampleRate), specs.World.Audio, logger); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer g.mixer.Close()
			g.mixer.Loop("ambience")
		}
	}

	win := specs.World.Window
	ebiten.SetWindowSize(win.Width, win.Height)
	ebiten.SetWindowTitle(appName)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(g)
	fmt.Printf("level %d, deaths %d\n", g.session.Level+1, g.session.Deaths)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func openCatalog() (*levels.Catalog, error) {
	if flagLevelDir != "" {
		return levels.Dir(flagLevelDir)
	}
	return levels.Embedded()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func pollInput() game.Input {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	justPressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}
	return game.Input{
		Left:    pressed(ebiten.KeyLeft, ebiten.KeyA),
		Right:   pressed(ebiten.KeyRight, ebiten.KeyD),
		Jump:    justPressed(ebiten.KeyUp, ebiten.KeyW, ebiten.KeySpace),
		Dash:    justPressed(ebiten.KeyX, ebiten.KeyShiftLeft, ebiten.KeyShiftRight),
		Restart: justPressed(ebiten.KeyR),
	}
}

func (g *playGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.saveProgress()
		return ebiten.Termination
	}
	g.reloadSpecs()

	if err := g.session.Update(pollInput()); err != nil {
		return err
	}
	for _, ev := range g.session.Events() {
		g.handle(ev)
	}
	return nil
}

func (g *playGame) reloadSpecs() {
	if g.watcher == nil {
		return
	}
	select {
	case name, ok := <-g.watcher.Events:
		if !ok {
			return
		}
		specs, err := prefabs.LoadAll()
		if err == nil {
			err = g.session.ApplySpecs(specs)
		}
		if err != nil {
			logger.Error("reload failed", "file", name, "err", err)
			return
		}
		if g.mixer != nil {
			g.mixer.SetVolumes(specs.World.Audio)
		}
		logger.Info("specs reloaded", "file", name)
	case err, ok := <-g.watcher.Errors:
		if ok {
			logger.Warn("watcher", "err", err)
		}
	default:
	}
}

func (g *playGame) handle(ev game.Event) {
	if cue := ev.Cue(); cue != "" {
		logger.Debug("sfx", "cue", cue, "volume", g.session.Specs().World.Volume(cue))
		if g.mixer != nil {
			g.mixer.Play(cue)
		}
	}

	switch ev.Kind {
	case game.EventLevelLoaded:
		g.saveProgress()
	case game.EventRunComplete:
		run := stats.Run{
			Levels: g.session.Catalog().Count(),
			Deaths: ev.Deaths,
			Frames: g.session.Frame - g.runStart,
			Seed:   g.seed,
		}
		g.runStart = g.session.Frame
		if g.stats == nil {
			return
		}
		if _, err := g.stats.RecordRun(run); err != nil {
			logger.Error("record run", "err", err)
		}
	}
}

func (g *playGame) saveProgress() {
	if g.save == nil {
		return
	}
	p := save.Progress{Level: g.session.Level, Deaths: g.session.Deaths}
	if err := g.save.Save(p); err != nil {
		logger.Warn("save progress", "err", err)
	}
}

func (g *playGame) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.session)
}

func (g *playGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.renderer.Layout(g.session)
}
