package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/milk9111/ninja/prefabs"
	"github.com/milk9111/ninja/tilemap"
)

var autotileCmd = &cobra.Command{
	Use:   "autotile <map.json>",
	Short: "Recompute autotile variants of a map in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := tilemapConfig()
		if err != nil {
			return err
		}
		m, err := tilemap.Open(args[0], cfg)
		if err != nil {
			return err
		}
		changed := m.Autotile()
		if err := m.SaveFile(args[0]); err != nil {
			return err
		}
		logger.Info("autotiled", "map", args[0], "changed", changed)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <map.tmx> <out.json>",
	Short: "Convert a Tiled map into the level format",
	Long: `Convert a Tiled TMX map. Each tile's "type" property (or its tileset
name) gives the tile type, and its "variant" property (or index within the
tileset) gives the variant. Object layers become off-grid tiles.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := tilemapConfig()
		if err != nil {
			return err
		}
		src, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		m, err := tilemap.ImportTMX(os.DirFS(filepath.Dir(src)), filepath.Base(src), cfg)
		if err != nil {
			return err
		}
		if err := m.SaveFile(args[1]); err != nil {
			return err
		}
		logger.Info("imported", "from", args[0], "to", args[1], "tiles", m.Len(), "offgrid", len(m.Offgrids()))
		return nil
	},
}

func tilemapConfig() (tilemap.Config, error) {
	prefabs.Dir = flagPrefabs
	w, err := prefabs.LoadWorldSpec()
	if err != nil {
		return tilemap.Config{}, err
	}
	return w.TilemapConfig(), nil
}
