// ninja is the platformer and its map tools.
//
// Usage:
//
//	ninja play                     - Play from the saved level (or level 0)
//	ninja autotile <map.json>      - Recompute tile variants in place
//	ninja import <map.tmx> <json>  - Convert a Tiled map
//	ninja stats                    - Show finished runs
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/ninja/common"
)

const appName = "ninja"

var (
	flagDBPath  string
	flagDebug   bool
	flagPrefabs string
)

var logger = common.NewLogger(appName)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "A small tile platformer",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagDebug {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ninja/runs.db", "Path to the run history database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagPrefabs, "prefabs", "prefabs", "Directory whose specs override the built-in ones")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(autotileCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
}
