package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/milk9111/ninja/stats"
)

var flagLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show finished runs",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of recent runs to list")
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = cellStyle.Foreground(lipgloss.Color("2"))
)

func runStats(cmd *cobra.Command, args []string) error {
	store, err := stats.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs finished yet.")
		return nil
	}
	best, _, err := store.BestRun()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render("Recent runs"))
	fmt.Fprintln(out, runsTable(runs, best.ID))
	fmt.Fprintf(out, "Best: %d deaths in %s\n", best.Deaths, runTime(best.Frames))
	return nil
}

func runsTable(runs []stats.Run, bestID int64) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Date", "Levels", "Deaths", "Time", "Seed").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if runs[row].ID == bestID {
				return bestStyle
			}
			return cellStyle
		})
	for _, r := range runs {
		t.Row(
			strconv.FormatInt(r.ID, 10),
			r.CreatedAt.Format("2006-01-02 15:04"),
			strconv.Itoa(r.Levels),
			strconv.Itoa(r.Deaths),
			runTime(r.Frames),
			strconv.FormatUint(r.Seed, 10),
		)
	}
	return t.Render()
}

// runTime converts update ticks at ebiten's 60 TPS into wall time.
func runTime(frames uint64) string {
	return (time.Duration(frames) * time.Second / 60).Round(time.Second).String()
}
