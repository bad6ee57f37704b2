package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/prospector/internal/platform/tui"
	"github.com/vovakirdan/prospector/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard and run history",
	Long: `Display the top 10 pilots and lifetime statistics.

Examples:
  prospector scores
  prospector scores --tui
  prospector scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores and run history interactively")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Erase the leaderboard and run history")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := clearScores(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Leaderboard and run history cleared.")
		return

	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scores, err := store.TopScores(storage.MaxHighScores)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Kronos Belt")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'prospector play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-5s  %-8s  %-8s  %-5s  %s\n", "Rank", "Pilot", "Score", "Missions", "Ore", "Date")
	fmt.Printf("  %-4s  %-5s  %-8s  %-8s  %-5s  %s\n", "----", "-----", "-----", "--------", "---", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-5s  %-8d  %-8d  %-5d  %s\n",
			i+1, e.Name, e.Score, e.Missions, e.Cargo, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.RunStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read run history: %v\n", err)
		return
	}
	if stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Ore delivered: %d  Flight time: %s\n",
			stats.Runs, stats.BestScore, stats.AvgScore, stats.TotalCargo, stats.TotalFlight.Round(time.Second))
	}
}

func clearScores(store *storage.Store) error {
	if err := store.ClearHighScores(); err != nil {
		return err
	}
	return store.ClearRuns()
}
