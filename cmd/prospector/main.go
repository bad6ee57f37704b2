// prospector is a terminal asteroid-mining game: fly out from Kronos
// station, mine the belt, keep the aliens off your cargo and dock before
// the tank runs dry.
//
// Usage:
//
//	prospector play     - Fly a run in this terminal
//	prospector scores   - Show the leaderboard and run history
//	prospector serve    - Start SSH server for remote play
//	prospector config   - Print the default tuning file
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.prospector/scores.db)
//	--log-file <path>   - Write game events to a log file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "prospector",
	Short: "Kronos Belt Prospector - mine asteroids in your terminal",
	Long: `Kronos Belt Prospector is a terminal mining game. Launch from the
station, break asteroids apart with your mining beam, scoop up the ore and
dock to sell it. Aliens will latch onto your hull and drain your cargo;
shoot them down to get it back. When the fuel runs out the run is over.

Available commands:
  play     - Fly a run
  scores   - View the leaderboard and run history
  serve    - Start SSH server for remote play
  config   - Print the default tuning file

Examples:
  prospector play
  prospector play --difficulty hard
  prospector serve --ssh :2222
  prospector scores --tui`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.prospector/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write game events to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// openLogger returns the game event logger. The terminal belongs to the
// game, so without --log-file events are dropped.
func openLogger() (*log.Logger, io.Closer, error) {
	if flagLogFile == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "prospector",
		Level:           log.DebugLevel,
	})
	return logger, f, nil
}
