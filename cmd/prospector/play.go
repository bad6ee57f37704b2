package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/prospector/internal/config"
	"github.com/vovakirdan/prospector/internal/core"
	"github.com/vovakirdan/prospector/internal/platform/tui"
	"github.com/vovakirdan/prospector/internal/run"
	"github.com/vovakirdan/prospector/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fly a run",
	Long: `Launch from Kronos station and start prospecting.

Controls:
  WASD/Arrows/HJKL - Turn toward a direction and burn
  Space/X          - Fire the mining beam
  E                - Dock (inside the station ring)
  P                - Pause
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

At the station:
  Up/Down + Enter  - Buy an upgrade
  F                - Refuel
  L                - Launch

Difficulty options:
  easy   - Fewer aliens, slower drain, gentle ramp
  normal - Starts part way up the ramp
  hard   - More aliens, sooner
  fixed  - No progression, stays at config's initial level

Examples:
  prospector play
  prospector play --difficulty easy
  prospector play --config ./my-belt.yaml
  prospector play --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// loadGameConfig resolves the tuning file and applies the difficulty preset.
func loadGameConfig() (config.ProspectorConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.ProspectorConfig{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	logger, logCloser, err := openLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	// A missing database only costs the leaderboard.
	var board run.Leaderboard
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		board = store
	}

	ctrl, err := run.Setup(gameCfg, rt.Seed, board, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("session", "seed", rt.Seed, "difficulty", flagDifficulty)

	runErr := tui.Run(ctrl, rt, gameCfg.World.DockRadius)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
