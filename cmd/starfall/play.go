package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/soleneko/starfall/internal/core"
	"github.com/soleneko/starfall/internal/games/drift"
	"github.com/soleneko/starfall/internal/games/patrol"
	"github.com/soleneko/starfall/internal/platform/tui"
	"github.com/soleneko/starfall/internal/registry"
	"github.com/soleneko/starfall/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Starts the specified game directly.

Examples:
  starfall play patrol
  starfall play drift --difficulty hard
  starfall play patrol --level 3
  starfall play drift --config my-drift.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a game config YAML file")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset (easy, normal, hard, fixed)")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Starting level (0 = level 1)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Unknown game: %s\n\n", gameID)
		fmt.Fprintln(os.Stderr, "Available games:")
		for _, g := range registry.List() {
			fmt.Fprintf(os.Stderr, "  %s - %s\n", g.ID, g.Title)
		}
		return fmt.Errorf("game %q not found", gameID)
	}

	// Get terminal size
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		// Fallback to reasonable defaults
		width, height = 80, 24
	}

	// Prepare seed
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Forward per-game options before the game is created
	switch gameID {
	case "patrol":
		if flagConfig != "" {
			patrol.SetConfigPath(flagConfig)
		}
		if flagDifficulty != "" {
			patrol.SetDifficultyPreset(flagDifficulty)
		}
		if flagLevel > 0 {
			patrol.SetStartLevel(flagLevel)
		}
	case "drift":
		if flagConfig != "" {
			drift.SetConfigPath(flagConfig)
		}
		if flagDifficulty != "" {
			drift.SetDifficultyPreset(flagDifficulty)
		}
		if flagLevel > 0 {
			drift.SetStartLevel(flagLevel)
		}
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	// Open storage (warn but continue on failure)
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open scores database: %v\n", err)
		fmt.Fprintln(os.Stderr, "Scores will not be saved.")
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	// Build runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	// Run the game
	return tui.Run(game, store, cfg)
}
