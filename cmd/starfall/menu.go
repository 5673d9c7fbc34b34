package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/soleneko/starfall/internal/core"
	"github.com/soleneko/starfall/internal/platform/tui"
	"github.com/soleneko/starfall/internal/registry"
	"github.com/soleneko/starfall/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive game picker",
	Long: `Opens an interactive menu to browse and play games.

Use arrow keys or W/S to navigate, Enter to select,
Tab for the scoreboard, Q to quit.`,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, args []string) error {
	// Get terminal size
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	// Open storage (warn but continue on failure)
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open scores database: %v\n", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Menu loop: menu -> game -> menu, until quit
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return fmt.Errorf("menu error: %w", err)
		}

		if result.Quit {
			return nil
		}

		// Carry over any resize from the menu
		cfg = result.Config

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return fmt.Errorf("scoreboard error: %w", err)
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			return fmt.Errorf("cannot create game: %w", err)
		}

		// Fresh seed per run unless the user pinned one
		gameCfg := cfg
		if gameCfg.Seed == 0 {
			gameCfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, gameCfg); err != nil {
			return fmt.Errorf("game error: %w", err)
		}
	}
}
