package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soleneko/starfall/internal/registry"
	"github.com/soleneko/starfall/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Displays the top 10 scores recorded for the specified game.

Examples:
  starfall scores patrol
  starfall scores drift`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Unknown game: %s\n\n", gameID)
		fmt.Fprintln(os.Stderr, "Available games:")
		for _, g := range registry.List() {
			fmt.Fprintf(os.Stderr, "  %s - %s\n", g.ID, g.Title)
		}
		return fmt.Errorf("game %q not found", gameID)
	}

	// Resolve game title for the header
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	entries, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("cannot read scores: %w", err)
	}

	fmt.Printf("High scores - %s\n\n", title)

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Run 'starfall play %s' to set one.\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %s\n", "----", "-----", "-----", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-8d  %-5d  %s\n", i+1, e.Score, e.Level, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	best, err := store.HighScore(gameID)
	if err == nil && best > 0 {
		fmt.Printf("\nBest: %d\n", best)
	}

	return nil
}
