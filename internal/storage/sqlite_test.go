package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some runs
	if _, err := store.SaveScore("patrol", 1200, 2); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveScore("patrol", 500, 1); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveScore("patrol", 3400, 4); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	if _, err := store.SaveScore("drift", 900, 1); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for patrol
	scores, err := store.TopScores("patrol", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 3400 || scores[0].Level != 4 {
		t.Errorf("Expected top entry 3400/level 4, got %d/level %d", scores[0].Score, scores[0].Level)
	}
	if scores[1].Score != 1200 {
		t.Errorf("Expected second score to be 1200, got %d", scores[1].Score)
	}
	if scores[2].Score != 500 {
		t.Errorf("Expected third score to be 500, got %d", scores[2].Score)
	}

	// Retrieve top scores for drift
	driftScores, err := store.TopScores("drift", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(driftScores) != 1 {
		t.Errorf("Expected 1 drift score, got %d", len(driftScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		if _, err := store.SaveScore("patrol", i*100, 1); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("patrol", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("patrol")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty game, got %d", high)
	}

	store.SaveScore("patrol", 100, 1)
	store.SaveScore("patrol", 2500, 3)
	store.SaveScore("patrol", 800, 2)

	high, err = store.HighScore("patrol")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 2500 {
		t.Errorf("Expected 2500, got %d", high)
	}
}

func TestStoreBestLevel(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	best, err := store.BestLevel("drift")
	if err != nil {
		t.Fatalf("BestLevel() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for empty game, got %d", best)
	}

	store.SaveScore("drift", 100, 1)
	store.SaveScore("drift", 50, 6)

	best, err = store.BestLevel("drift")
	if err != nil {
		t.Fatalf("BestLevel() failed: %v", err)
	}
	if best != 6 {
		t.Errorf("Expected best level 6, got %d", best)
	}
}
