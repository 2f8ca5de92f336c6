package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.blockslide/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".blockslide", "scores.db")); err != nil {
		t.Errorf("expected database under home: %v", err)
	}
}

func TestStoreScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("blockslide", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("blockslide", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not ordered: %v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed")
	}

	top, _ := store.TopScores("blockslide", 2)
	if len(top) != 2 {
		t.Errorf("Expected limit of 2, got %d", len(top))
	}

	high, err := store.HighScore("blockslide")
	if err != nil || high != 200 {
		t.Errorf("HighScore() = %d, %v; want 200", high, err)
	}

	none, err := store.HighScore("missing")
	if err != nil || none != 0 {
		t.Errorf("HighScore() for empty game = %d, %v; want 0", none, err)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("blockslide", 100)
	store.SaveScore("other", 100)
	store.SaveLevelResult(LevelResult{RunID: NewRunID(), GameID: "blockslide", LevelID: "01", Moves: 3})

	if err := store.ClearScores("blockslide"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("blockslide", 10); len(scores) != 0 {
		t.Errorf("Expected no scores after clear, got %d", len(scores))
	}
	if results, _ := store.BestLevelResults("01", 10); len(results) != 0 {
		t.Errorf("Expected no level results after clear, got %d", len(results))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Error("Other game should not be affected by clearing blockslide")
	}
}

func TestStoreLevelResults(t *testing.T) {
	store := openTestStore(t)
	runA, runB := NewRunID(), NewRunID()
	if runA == runB {
		t.Fatal("run IDs should be unique")
	}

	results := []LevelResult{
		{RunID: runA, GameID: "blockslide", LevelID: "01", Moves: 3, Par: 1, Points: 900, Duration: 4 * time.Second},
		{RunID: runA, GameID: "blockslide", LevelID: "02", Moves: 2, Par: 2, Points: 1000, Duration: 2 * time.Second},
		{RunID: runB, GameID: "blockslide", LevelID: "01", Moves: 1, Par: 1, Points: 1000, Duration: 9 * time.Second},
		{RunID: runB, GameID: "blockslide", LevelID: "01", Moves: 1, Par: 1, Points: 1000, Duration: 1500 * time.Millisecond},
	}
	for _, r := range results {
		if _, err := store.SaveLevelResult(r); err != nil {
			t.Fatalf("SaveLevelResult() failed: %v", err)
		}
	}

	best, err := store.BestLevelResults("01", 10)
	if err != nil {
		t.Fatalf("BestLevelResults() failed: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(best))
	}
	if best[0].Moves != 1 || best[0].Duration != 1500*time.Millisecond {
		t.Errorf("Best result = %+v, want 1 move in 1.5s", best[0])
	}
	if best[2].Moves != 3 {
		t.Errorf("Worst result should be last, got %+v", best[2])
	}

	run, err := store.RunResults(runA)
	if err != nil {
		t.Fatalf("RunResults() failed: %v", err)
	}
	if len(run) != 2 || run[0].LevelID != "01" || run[1].LevelID != "02" {
		t.Errorf("RunResults() = %+v", run)
	}

	stats, err := store.GetLevelStats("01")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Clears != 3 || stats.BestMoves != 1 || stats.BestTime != 1500*time.Millisecond {
		t.Errorf("GetLevelStats() = %+v", stats)
	}
	if stats.AvgMoves < 1.66 || stats.AvgMoves > 1.67 {
		t.Errorf("AvgMoves = %v, want ~1.67", stats.AvgMoves)
	}

	empty, err := store.GetLevelStats("99")
	if err != nil {
		t.Fatalf("GetLevelStats() for unplayed level failed: %v", err)
	}
	if empty.Clears != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Unplayed level stats = %+v", empty)
	}

	all, err := store.GetAllLevelStats()
	if err != nil {
		t.Fatalf("GetAllLevelStats() failed: %v", err)
	}
	if len(all) != 2 || all["02"].Clears != 1 {
		t.Errorf("GetAllLevelStats() = %v", all)
	}
}

func TestStoreLevelResultRequiresRun(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveLevelResult(LevelResult{LevelID: "01"}); err == nil {
		t.Error("expected error for missing run id")
	}
}
