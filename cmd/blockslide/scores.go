package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockslide/internal/games/blockslide"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels"
	"github.com/vovakirdan/blockslide/internal/storage"
)

var (
	flagRun   string
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level-id]",
	Short: "Show records",
	Long: `Without arguments, display the top 10 campaign scores.
With a level ID, display the best 10 clears of that level.

With --run, list the levels cleared in one play session (the run ID is
written to the log when a session ends). --clear deletes all records.

Examples:
  blockslide scores
  blockslide scores 02_two_step
  blockslide scores --run 6f1c0d3e-...
  blockslide scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagRun, "run", "", "Show the levels cleared in one run")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all campaign scores and level results")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		for _, id := range []string{blockslide.GameID, blockslide.PracticeGameID} {
			if err = store.ClearScores(id); err != nil {
				break
			}
		}
		if err == nil {
			fmt.Println("Records cleared.")
		}
	case flagRun != "":
		err = printRun(store, flagRun)
	case len(args) == 0:
		err = printCampaignScores(store)
	default:
		err = printLevelScores(store, args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

func printCampaignScores(store *storage.Store) error {
	scores, err := store.TopScores(blockslide.GameID, 10)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - Campaign")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Finish 'blockslide play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "When")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10s  %s\n", i+1, humanize.Comma(int64(entry.Score)), humanize.Time(entry.CreatedAt))
	}

	highScore, err := store.HighScore(blockslide.GameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %s\n", humanize.Comma(int64(highScore)))
	}
	return nil
}

func printLevelScores(store *storage.Store, levelID string) error {
	lvl, err := levels.NewLoader(flagLevelsDir).LoadByID(levelID)
	if err != nil {
		return err
	}

	results, err := store.BestLevelResults(levelID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Best Clears - %s (par %d)\n", lvl.Title(), lvl.Par)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("Not cleared yet.")
		fmt.Println()
		fmt.Printf("Play 'blockslide play %s' to set the first record!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-5s  %-8s  %s\n", "Rank", "Moves", "Time", "When")
	fmt.Printf("  %-4s  %-5s  %-8s  %s\n", "----", "-----", "----", "----")

	for i, r := range results {
		fmt.Printf("  %-4d  %-5d  %-8s  %s\n", i+1, r.Moves, formatDuration(r.Duration.Seconds()), humanize.Time(r.CreatedAt))
	}

	stats, err := store.GetLevelStats(levelID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Clears: %d  Avg moves: %.1f  Last played: %s\n",
			stats.Clears, stats.AvgMoves, humanize.Time(stats.LastPlayed))
	}
	return nil
}

func printRun(store *storage.Store, runID string) error {
	results, err := store.RunResults(runID)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s\n", runID)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No levels recorded for this run.")
		return nil
	}

	fmt.Printf("  %-20s  %-5s  %-3s  %-6s  %s\n", "Level", "Moves", "Par", "Points", "Time")
	fmt.Printf("  %-20s  %-5s  %-3s  %-6s  %s\n", "-----", "-----", "---", "------", "----")

	total := 0
	for _, r := range results {
		total += r.Points
		fmt.Printf("  %-20s  %-5d  %-3d  %-6d  %s\n", r.LevelID, r.Moves, r.Par, r.Points, formatDuration(r.Duration.Seconds()))
	}

	fmt.Println()
	fmt.Printf("Total: %s points, started %s\n", humanize.Comma(int64(total)), humanize.Time(results[0].CreatedAt))
	return nil
}

func formatDuration(seconds float64) string {
	return humanize.FtoaWithDigits(seconds, 1) + "s"
}
