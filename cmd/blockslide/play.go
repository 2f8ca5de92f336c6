package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockslide/internal/games/blockslide"
	"github.com/vovakirdan/blockslide/internal/platform/tui"
	"github.com/vovakirdan/blockslide/internal/registry"
)

var flagPractice bool

var playCmd = &cobra.Command{
	Use:   "play [level-id]",
	Short: "Play the campaign",
	Long: `Start the campaign, optionally from a given level.

With --practice the chosen level is replayed without scoring.

Controls:
  Arrows/WASD  - Slide blocks
  Space/F      - Fire the arrow
  R            - Reset level (restart run after the campaign)
  P            - Pause
  Esc/B        - Quit to shell when paused or finished
  Q/Ctrl+C     - Quit

Examples:
  blockslide play
  blockslide play 04_crowd
  blockslide play 04_crowd --practice
  blockslide play --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPractice, "practice", false, "Replay a single level without scoring")
}

func runPlay(_ *cobra.Command, args []string) {
	startLevel := ""
	if len(args) == 1 {
		startLevel = args[0]
	}

	gameID := blockslide.GameID
	if flagPractice {
		gameID = blockslide.PracticeGameID
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: game mode %q is not registered\n", gameID)
		os.Exit(1)
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	game, err := registry.Create(gameID, gameSetup(logger, startLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'blockslide levels' to see available levels.")
		os.Exit(1)
	}

	store := openStore(logger)

	_, runErr := tui.Run(game, store, runtimeConfig(), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
