package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels"
	"github.com/vovakirdan/blockslide/internal/platform/tui"
	"github.com/vovakirdan/blockslide/internal/registry"
)

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := fileLogger()
	defer closeLog()

	lvls, err := levels.NewLoader(flagLevelsDir).Campaign()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(lvls, store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsRecords {
			goBack, recErr := tui.RunRecords(store, lvls, cfg.ScreenW, cfg.ScreenH)
			if recErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", recErr)
			}
			if goBack {
				continue
			}
			return
		}

		sel := menuResult.Selection
		game, err := registry.Create(sel.GameID, gameSetup(logger, sel.StartLevel))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			return
		}

		backToMenu, err := tui.Run(game, store, cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		if !backToMenu {
			return
		}
	}
}
