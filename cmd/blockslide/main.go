// blockslide is a terminal sliding-block puzzle: slide rows and columns of
// blocks until the arrow has a clear path to the target.
//
// Usage:
//
//	blockslide                     - Start the interactive menu
//	blockslide play [level-id]     - Play the campaign, optionally from a level
//	blockslide levels              - List levels (--check verifies them)
//	blockslide scores [level-id]   - Show campaign or per-level records
//	blockslide serve               - Start SSH server for remote play
//	blockslide config              - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--db <path>          - Set database path (default: ~/.blockslide/scores.db)
//	--config <path>      - Custom config YAML
//	--levels-dir <path>  - Extra level directory
//	--difficulty <name>  - easy, normal or hard
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockslide/internal/config"
	"github.com/vovakirdan/blockslide/internal/core"
	"github.com/vovakirdan/blockslide/internal/logging"
	"github.com/vovakirdan/blockslide/internal/registry"
	"github.com/vovakirdan/blockslide/internal/storage"

	// Register the game modes
	_ "github.com/vovakirdan/blockslide/internal/games/blockslide"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagLevelsDir  string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockslide",
	Short: "Block Slide - a sliding-block puzzle for your terminal",
	Long: `Block Slide is a terminal puzzle. Slide the movable blocks until the
arrow fired from below has a clear path to the fixed target block.

Available commands:
  play     - Play the campaign or practice a level
  levels   - List and verify levels
  scores   - View records
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Run without a command to open the interactive menu.

Examples:
  blockslide
  blockslide play 03_corridor
  blockslide play 05_mirror --practice
  blockslide levels --check
  blockslide serve --ssh :2222`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockslide/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}

// gameSetup builds the factory options shared by every command.
func gameSetup(logger *log.Logger, startLevel string) registry.Setup {
	return registry.Setup{
		ConfigPath: flagConfig,
		LevelsDir:  flagLevelsDir,
		StartLevel: startLevel,
		Difficulty: flagDifficulty,
		Logger:     logger,
	}
}

// fileLogger logs interactive sessions to ~/.blockslide/blockslide.log so
// output does not corrupt the terminal UI.
func fileLogger() (*log.Logger, func()) {
	dir := config.DataDir()
	if dir == "" {
		return logging.Discard(), func() {}
	}
	logger, closer, err := logging.NewFile(dir, flagLogLevel, "blockslide")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return logging.Discard(), func() {}
	}
	return logger, func() { closer.Close() }
}

// openStore opens the results database. The game still works without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
