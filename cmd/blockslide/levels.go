package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/puzzle"
	"github.com/vovakirdan/blockslide/internal/registry"
)

var (
	flagCheck     bool
	flagMaxStates int
	flagIDsOnly   bool
	flagFile      string
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long: `Shows the campaign levels, built-in plus any from --levels-dir.

With --check every level is solved by search to confirm it can be
cleared and that its par is the optimal move count.

With --file a single level file is validated instead.

Examples:
  blockslide levels
  blockslide levels --check
  blockslide levels --ids
  blockslide levels --file ./my-levels/level_11.yaml
  blockslide levels --levels-dir ./my-levels --check`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagCheck, "check", false, "Verify every level is solvable within par")
	levelsCmd.Flags().IntVar(&flagMaxStates, "max-states", 200000, "Search limit per level for --check")
	levelsCmd.Flags().BoolVar(&flagIDsOnly, "ids", false, "Print only level IDs, one per line")
	levelsCmd.Flags().StringVar(&flagFile, "file", "", "Validate a single level file")
}

func runLevels(_ *cobra.Command, _ []string) {
	loader := levels.NewLoader(flagLevelsDir)

	if flagFile != "" {
		checkFile(loader, flagFile)
		return
	}

	if flagIDsOnly {
		ids, err := loader.ListIDs()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
			os.Exit(1)
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return
	}

	lvls, err := loader.Campaign()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-*s  %-16s  %4s  %3s", maxIDLen, "ID", "Name", "Size", "Par")
	if flagCheck {
		fmt.Print("  Check")
	}
	fmt.Println()
	fmt.Printf("  %-*s  %-16s  %4s  %3s\n", maxIDLen, "--", "----", "----", "---")

	failed := 0
	for _, l := range lvls {
		fmt.Printf("  %-*s  %-16s  %4d  %3d", maxIDLen, l.ID, l.Title(), l.Size, l.Par)
		if flagCheck {
			res, err := levels.ValidateSolvable(l, flagMaxStates)
			if err != nil {
				failed++
				fmt.Printf("  FAIL %v", err)
			} else {
				fmt.Printf("  ok, optimal %d (%s), %s states",
					len(res.Path), formatPath(res), humanize.Comma(int64(res.Explored)))
			}
		}
		fmt.Println()
	}

	fmt.Println()
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d levels failed\n", failed, len(lvls))
		os.Exit(1)
	}
	fmt.Println("Run 'blockslide play <id>' to start from a level.")
	fmt.Println()
	fmt.Println("Game modes:")
	for _, g := range registry.List() {
		fmt.Printf("  %-20s  %s\n", g.ID, g.Title)
	}
}

// checkFile validates one level file, including a solvability search.
func checkFile(loader *levels.Loader, path string) {
	lvl, err := loader.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid level: %v\n", err)
		os.Exit(1)
	}

	res, err := levels.ValidateSolvable(lvl, flagMaxStates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", lvl.ID, err)
		os.Exit(1)
	}
	fmt.Printf("%s: ok, par %d, optimal %d (%s), %s states\n",
		lvl.ID, lvl.Par, len(res.Path), formatPath(res), humanize.Comma(int64(res.Explored)))
}

// formatPath renders a solution as direction initials, e.g. "UDL".
func formatPath(res puzzle.SolveResult) string {
	var b strings.Builder
	for _, d := range res.Path {
		b.WriteString(strings.ToUpper(d.String()[:1]))
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}
