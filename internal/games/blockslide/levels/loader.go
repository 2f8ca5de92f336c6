// Package levels provides level loading for the block slide puzzle.
// This package depends on puzzle but puzzle does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels/formats"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/puzzle"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

var (
	// ErrLevelNotFound is returned by LoadByID for an unknown ID.
	ErrLevelNotFound = errors.New("levels: level not found")
	// ErrNoLevels is returned when no valid level could be loaded.
	ErrNoLevels = errors.New("levels: no levels available")
)

// Level represents a complete level definition.
type Level struct {
	ID          string
	Name        string
	Size        int
	ArrowColumn int
	Par         int
	Rows        []string
	Metadata    map[string]string
	FilePath    string
}

// ToGrid creates a Grid from the level rows.
func (l *Level) ToGrid() (*puzzle.Grid, error) {
	g, err := puzzle.ParseGrid(l.Rows)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return g, nil
}

// Title returns the display name, falling back to the ID.
func (l *Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Loader loads the embedded campaign plus an optional directory of level
// files. Directory levels replace built-in levels with the same ID.
type Loader struct {
	Root string

	builtin fs.FS
}

// NewLoader creates a loader. An empty root loads only built-in levels.
func NewLoader(root string) *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("levels: builtin fs: %v", err))
	}
	return &Loader{Root: root, builtin: sub}
}

// LoadAll loads every valid level, sorted by ID for deterministic ordering.
// Invalid files are skipped.
func (l *Loader) LoadAll() ([]Level, error) {
	byID := make(map[string]Level)

	builtin, err := loadFS(l.builtin, "builtin")
	if err != nil {
		return nil, err
	}
	for _, lvl := range builtin {
		byID[lvl.ID] = lvl
	}

	if l.Root != "" {
		custom, err := loadFS(os.DirFS(l.Root), l.Root)
		if err != nil {
			return nil, err
		}
		for _, lvl := range custom {
			byID[lvl.ID] = lvl
		}
	}

	levels := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		levels = append(levels, lvl)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// Campaign returns all levels and fails with ErrNoLevels when there are none.
func (l *Loader) Campaign() ([]Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	return levels, nil
}

// LoadFile loads and validates a single level file from disk.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parseLevel(data, p)
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// loadFS walks fsys and parses every supported file, skipping invalid ones.
func loadFS(fsys fs.FS, label string) ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil
		}
		level, err := parseLevel(data, path.Join(label, p))
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", label, err)
	}

	return levels, nil
}

func parseLevel(data []byte, p string) (Level, error) {
	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	level := Level{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Size:        parsed.Size,
		ArrowColumn: parsed.ArrowColumn,
		Par:         parsed.Par,
		Rows:        parsed.Rows,
		Metadata:    parsed.Metadata,
		FilePath:    p,
	}
	if err := Validate(level); err != nil {
		return Level{}, fmt.Errorf("validating file %s: %w", p, err)
	}
	return level, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
