// Package config provides YAML-based configuration loading and difficulty
// presets for the block slide puzzle.
package config

import (
	"fmt"
	"time"
)

// BlockslideConfig contains all tunable settings for the puzzle.
type BlockslideConfig struct {
	Grid      GridConfig      `yaml:"grid"`
	Animation AnimationConfig `yaml:"animation"`
	Arrow     ArrowConfig     `yaml:"arrow"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Campaign  CampaignConfig  `yaml:"campaign"`
}

// GridConfig defines the board dimensions.
type GridConfig struct {
	Size int `yaml:"size"` // Side length; levels of another size are rejected
}

// AnimationConfig defines how slides are tweened.
type AnimationConfig struct {
	MoveDurationMs int    `yaml:"move_duration_ms"`
	Easing         string `yaml:"easing"` // "smoothstep", "linear" or "ease_out_quad"
}

// ArrowConfig defines the solve shot.
type ArrowConfig struct {
	CellsPerSecond float64 `yaml:"cells_per_second"`
}

// ScoringConfig defines points awarded per cleared level.
type ScoringConfig struct {
	BasePoints  int `yaml:"base_points"`
	MovePenalty int `yaml:"move_penalty"` // Deducted per move over par
	MinPoints   int `yaml:"min_points"`
}

// CampaignConfig defines level progression.
type CampaignConfig struct {
	ClearTicks int `yaml:"clear_ticks"` // Ticks the level-cleared banner stays up
}

// MoveDuration returns the slide duration.
func (c BlockslideConfig) MoveDuration() time.Duration {
	return time.Duration(c.Animation.MoveDurationMs) * time.Millisecond
}

// Points returns the score for clearing a level in moves against par.
func (s ScoringConfig) Points(moves, par int) int {
	over := moves - par
	if over < 0 {
		over = 0
	}
	pts := s.BasePoints - s.MovePenalty*over
	if pts < s.MinPoints {
		pts = s.MinPoints
	}
	return pts
}

// Validate reports the first invalid setting.
func (c BlockslideConfig) Validate() error {
	switch {
	case c.Grid.Size < 2:
		return fmt.Errorf("config: grid.size must be at least 2, got %d", c.Grid.Size)
	case c.Animation.MoveDurationMs <= 0:
		return fmt.Errorf("config: animation.move_duration_ms must be positive, got %d", c.Animation.MoveDurationMs)
	case c.Arrow.CellsPerSecond <= 0:
		return fmt.Errorf("config: arrow.cells_per_second must be positive, got %v", c.Arrow.CellsPerSecond)
	case c.Scoring.MinPoints < 0 || c.Scoring.MinPoints > c.Scoring.BasePoints:
		return fmt.Errorf("config: scoring.min_points must be within 0..base_points, got %d", c.Scoring.MinPoints)
	case c.Campaign.ClearTicks < 0:
		return fmt.Errorf("config: campaign.clear_ticks must not be negative, got %d", c.Campaign.ClearTicks)
	}
	return nil
}
