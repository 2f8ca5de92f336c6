package config

import (
	_ "embed"
)

//go:embed defaults/blockslide.yaml
var defaultBlockslideYAML []byte

// DefaultBlockslideConfig returns the default configuration.
func DefaultBlockslideConfig() BlockslideConfig {
	return BlockslideConfig{
		Grid: GridConfig{
			Size: 5,
		},
		Animation: AnimationConfig{
			MoveDurationMs: 200,
			Easing:         "smoothstep",
		},
		Arrow: ArrowConfig{
			CellsPerSecond: 12,
		},
		Scoring: ScoringConfig{
			BasePoints:  1000,
			MovePenalty: 50,
			MinPoints:   100,
		},
		Campaign: CampaignConfig{
			ClearTicks: 90, // 1.5 seconds at 60fps
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBlockslideYAML
}
