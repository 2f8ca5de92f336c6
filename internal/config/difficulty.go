package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty validates a preset name. Empty selects normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
}

// ApplyBlockslidePreset modifies the config based on a difficulty preset.
// Easy slows the slides and forgives extra moves; hard speeds them up and
// punishes every move over par.
func ApplyBlockslidePreset(cfg *BlockslideConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Animation.MoveDurationMs = cfg.Animation.MoveDurationMs * 3 / 2
		cfg.Scoring.MovePenalty /= 2
	case DifficultyHard:
		cfg.Animation.MoveDurationMs = max(cfg.Animation.MoveDurationMs*2/3, 1)
		cfg.Scoring.MovePenalty *= 2
		cfg.Scoring.MinPoints = 0
	}
}
