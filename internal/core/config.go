package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and to convert ticks into wall time.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the wall-clock length of one simulation tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventNone EventKind = iota
	EventLevelSolved
	EventShotMissed
	EventLevelReset
	EventCampaignComplete
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventLevelSolved:
		return "level_solved"
	case EventShotMissed:
		return "shot_missed"
	case EventLevelReset:
		return "level_reset"
	case EventCampaignComplete:
		return "campaign_complete"
	default:
		return "none"
	}
}

// Event carries details the platform may want to persist or log.
type Event struct {
	Kind     EventKind
	LevelID  string
	Moves    int
	Par      int
	Points   int
	Duration time.Duration
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
