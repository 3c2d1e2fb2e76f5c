package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
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

// TickSeconds returns the duration of one tick in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Levels completed this run
	Level    int    // Current level index
	LevelID  string // Current level identifier
	GameOver bool   // Whether the game has ended
	Paused   bool   // Whether the game is paused
}

// EventKind identifies what happened during a tick.
type EventKind int

const (
	EventNone          EventKind = iota
	EventLevelComplete           // Craft landed on the finish pad
	EventCrash                   // Craft hit a hazard
	EventLevelSkipped            // Debug skip
)

// String returns the name stored in the flight log.
func (k EventKind) String() string {
	switch k {
	case EventLevelComplete:
		return "success"
	case EventCrash:
		return "crash"
	case EventLevelSkipped:
		return "skipped"
	default:
		return "none"
	}
}

// Event is a notable occurrence reported to the platform (e.g. for persistence).
type Event struct {
	Kind       EventKind
	LevelID    string
	LevelIndex int
	Ticks      int // Ticks spent in the level before the event
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
