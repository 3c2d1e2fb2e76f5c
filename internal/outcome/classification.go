// Package outcome decides how a flight ends.
//
// A Machine starts every level in Flying. The first goal or hazard contact
// moves it to a terminal state, locks the craft, plays feedback and schedules
// exactly one level change. Afterwards every contact is ignored.
package outcome

// Classification is what the craft touched, resolved once at the physics boundary.
type Classification int

const (
	Hazard Classification = iota // Zero value fails closed
	Benign
	Goal
)

// Tags used by level data.
const (
	TagFriendly = "Friendly"
	TagFinish   = "Finish"
)

// Classify resolves a collider tag. Anything that is not explicitly friendly
// or a finish pad is a hazard.
func Classify(tag string) Classification {
	switch tag {
	case TagFriendly:
		return Benign
	case TagFinish:
		return Goal
	default:
		return Hazard
	}
}

// String returns a human-readable name for the classification.
func (c Classification) String() string {
	switch c {
	case Benign:
		return "benign"
	case Goal:
		return "goal"
	case Hazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// Contact is a collision between the craft and another collider.
type Contact struct {
	Classification Classification
	Collider       string // Optional description for logs
}

// State is where the machine is in a level's lifecycle.
type State int

const (
	Flying State = iota
	Succeeding
	Failing
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Flying:
		return "flying"
	case Succeeding:
		return "succeeding"
	case Failing:
		return "failing"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further contacts are processed.
func (s State) Terminal() bool {
	return s == Succeeding || s == Failing
}
