package tui

import (
	"time"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

// DefaultHoldWindow is used when no hold window is configured.
const DefaultHoldWindow = 150 * time.Millisecond

// opposites lists actions that cancel each other when pressed.
var opposites = map[core.Action]core.Action{
	core.ActionRotateLeft:  core.ActionRotateRight,
	core.ActionRotateRight: core.ActionRotateLeft,
}

// HoldTracker turns key presses into held actions.
// A held action stays active until window passes without a repeat.
type HoldTracker struct {
	window time.Duration
	last   map[core.Action]time.Time
}

// NewHoldTracker creates a tracker. A non-positive window uses DefaultHoldWindow.
func NewHoldTracker(window time.Duration) *HoldTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldTracker{
		window: window,
		last:   make(map[core.Action]time.Time),
	}
}

// Press records a key press or repeat. Pressing one rotation direction
// releases the other immediately.
func (h *HoldTracker) Press(a core.Action, at time.Time) {
	if opp, ok := opposites[a]; ok {
		delete(h.last, opp)
	}
	h.last[a] = at
}

// Held reports whether the action is still considered held at now.
func (h *HoldTracker) Held(a core.Action, now time.Time) bool {
	at, ok := h.last[a]
	return ok && now.Sub(at) < h.window
}

// Apply sets every held action on the frame and forgets expired ones.
func (h *HoldTracker) Apply(frame *core.InputFrame, now time.Time) {
	for a := range h.last {
		if h.Held(a, now) {
			frame.Set(a)
		} else {
			delete(h.last, a)
		}
	}
}

// Reset releases every action.
func (h *HoldTracker) Reset() {
	clear(h.last)
}
