package levels

import "fmt"

// Sequence is the ordered campaign with a current position.
type Sequence struct {
	levels  []*Level
	current int
}

// NewSequence creates a sequence starting at index start.
func NewSequence(levels []*Level, start int) (*Sequence, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("levels: empty sequence")
	}
	s := &Sequence{levels: levels}
	if err := s.Select(start); err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the number of levels.
func (s *Sequence) Len() int {
	return len(s.levels)
}

// Index returns the current level index.
func (s *Sequence) Index() int {
	return s.current
}

// Current returns the current level.
func (s *Sequence) Current() *Level {
	return s.levels[s.current]
}

// Level returns the level at index i.
func (s *Sequence) Level(i int) *Level {
	return s.levels[i]
}

// Select jumps to index i.
func (s *Sequence) Select(i int) error {
	if i < 0 || i >= len(s.levels) {
		return fmt.Errorf("levels: index %d out of range [0, %d)", i, len(s.levels))
	}
	s.current = i
	return nil
}

// Advance moves to the next level, wrapping to the first after the last.
// Returns the new index.
func (s *Sequence) Advance() int {
	s.current++
	if s.current == len(s.levels) {
		s.current = 0
	}
	return s.current
}

// Restart keeps the current level. Returns its index.
func (s *Sequence) Restart() int {
	return s.current
}
