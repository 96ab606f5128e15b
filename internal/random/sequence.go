package random

import "sync"

// Sequence replays a fixed list of values, wrapping around when exhausted.
// Each value is reduced modulo n so a sequence can drive any roll.
type Sequence struct {
	mu     sync.Mutex
	values []int
	pos    int
}

// NewSequence returns a Sequence over the given values.
func NewSequence(values ...int) *Sequence {
	if len(values) == 0 {
		values = []int{0}
	}
	return &Sequence{values: values}
}

func (s *Sequence) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.pos%len(s.values)]
	s.pos++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Calls returns how many values have been drawn.
func (s *Sequence) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}
