package random

import "testing"

func TestRollBounds(t *testing.T) {
	src := NewSeeded(42)
	for i := 0; i < 1000; i++ {
		got := Roll(src, 20)
		if got < 1 || got > 20 {
			t.Fatalf("Roll(20) = %d, want value in [1,20]", got)
		}
	}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi int
	}{
		{name: "single value", lo: 3, hi: 3},
		{name: "small range", lo: 1, hi: 2},
		{name: "wider range", lo: 2, hi: 9},
	}

	src := NewSeeded(7)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make(map[int]bool)
			for i := 0; i < 500; i++ {
				got := Between(src, tt.lo, tt.hi)
				if got < tt.lo || got > tt.hi {
					t.Fatalf("Between(%d, %d) = %d, out of range", tt.lo, tt.hi, got)
				}
				seen[got] = true
			}
			if len(seen) != tt.hi-tt.lo+1 {
				t.Errorf("Between(%d, %d) produced %d distinct values, want %d", tt.lo, tt.hi, len(seen), tt.hi-tt.lo+1)
			}
		})
	}
}

func TestWeighted(t *testing.T) {
	weights := []int{4, 8, 6, 2}

	// Walk every possible roll: index i must be returned exactly weights[i] times.
	values := make([]int, 20)
	for i := range values {
		values[i] = i
	}
	src := NewSequence(values...)

	counts := make([]int, len(weights))
	for range values {
		counts[Weighted(src, weights)]++
	}
	for i, w := range weights {
		if counts[i] != w {
			t.Errorf("index %d selected %d times, want %d", i, counts[i], w)
		}
	}
}

func TestNewSeededIsReproducible(t *testing.T) {
	a := NewSeeded(99)
	b := NewSeeded(99)
	for i := 0; i < 50; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestSequenceWraps(t *testing.T) {
	s := NewSequence(1, 5)
	got := []int{s.Intn(10), s.Intn(10), s.Intn(3), s.Intn(10)}
	want := []int{1, 5, 1, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("draw %d = %d, want %d", i, got[i], want[i])
		}
	}
	if s.Calls() != 4 {
		t.Errorf("Calls() = %d, want 4", s.Calls())
	}
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed() error: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed() error: %v", err)
	}
	if a == b {
		t.Errorf("two seeds were equal: %d", a)
	}
}
