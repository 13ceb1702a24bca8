// Package random implements the #RANDOM/#IF/#SWITCH preprocessor that
// decides, for each token after the lexer, whether it is live or dead.
package random

import "math/rand"

// Rng is the pluggable random source the controller draws #RANDOM/#SWITCH
// outcomes from. Range is inclusive on both ends.
type Rng interface {
	Gen(low, high uint32) uint32
}

// MathRandRng adapts math/rand into the Rng interface for production use.
type MathRandRng struct {
	R *rand.Rand
}

// NewMathRandRng builds a MathRandRng seeded the way the teacher's own
// modulation package seeds randomness (internal/modulation/modulation.go
// uses math/rand directly, time-seeded unless a fixed seed is given).
func NewMathRandRng(seed int64) *MathRandRng {
	return &MathRandRng{R: rand.New(rand.NewSource(seed))}
}

func (m *MathRandRng) Gen(low, high uint32) uint32 {
	if high <= low {
		return low
	}
	return low + uint32(m.R.Int63n(int64(high-low+1)))
}

// MockRng returns values from a fixed cyclic array, for deterministic
// tests. Grounded on original_source/src/parse/rng.rs's RngMock<N>, which
// rotates a fixed array left by one and returns its new last element on
// every call.
type MockRng struct {
	values []uint32
	pos    int
}

// NewMockRng builds a MockRng cycling through values in order.
func NewMockRng(values ...uint32) *MockRng {
	if len(values) == 0 {
		values = []uint32{0}
	}
	return &MockRng{values: values}
}

func (m *MockRng) Gen(_, _ uint32) uint32 {
	v := m.values[m.pos]
	m.pos = (m.pos + 1) % len(m.values)
	return v
}

// StepRng mirrors rand::rngs::mock::StepRng(0,0) from the Rust test suite
// (tests/nested_random.rs): its raw output never advances, so every draw
// maps to the low end of the requested range (S2 in spec.md §8: "the
// outer frame selects 1, the inner selects 1" for a 1..=2 draw).
type StepRng struct{}

func (StepRng) Gen(low, _ uint32) uint32 { return low }
