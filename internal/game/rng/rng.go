// Package rng implements the deterministic random stream used by the
// simulation. The generator is a PCG32 variant with pure integer state, so
// identical seeds produce identical output on every platform. All
// randomness in a match must flow through a single Stream owned by the
// game state, or replays diverge.
package rng

// defaultStream selects the PCG output stream when only a seed is given.
const defaultStream uint64 = 1442695040888963407

const multiplier uint64 = 6364136223846793005

// Stream is a seeded deterministic random number generator.
type Stream struct {
	seed  uint64
	state uint64
	inc   uint64
}

// New creates a stream seeded with the given value.
func New(seed uint64) *Stream {
	s := &Stream{seed: seed, inc: defaultStream<<1 | 1}
	s.Uint32()
	s.state += seed
	s.Uint32()
	return s
}

// Uint32 returns the next 32 random bits.
func (s *Stream) Uint32() uint32 {
	old := s.state
	s.state = old*multiplier + s.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Float64 returns a value in [0, 1).
func (s *Stream) Float64() float64 {
	return float64(s.Uint32()) / (1 << 32)
}

// Range returns a value in [min, max).
func (s *Stream) Range(min, max float64) float64 {
	return min + s.Float64()*(max-min)
}

// IntRange returns an integer in the half-open interval [min, max).
// Returns min when the interval is empty.
func (s *Stream) IntRange(min, max int) int {
	if min >= max {
		return min
	}
	span := uint32(max - min)
	return min + int(s.Uint32()%span)
}

// Seed returns the seed this stream was created with.
func (s *Stream) Seed() uint64 {
	return s.seed
}

// State captures the full internal generator state for serialization.
type State struct {
	Seed  uint64
	State uint64
	Inc   uint64
}

// Save exports the generator state. Restoring it with Restore resumes the
// exact output sequence.
func (s *Stream) Save() State {
	return State{Seed: s.seed, State: s.state, Inc: s.inc}
}

// Restore builds a stream from a saved state.
func Restore(st State) *Stream {
	return &Stream{seed: st.Seed, state: st.State, inc: st.Inc}
}
