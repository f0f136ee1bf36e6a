package game

import (
	"fmt"

	"github.com/jtsang27/crust-sim/internal/game/cards"
)

// Cursor walks a recorded replay tick by tick. Position i means the first i
// recorded ticks have been applied; position 0 is the pre-tick start state.
// Backward moves re-simulate from the start state, which stays cheap because
// the pipeline is deterministic and pure compute.
type Cursor struct {
	replay   *Replay
	provider *cards.Provider
	start    *Snapshot
	state    *GameState
	position int
}

// Cursor opens a cursor positioned at the start of the match.
func (r *Replay) Cursor(provider *cards.Provider) (*Cursor, error) {
	s, err := r.startState(provider)
	if err != nil {
		return nil, err
	}
	return &Cursor{
		replay:   r,
		provider: provider,
		start:    Capture(s),
		state:    s,
	}, nil
}

// State returns the state at the current position. Callers must treat it as
// read-only; mutating it desynchronizes the cursor from the recording.
func (c *Cursor) State() *GameState {
	return c.state
}

// Position returns how many recorded ticks have been applied.
func (c *Cursor) Position() int {
	return c.position
}

// AtEnd reports whether every recorded tick has been applied.
func (c *Cursor) AtEnd() bool {
	return c.position >= len(c.replay.Ticks)
}

// Next applies the next recorded tick.
func (c *Cursor) Next() error {
	if c.AtEnd() {
		return fmt.Errorf("replay cursor: already at end (position %d)", c.position)
	}
	if err := c.replay.applyRecord(c.state, c.replay.Ticks[c.position]); err != nil {
		return err
	}
	c.position++
	return nil
}

// Previous steps back one recorded tick.
func (c *Cursor) Previous() error {
	if c.position == 0 {
		return fmt.Errorf("replay cursor: already at start")
	}
	return c.SeekTo(c.position - 1)
}

// SeekTo positions the cursor so that exactly position ticks are applied.
// Seeking backward restarts from the start-state snapshot.
func (c *Cursor) SeekTo(position int) error {
	if position < 0 || position > len(c.replay.Ticks) {
		return fmt.Errorf("replay cursor: position %d out of range [0, %d]", position, len(c.replay.Ticks))
	}
	if position < c.position {
		c.state = RestoreSnapshot(c.start, c.provider)
		c.position = 0
	}
	for c.position < position {
		if err := c.Next(); err != nil {
			return err
		}
	}
	return nil
}

// Reset returns the cursor to the start of the match.
func (c *Cursor) Reset() {
	c.state = RestoreSnapshot(c.start, c.provider)
	c.position = 0
}
