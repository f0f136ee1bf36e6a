package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsang27/crust-sim/internal/arena"
	"github.com/jtsang27/crust-sim/internal/game/entity"
	"github.com/jtsang27/crust-sim/internal/game/geom"
)

// scriptedMatch drives a fixed action script against a fresh seeded state
// and returns the per-tick checksums.
func scriptedMatch(seed uint64, ticks int) []string {
	s := NewGameState(seed)
	if err := s.SetDeck(entity.Player1, testDeck()); err != nil {
		panic(err)
	}
	if err := s.SetDeck(entity.Player2, testDeck()); err != nil {
		panic(err)
	}

	checksums := make([]string, 0, ticks)
	for i := 0; i < ticks; i++ {
		var actions []Action
		switch i {
		case 30:
			actions = append(actions, PlayCardFromHand{PlayerID: entity.Player1, HandIndex: 0, Level: 11, Position: geom.NewVec2(10, 5)})
		case 45:
			actions = append(actions, PlayCardFromHand{PlayerID: entity.Player2, HandIndex: 1, Level: 11, Position: geom.NewVec2(22, 13)})
		case 200:
			actions = append(actions, PlayCardFromHand{PlayerID: entity.Player1, HandIndex: 3, Level: 11, Position: geom.NewVec2(8, 12)})
		}
		Step(s, actions)
		checksums = append(checksums, Capture(s).Checksum())
	}
	return checksums
}

func TestSameSeedSameScriptSameTrajectory(t *testing.T) {
	first := scriptedMatch(42, 400)
	second := scriptedMatch(42, 400)

	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, first[i], second[i], "trajectories diverged at tick %d", i)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	first := scriptedMatch(42, 120)
	second := scriptedMatch(43, 120)

	// Different seeds shuffle the decks differently, so the scripted hand
	// deploys place different cards.
	assert.NotEqual(t, first[len(first)-1], second[len(second)-1])
}

func TestTickAndClockAdvance(t *testing.T) {
	s := NewGameState(1)

	stepN(s, 90)

	assert.Equal(t, uint64(90), s.Tick)
	assert.InDelta(t, 1.5, s.MatchTime, 1e-9)
}

func TestElixirRegenRate(t *testing.T) {
	s := NewGameState(1)

	ps, err := s.Player(entity.Player1)
	require.NoError(t, err)
	ps.Elixir.Amount = 2.0

	stepN(s, 60)

	// One second of regen at 1.0 elixir per second.
	assert.InDelta(t, 3.0, ps.Elixir.Amount, 0.02)
}

func TestElixirCapsAtMax(t *testing.T) {
	s := NewGameState(1)

	stepN(s, 600) // ten seconds from the starting 5

	for _, ps := range s.Players {
		assert.Equal(t, ps.Elixir.Max, ps.Elixir.Amount)
	}
}

func TestProjectileLaunchedThisTickAlreadyMoves(t *testing.T) {
	// The projectile phase runs after combat, so a projectile launched this
	// tick has left the attacker's position by the time the tick ends.
	s := newBareState(1)

	archer := addTroop(s, entity.Player1, geom.NewVec2(10, 9), 1000, rangedStats(100, 5, 0))
	addTroop(s, entity.Player2, geom.NewVec2(14, 9), 10000, entity.TroopData{
		Range: 1.2, AttackInterval: 1.2, Targets: entity.TargetBoth,
	})

	Step(s, nil)

	var proj *entity.Entity
	for _, e := range s.Entities.All() {
		if e.Kind == entity.KindProjectile {
			proj = e
		}
	}
	require.NotNil(t, proj)
	assert.NotEqual(t, s.Entities.Get(archer).Position, proj.Position)
}

func TestMatchEndsWhenKingFalls(t *testing.T) {
	s := NewGameState(1)

	ps, err := s.Player(entity.Player2)
	require.NoError(t, err)
	kingID := ps.Towers[arena.SlotKing]
	s.Entities.Get(kingID).TakeDamage(1e9)
	Step(s, nil)

	assert.True(t, s.Defeated(entity.Player2))
	assert.True(t, s.MatchOver())
	winner, decided := s.Winner()
	assert.True(t, decided)
	assert.Equal(t, entity.Player1, winner)
}

func TestTimeLimitDecidesByTowerHealth(t *testing.T) {
	s := NewGameState(1)
	s.MaxMatchTime = 1.0

	ps, err := s.Player(entity.Player2)
	require.NoError(t, err)
	princess := ps.Towers[arena.SlotLeftPrincess]
	s.Entities.Get(princess).TakeDamage(500)

	stepN(s, 61)

	require.True(t, s.MatchOver())
	winner, decided := s.Winner()
	assert.True(t, decided)
	assert.Equal(t, entity.Player1, winner)
}

func TestTimeLimitDrawWhenHealthEqual(t *testing.T) {
	s := NewGameState(1)
	s.MaxMatchTime = 1.0

	stepN(s, 61)

	require.True(t, s.MatchOver())
	_, decided := s.Winner()
	assert.False(t, decided)
}
