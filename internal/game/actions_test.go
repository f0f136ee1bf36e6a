package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsang27/crust-sim/internal/game/entity"
	"github.com/jtsang27/crust-sim/internal/game/geom"
)

func TestPlayCardSpawnsTroopAndSpendsElixir(t *testing.T) {
	s := NewGameState(1)

	results := Step(s, []Action{
		PlayCard{PlayerID: entity.Player1, CardName: "Knight", Level: 11, Position: geom.NewVec2(5, 9)},
	})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	assert.Equal(t, 1, countKind(s, entity.KindTroop))
	ps, err := s.Player(entity.Player1)
	require.NoError(t, err)
	// Knight costs 3 from the starting 5, plus one tick of regen.
	assert.InDelta(t, 2.0+Dt, ps.Elixir.Amount, 1e-9)
}

func TestPlayCardMultiUnitSpawnsSpacedUnits(t *testing.T) {
	s := NewGameState(1)

	results := Step(s, []Action{
		PlayCard{PlayerID: entity.Player1, CardName: "Minions", Level: 11, Position: geom.NewVec2(5, 9)},
	})
	require.NoError(t, results[0].Err)

	troops := make([]*entity.Entity, 0, 3)
	for _, e := range s.Entities.All() {
		if e.Kind == entity.KindTroop {
			troops = append(troops, e)
		}
	}
	require.Len(t, troops, 3)
	for i, a := range troops {
		for _, b := range troops[i+1:] {
			assert.Greater(t, a.Position.DistanceTo(b.Position), 0.8, "multi-unit spawns must not overlap")
		}
	}
}

func TestDeployPlacementIsAdvisory(t *testing.T) {
	s := NewGameState(1)

	// The enemy half is illegal per the placement mask, but action
	// application does not enforce placement. Mask-respecting drivers are
	// the enforcement point.
	pos := geom.NewVec2(25, 9)
	assert.False(t, s.Arena.CanDeploy(int(entity.Player1), pos))

	results := Step(s, []Action{
		PlayCard{PlayerID: entity.Player1, CardName: "Knight", Level: 11, Position: pos},
	})
	require.NoError(t, results[0].Err)
	assert.Equal(t, 1, countKind(s, entity.KindTroop))
}

func TestPlayCardUnknownName(t *testing.T) {
	s := NewGameState(1)

	results := Step(s, []Action{
		PlayCard{PlayerID: entity.Player1, CardName: "Goblin Barrel", Level: 11, Position: geom.NewVec2(5, 9)},
	})
	assert.ErrorIs(t, results[0].Err, ErrUnknownCard)
	assert.Equal(t, 0, countKind(s, entity.KindTroop))
}

func TestPlayCardUnknownLevel(t *testing.T) {
	s := NewGameState(1)

	results := Step(s, []Action{
		PlayCard{PlayerID: entity.Player1, CardName: "Knight", Level: 14, Position: geom.NewVec2(5, 9)},
	})
	assert.ErrorIs(t, results[0].Err, ErrUnknownLevel)

	// A failed deploy must not touch the elixir pool.
	ps, err := s.Player(entity.Player1)
	require.NoError(t, err)
	assert.InDelta(t, 5.0+Dt, ps.Elixir.Amount, 1e-9)
}

func TestPlayCardUnknownPlayer(t *testing.T) {
	s := NewGameState(1)

	results := Step(s, []Action{
		PlayCard{PlayerID: entity.PlayerID(7), CardName: "Knight", Level: 11, Position: geom.NewVec2(5, 9)},
	})
	assert.ErrorIs(t, results[0].Err, ErrUnknownPlayer)
}

func TestPlayCardInsufficientElixir(t *testing.T) {
	s := NewGameState(1)

	ps, err := s.Player(entity.Player1)
	require.NoError(t, err)
	ps.Elixir.Amount = 2.0

	results := Step(s, []Action{
		PlayCard{PlayerID: entity.Player1, CardName: "Giant", Level: 11, Position: geom.NewVec2(5, 9)},
	})
	assert.ErrorIs(t, results[0].Err, ErrInsufficientElixir)
	assert.Equal(t, 0, countKind(s, entity.KindTroop))
	assert.InDelta(t, 2.0+Dt, ps.Elixir.Amount, 1e-9, "rejected deploy must not spend")
}

func TestPlaySpellSpendsWithoutSpawning(t *testing.T) {
	s := NewGameState(1)

	results := Step(s, []Action{
		PlayCard{PlayerID: entity.Player1, CardName: "Fireball", Level: 11, Position: geom.NewVec2(20, 9)},
	})
	require.NoError(t, results[0].Err)

	assert.Equal(t, 0, countKind(s, entity.KindTroop))
	ps, _ := s.Player(entity.Player1)
	assert.InDelta(t, 1.0+Dt, ps.Elixir.Amount, 1e-9)
}

func TestPlayCardFromHandCyclesTheSlot(t *testing.T) {
	s := NewGameState(1)
	mustDeck(t, s, entity.Player1, testDeck())

	ps, _ := s.Player(entity.Player1)

	// Every default card costs at most the starting 5 elixir, so any slot
	// is playable.
	const slot = 2
	results := Step(s, []Action{
		PlayCardFromHand{PlayerID: entity.Player1, HandIndex: slot, Level: 11, Position: geom.NewVec2(5, 9)},
	})
	require.NoError(t, results[0].Err)

	assert.Equal(t, 4, ps.Hand[slot], "played slot holds the next deck index")
	assert.Equal(t, 5, ps.NextDraw)

	next, err := ps.HandCard(slot)
	require.NoError(t, err)
	assert.Equal(t, ps.Deck[4], next)
}

func TestPlayCardFromHandInvalidSlot(t *testing.T) {
	s := NewGameState(1)
	mustDeck(t, s, entity.Player1, testDeck())

	for _, slot := range []int{-1, 4, 99} {
		results := Step(s, []Action{
			PlayCardFromHand{PlayerID: entity.Player1, HandIndex: slot, Level: 11, Position: geom.NewVec2(5, 9)},
		})
		assert.ErrorIs(t, results[0].Err, ErrInvalidHandIndex, "slot %d", slot)
	}
}

func TestPlayCardFromHandWithoutDeck(t *testing.T) {
	s := NewGameState(1)

	results := Step(s, []Action{
		PlayCardFromHand{PlayerID: entity.Player1, HandIndex: 0, Level: 11, Position: geom.NewVec2(5, 9)},
	})
	assert.ErrorIs(t, results[0].Err, ErrInvalidHandIndex)
}

func TestRejectedHandDeployLeavesCycleUntouched(t *testing.T) {
	s := NewGameState(1)
	mustDeck(t, s, entity.Player1, testDeck())

	ps, _ := s.Player(entity.Player1)
	ps.Elixir.Amount = 0.5

	handBefore := append([]int(nil), ps.Hand...)
	drawBefore := ps.NextDraw

	results := Step(s, []Action{
		PlayCardFromHand{PlayerID: entity.Player1, HandIndex: 1, Level: 11, Position: geom.NewVec2(5, 9)},
	})
	require.ErrorIs(t, results[0].Err, ErrInsufficientElixir)

	assert.Equal(t, handBefore, ps.Hand, "failed deploy must not cycle the hand")
	assert.Equal(t, drawBefore, ps.NextDraw)
	assert.Equal(t, 0, countKind(s, entity.KindTroop))
}

func TestEmoteIsANoOp(t *testing.T) {
	s := NewGameState(1)

	before := Capture(s)
	results := Step(s, []Action{Emote{PlayerID: entity.Player1, EmoteID: 3}})
	require.NoError(t, results[0].Err)

	// Only the clock and elixir may differ from an empty tick.
	sEmpty := NewGameState(1)
	Step(sEmpty, nil)
	assert.Equal(t, Capture(sEmpty).Checksum(), Capture(s).Checksum())
	assert.NotEqual(t, before.Checksum(), Capture(s).Checksum(), "the tick itself still advances")
}

func TestActionsApplyInSubmissionOrder(t *testing.T) {
	s := NewGameState(1)

	ps, _ := s.Player(entity.Player1)
	ps.Elixir.Amount = 5.0

	// Knight (3) then Musketeer (4): only the first fits the pool. The
	// reversed order funds the Musketeer instead, so ordering is visible.
	results := Step(s, []Action{
		PlayCard{PlayerID: entity.Player1, CardName: "Knight", Level: 11, Position: geom.NewVec2(5, 8)},
		PlayCard{PlayerID: entity.Player1, CardName: "Musketeer", Level: 11, Position: geom.NewVec2(5, 10)},
	})
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, ErrInsufficientElixir)
	assert.Equal(t, 1, countKind(s, entity.KindTroop))
}
