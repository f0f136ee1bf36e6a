package game

import (
	"testing"

	"github.com/jtsang27/crust-sim/internal/arena"
	"github.com/jtsang27/crust-sim/internal/game/entity"
	"github.com/jtsang27/crust-sim/internal/game/geom"
)

// newBareState builds a match state with all six towers removed so
// scenarios can isolate troop behavior in an empty arena.
func newBareState(seed uint64) *GameState {
	s := NewGameState(seed)
	for _, ps := range s.Players {
		for _, id := range ps.Towers {
			s.Entities.Remove(id)
		}
		ps.Towers = make(map[arena.TowerSlot]entity.ID)
	}
	return s
}

// meleeStats is a standard melee troop stat block.
func meleeStats(damage float64) entity.TroopData {
	return entity.TroopData{
		Damage:         damage,
		Range:          1.2,
		AttackInterval: 1.2,
		MovementSpeed:  1.0,
		Targets:        entity.TargetGround,
	}
}

// rangedStats is a standard ranged troop stat block. Movement speed zero
// makes the troop stationary.
func rangedStats(damage, rng, speed float64) entity.TroopData {
	return entity.TroopData{
		Damage:          damage,
		Range:           rng,
		AttackInterval:  1.2,
		MovementSpeed:   speed,
		Targets:         entity.TargetBoth,
		Ranged:          true,
		ProjectileSpeed: 8.0,
	}
}

// addTroop spawns a troop directly into the store.
func addTroop(s *GameState, owner entity.PlayerID, pos geom.Vec2, hp float64, data entity.TroopData) entity.ID {
	return s.Entities.Add(entity.NewTroop(owner, pos, hp, data))
}

// stepN advances the state n ticks with no actions.
func stepN(s *GameState, n int) {
	for i := 0; i < n; i++ {
		Step(s, nil)
	}
}

// countKind tallies live entities of a kind.
func countKind(s *GameState, kind entity.Kind) int {
	n := 0
	for _, e := range s.Entities.All() {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// mustDeck installs a deck or fails the test.
func mustDeck(t *testing.T, s *GameState, player entity.PlayerID, names []string) {
	t.Helper()
	if err := s.SetDeck(player, names); err != nil {
		t.Fatalf("set deck for %s: %v", player, err)
	}
}

// testDeck is an 8-card deck built from the default card set.
func testDeck() []string {
	return []string{"Knight", "Archers", "Giant", "Musketeer", "Fireball", "Arrows", "Cannon", "Minions"}
}
