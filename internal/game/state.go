// Package game implements the deterministic fixed-timestep combat
// simulation: the entity-owning game state, action application, the
// per-tick system pipeline, snapshots, and replays.
//
// Determinism contract: a fresh state built from the same seed, fed the
// same ordered action stream, produces a bit-identical state trajectory.
// Every order-sensitive pass walks entities in ascending id order and all
// randomness flows through the single seeded stream owned by the state.
package game

import (
	"fmt"

	"github.com/jtsang27/crust-sim/internal/arena"
	"github.com/jtsang27/crust-sim/internal/game/cards"
	"github.com/jtsang27/crust-sim/internal/game/entity"
	"github.com/jtsang27/crust-sim/internal/game/rng"
)

// Dt is the fixed simulation timestep (60 ticks per second).
const Dt = 1.0 / 60.0

// DefaultMaxMatchTime is the regulation match length in seconds.
const DefaultMaxMatchTime = 180.0

// towerLevel selects the stat rows used for match-start structures.
const towerLevel = 11

// GameState is the complete simulation state and the single unit of shared
// mutable data. The entity store is the sole owner of entity lifetimes; all
// cross-references are plain ids resolved by lookup each tick. Nothing here
// is safe for concurrent mutation; the Engine serializes access per match.
type GameState struct {
	Tick         uint64
	MatchTime    float64
	MaxMatchTime float64

	Entities *entity.Store
	Players  map[entity.PlayerID]*PlayerState
	RNG      *rng.Stream
	Arena    *arena.Arena

	provider *cards.Provider
}

// NewGameState creates a match seeded with the given value, using the
// built-in card set. Both players start with full tower lines.
func NewGameState(seed uint64) *GameState {
	return NewGameStateWithProvider(seed, cards.Default())
}

// NewGameStateWithProvider creates a match with an explicit definition
// provider.
func NewGameStateWithProvider(seed uint64, provider *cards.Provider) *GameState {
	s := &GameState{
		MaxMatchTime: DefaultMaxMatchTime,
		Entities:     entity.NewStore(),
		Players: map[entity.PlayerID]*PlayerState{
			entity.Player1: NewPlayerState(entity.Player1),
			entity.Player2: NewPlayerState(entity.Player2),
		},
		RNG:      rng.New(seed),
		Arena:    arena.New(),
		provider: provider,
	}
	s.spawnTowers(entity.Player1)
	s.spawnTowers(entity.Player2)
	return s
}

// spawnTowers places the king and both princess towers for a player and
// records their entity ids in the player state.
func (s *GameState) spawnTowers(player entity.PlayerID) {
	ps := s.Players[player]

	for _, placement := range arena.TowerPlacements(int(player)) {
		name := cards.PrincessTowerName
		if placement.Slot == arena.SlotKing {
			name = cards.KingTowerName
		}

		def, err := s.provider.Tower(name)
		if err != nil {
			panic(fmt.Sprintf("missing builtin tower definition %q: %v", name, err))
		}
		stats, err := def.StatsForLevel(towerLevel)
		if err != nil {
			panic(fmt.Sprintf("missing level %d for tower %q: %v", towerLevel, name, err))
		}

		tower := entity.NewTower(player, placement.Position, stats.HP, entity.TowerData{
			Damage:          stats.Damage,
			Range:           def.Range,
			AttackInterval:  def.AttackInterval,
			ProjectileSpeed: def.ProjectileSpeed,
		})
		ps.Towers[placement.Slot] = s.Entities.Add(tower)
		ps.InitialTowerHP += stats.HP
	}
}

// Provider exposes the read-only definition registry.
func (s *GameState) Provider() *cards.Provider {
	return s.provider
}

// Player returns the state for a player id.
func (s *GameState) Player(id entity.PlayerID) (*PlayerState, error) {
	ps, ok := s.Players[id]
	if !ok {
		return nil, fmt.Errorf("player %d: %w", id, ErrUnknownPlayer)
	}
	return ps, nil
}

// SetDeck validates every card name against the provider, then shuffles and
// deals the deck for the player.
func (s *GameState) SetDeck(player entity.PlayerID, names []string) error {
	ps, err := s.Player(player)
	if err != nil {
		return err
	}
	for _, name := range names {
		if !s.provider.Has(name) {
			return fmt.Errorf("deck card %q: %w", name, ErrUnknownCard)
		}
	}
	return ps.SetDeck(names, s.RNG)
}

// StructureHealth returns the remaining health of a player's structure, or
// zero once the tower entity has been removed.
func (s *GameState) StructureHealth(player entity.PlayerID, slot arena.TowerSlot) float64 {
	ps, ok := s.Players[player]
	if !ok {
		return 0
	}
	id, ok := ps.Towers[slot]
	if !ok {
		return 0
	}
	e := s.Entities.Get(id)
	if e == nil {
		return 0
	}
	return e.HP
}

// RemainingTowerHP sums a player's surviving structure health.
func (s *GameState) RemainingTowerHP(player entity.PlayerID) float64 {
	total := 0.0
	for _, slot := range []arena.TowerSlot{arena.SlotKing, arena.SlotLeftPrincess, arena.SlotRightPrincess} {
		total += s.StructureHealth(player, slot)
	}
	return total
}

// Defeated reports whether a player's king tower has been destroyed.
func (s *GameState) Defeated(player entity.PlayerID) bool {
	return s.StructureHealth(player, arena.SlotKing) <= 0
}

// MatchOver reports whether the time limit has elapsed or a king tower is
// down. The driver checks this once per tick; the core itself never stops.
func (s *GameState) MatchOver() bool {
	if s.MatchTime >= s.MaxMatchTime {
		return true
	}
	return s.Defeated(entity.Player1) || s.Defeated(entity.Player2)
}

// Winner returns the winning player once the match is decided. A destroyed
// king settles it immediately; at the time limit the higher surviving tower
// health wins. The second return is false while undecided or drawn.
func (s *GameState) Winner() (entity.PlayerID, bool) {
	p1Dead := s.Defeated(entity.Player1)
	p2Dead := s.Defeated(entity.Player2)
	switch {
	case p1Dead && !p2Dead:
		return entity.Player2, true
	case p2Dead && !p1Dead:
		return entity.Player1, true
	case p1Dead && p2Dead:
		return 0, false
	}

	if s.MatchTime >= s.MaxMatchTime {
		hp1 := s.RemainingTowerHP(entity.Player1)
		hp2 := s.RemainingTowerHP(entity.Player2)
		if hp1 > hp2 {
			return entity.Player1, true
		}
		if hp2 > hp1 {
			return entity.Player2, true
		}
	}
	return 0, false
}
