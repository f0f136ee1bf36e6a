package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/jtsang27/crust-sim/internal/arena"
	"github.com/jtsang27/crust-sim/internal/game/cards"
	"github.com/jtsang27/crust-sim/internal/game/entity"
	"github.com/jtsang27/crust-sim/internal/game/rng"
)

// Snapshot is a complete, self-contained copy of a game state, including
// the full RNG internals and the entity id counter. Restoring a snapshot
// and stepping it produces the same trajectory as stepping the original.
type Snapshot struct {
	Tick         uint64
	MatchTime    float64
	MaxMatchTime float64
	Entities     []*entity.Entity
	NextEntityID entity.ID
	Players      map[entity.PlayerID]*PlayerState
	RNG          rng.State
}

// Capture deep-copies the state into a snapshot.
func Capture(s *GameState) *Snapshot {
	entities := make([]*entity.Entity, 0, s.Entities.Len())
	for _, e := range s.Entities.All() {
		entities = append(entities, e.Clone())
	}

	players := make(map[entity.PlayerID]*PlayerState, len(s.Players))
	for id, ps := range s.Players {
		players[id] = ps.clone()
	}

	return &Snapshot{
		Tick:         s.Tick,
		MatchTime:    s.MatchTime,
		MaxMatchTime: s.MaxMatchTime,
		Entities:     entities,
		NextEntityID: s.Entities.NextID(),
		Players:      players,
		RNG:          s.RNG.Save(),
	}
}

// RestoreSnapshot rebuilds a live game state from a snapshot. The
// definition provider is not part of the snapshot and must be supplied
// again; it is read-only and carries no match state.
func RestoreSnapshot(snap *Snapshot, provider *cards.Provider) *GameState {
	entities := make([]*entity.Entity, 0, len(snap.Entities))
	for _, e := range snap.Entities {
		entities = append(entities, e.Clone())
	}

	players := make(map[entity.PlayerID]*PlayerState, len(snap.Players))
	for id, ps := range snap.Players {
		players[id] = ps.clone()
	}

	return &GameState{
		Tick:         snap.Tick,
		MatchTime:    snap.MatchTime,
		MaxMatchTime: snap.MaxMatchTime,
		Entities:     entity.Restore(entities, snap.NextEntityID),
		Players:      players,
		RNG:          rng.Restore(snap.RNG),
		Arena:        arena.New(),
		provider:     provider,
	}
}

// Encode serializes the snapshot with gob.
func (snap *Snapshot) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot deserializes a gob-encoded snapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Checksum returns a SHA-256 hash over a canonical text rendering of the
// snapshot. Two snapshots of bit-identical states hash identically
// regardless of map iteration order, which makes the checksum usable for
// divergence detection between replayed and original trajectories.
func (snap *Snapshot) Checksum() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "MATCH:%d|%g|%g|%d\n", snap.Tick, snap.MatchTime, snap.MaxMatchTime, snap.NextEntityID)
	fmt.Fprintf(&buf, "RNG:%d|%d|%d\n", snap.RNG.Seed, snap.RNG.State, snap.RNG.Inc)

	entities := make([]*entity.Entity, len(snap.Entities))
	copy(entities, snap.Entities)
	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	for _, e := range entities {
		fmt.Fprintf(&buf, "ENTITY:%d|%d|%s|%g|%g|%g|%g|%g|%g|%g|%d\n",
			e.ID, e.Owner, e.Kind,
			e.Position.X, e.Position.Y, e.Velocity.X, e.Velocity.Y,
			e.HP, e.MaxHP, e.AttackCooldown, e.Target)
		switch e.Kind {
		case entity.KindTower:
			fmt.Fprintf(&buf, "  TOWER:%g|%g|%g|%g\n", e.Tower.Damage, e.Tower.Range, e.Tower.AttackInterval, e.Tower.ProjectileSpeed)
		case entity.KindTroop:
			fmt.Fprintf(&buf, "  TROOP:%g|%g|%g|%g|%s|%t|%t|%g\n",
				e.Troop.Damage, e.Troop.Range, e.Troop.AttackInterval, e.Troop.MovementSpeed,
				e.Troop.Targets, e.Troop.Ranged, e.Troop.Air, e.Troop.ProjectileSpeed)
		case entity.KindProjectile:
			fmt.Fprintf(&buf, "  PROJECTILE:%g|%g|%d\n", e.Projectile.Damage, e.Projectile.Speed, e.Projectile.Target)
		case entity.KindSpell:
			fmt.Fprintf(&buf, "  SPELL:%g|%g\n", e.Spell.Damage, e.Spell.Radius)
		}
	}

	playerIDs := make([]entity.PlayerID, 0, len(snap.Players))
	for id := range snap.Players {
		playerIDs = append(playerIDs, id)
	}
	sort.Slice(playerIDs, func(i, j int) bool { return playerIDs[i] < playerIDs[j] })
	for _, id := range playerIDs {
		ps := snap.Players[id]
		fmt.Fprintf(&buf, "PLAYER:%d|%g|%g|%g|%d\n", ps.ID, ps.Elixir.Amount, ps.Elixir.Max, ps.Elixir.RegenRate, ps.NextDraw)

		slots := make([]arena.TowerSlot, 0, len(ps.Towers))
		for slot := range ps.Towers {
			slots = append(slots, slot)
		}
		sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
		for _, slot := range slots {
			fmt.Fprintf(&buf, "  TOWER_SLOT:%s=%d\n", slot, ps.Towers[slot])
		}

		// Deck order and hand slots are positional; no sorting here.
		for i, name := range ps.Deck {
			fmt.Fprintf(&buf, "  DECK:%d=%s\n", i, name)
		}
		for i, idx := range ps.Hand {
			fmt.Fprintf(&buf, "  HAND:%d=%d\n", i, idx)
		}
	}

	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}
