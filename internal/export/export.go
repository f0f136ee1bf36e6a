// Package export projects a game state into the flat, player-perspective
// view consumed by reinforcement-learning drivers and the bridge server.
// The projection is read-only and always taken from one player's seat:
// that player's entities are "ally", the opponent's are "enemy".
package export

import (
	"github.com/jtsang27/crust-sim/internal/arena"
	"github.com/jtsang27/crust-sim/internal/game"
	"github.com/jtsang27/crust-sim/internal/game/entity"
)

// TowerView is one structure as seen from the viewer's seat. Destroyed
// towers are still reported, at their placement position with zero health,
// so consumers always see three towers per side in a stable order.
type TowerView struct {
	Owner  string  `json:"owner"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	HPFrac float64 `json:"hp_frac"`
}

// UnitView is one live troop with its committed velocity.
type UnitView struct {
	Owner string  `json:"owner"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
}

// LegalMasks describes the viewer's currently legal actions: which deck
// cards may be played and which arena tiles accept a deployment.
type LegalMasks struct {
	Cards []bool `json:"cards"`      // indexed by deck position, length 8
	Tiles []bool `json:"tiles_flat"` // row-major Width*Height placement mask
}

// PlayerView is the full per-tick observation for one player.
type PlayerView struct {
	TMs      uint64  `json:"t_ms"`
	Elixir   float64 `json:"ally_elixir"`
	TimeLeft float64 `json:"time_left"`
	Overtime bool    `json:"overtime"`

	AllyTowers  []TowerView `json:"ally_towers"`
	EnemyTowers []TowerView `json:"enemy_towers"`
	AllyUnits   []UnitView  `json:"ally_units"`
	EnemyUnits  []UnitView  `json:"enemy_units"`

	Legal LegalMasks `json:"legal"`

	Win  bool `json:"win"`
	Lose bool `json:"lose"`

	// Cumulative structure damage since match start, from the viewer's
	// perspective. Drivers derive per-step rewards by differencing.
	EnemyTowerHPDrop float64 `json:"enemy_tower_hp_drop"`
	AllyTowerHPDrop  float64 `json:"ally_tower_hp_drop"`
}

const (
	ownerAlly  = "ALLY"
	ownerEnemy = "ENEMY"
)

// slotOrder fixes the tower reporting order for both sides.
var slotOrder = []arena.TowerSlot{arena.SlotKing, arena.SlotLeftPrincess, arena.SlotRightPrincess}

// BuildPlayerView projects the state from the given player's seat.
func BuildPlayerView(s *game.GameState, viewer entity.PlayerID) (*PlayerView, error) {
	ps, err := s.Player(viewer)
	if err != nil {
		return nil, err
	}
	enemy := viewer.Opponent()
	es, err := s.Player(enemy)
	if err != nil {
		return nil, err
	}

	timeLeft := s.MaxMatchTime - s.MatchTime
	if timeLeft < 0 {
		timeLeft = 0
	}

	view := &PlayerView{
		TMs:      uint64(s.MatchTime * 1000),
		Elixir:   ps.Elixir.Amount,
		TimeLeft: timeLeft,
		Overtime: s.MatchTime >= s.MaxMatchTime,

		AllyTowers:  towerViews(s, viewer, ownerAlly),
		EnemyTowers: towerViews(s, enemy, ownerEnemy),

		Legal: LegalMasks{
			Cards: cardMask(s, ps),
			Tiles: s.Arena.PlacementMask(int(viewer)),
		},

		AllyTowerHPDrop:  ps.InitialTowerHP - s.RemainingTowerHP(viewer),
		EnemyTowerHPDrop: es.InitialTowerHP - s.RemainingTowerHP(enemy),
	}

	for _, id := range s.Entities.SortedIDs() {
		e := s.Entities.Get(id)
		if e.Kind != entity.KindTroop {
			continue
		}
		uv := UnitView{
			X:  e.Position.X,
			Y:  e.Position.Y,
			VX: e.Velocity.X,
			VY: e.Velocity.Y,
		}
		if e.Owner == viewer {
			uv.Owner = ownerAlly
			view.AllyUnits = append(view.AllyUnits, uv)
		} else {
			uv.Owner = ownerEnemy
			view.EnemyUnits = append(view.EnemyUnits, uv)
		}
	}

	if winner, decided := s.Winner(); decided {
		view.Win = winner == viewer
		view.Lose = winner == enemy
	}
	return view, nil
}

// towerViews reports all three structure slots for a side. A destroyed
// tower keeps its placement position and reads zero health.
func towerViews(s *game.GameState, owner entity.PlayerID, label string) []TowerView {
	ps, err := s.Player(owner)
	if err != nil {
		return nil
	}

	placements := make(map[arena.TowerSlot]arena.Placement, 3)
	for _, p := range arena.TowerPlacements(int(owner)) {
		placements[p.Slot] = p
	}

	views := make([]TowerView, 0, len(slotOrder))
	for _, slot := range slotOrder {
		tv := TowerView{
			Owner: label,
			X:     placements[slot].Position.X,
			Y:     placements[slot].Position.Y,
		}
		if id, ok := ps.Towers[slot]; ok {
			if e := s.Entities.Get(id); e != nil && e.Alive() {
				tv.X = e.Position.X
				tv.Y = e.Position.Y
				tv.HPFrac = e.HP / e.MaxHP
			}
		}
		views = append(views, tv)
	}
	return views
}

// cardMask reports, per deck index, whether that card is in the hand and
// affordable right now. With no deck installed every slot is false.
func cardMask(s *game.GameState, ps *game.PlayerState) []bool {
	mask := make([]bool, game.DeckSize)
	if len(ps.Deck) != game.DeckSize {
		return mask
	}
	for _, deckIndex := range ps.Hand {
		if deckIndex < 0 || deckIndex >= game.DeckSize {
			continue
		}
		card, err := s.Provider().Card(ps.Deck[deckIndex])
		if err != nil {
			continue
		}
		mask[deckIndex] = card.Cost <= ps.Elixir.Amount
	}
	return mask
}
