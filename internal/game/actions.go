package game

import (
	"fmt"

	"github.com/jtsang27/crust-sim/internal/game/cards"
	"github.com/jtsang27/crust-sim/internal/game/entity"
	"github.com/jtsang27/crust-sim/internal/game/geom"
)

// Action is a player intent submitted to Step. The set is closed: PlayCard,
// PlayCardFromHand, and Emote.
type Action interface {
	// Player returns the acting player.
	Player() entity.PlayerID

	// apply validates the intent and, only on full success, commits all of
	// its mutations. A returned error guarantees no state change.
	apply(s *GameState) error
}

// PlayCard deploys a card looked up by name at an explicit level. Used by
// scripted drivers and tests; it does not touch the hand cycle.
type PlayCard struct {
	PlayerID entity.PlayerID
	CardName string
	Level    int
	Position geom.Vec2
}

// Player implements Action.
func (a PlayCard) Player() entity.PlayerID { return a.PlayerID }

func (a PlayCard) apply(s *GameState) error {
	ps, err := s.Player(a.PlayerID)
	if err != nil {
		return err
	}
	deploy, err := s.validateDeploy(a.CardName, a.Level)
	if err != nil {
		return err
	}
	if !ps.Elixir.Spend(deploy.card.Cost) {
		return fmt.Errorf("card %q costs %.0f, have %.2f: %w",
			a.CardName, deploy.card.Cost, ps.Elixir.Amount, ErrInsufficientElixir)
	}
	s.spawnDeploy(a.PlayerID, a.Position, deploy)
	return nil
}

// PlayCardFromHand deploys the card currently held in a hand slot. On
// success the slot cycles to the next card in the deck; on any failure the
// hand and draw-cycle pointer are left untouched.
type PlayCardFromHand struct {
	PlayerID  entity.PlayerID
	HandIndex int
	Level     int
	Position  geom.Vec2
}

// Player implements Action.
func (a PlayCardFromHand) Player() entity.PlayerID { return a.PlayerID }

func (a PlayCardFromHand) apply(s *GameState) error {
	ps, err := s.Player(a.PlayerID)
	if err != nil {
		return err
	}

	name, err := ps.HandCard(a.HandIndex)
	if err != nil {
		return err
	}

	// Validate everything before committing: card, level, then the elixir
	// spend. The hand cycles only after all checks pass, so a rejected
	// deploy never corrupts the draw cycle.
	deploy, err := s.validateDeploy(name, a.Level)
	if err != nil {
		return err
	}
	if !ps.Elixir.Spend(deploy.card.Cost) {
		return fmt.Errorf("card %q costs %.0f, have %.2f: %w",
			name, deploy.card.Cost, ps.Elixir.Amount, ErrInsufficientElixir)
	}

	ps.cycleHand(a.HandIndex)
	s.spawnDeploy(a.PlayerID, a.Position, deploy)
	return nil
}

// Emote is a no-op intent recorded for replays only.
type Emote struct {
	PlayerID entity.PlayerID
	EmoteID  uint32
}

// Player implements Action.
func (a Emote) Player() entity.PlayerID { return a.PlayerID }

func (a Emote) apply(*GameState) error { return nil }

// validatedDeploy carries a fully resolved deploy so no lookup can fail
// after mutations begin.
type validatedDeploy struct {
	card  *cards.Card
	stats *cards.LevelStats
}

// validateDeploy resolves a card and its level row without mutating
// anything. Spell and building cards validate with no stat row; deploying
// them spends elixir but spawns nothing. The position is not checked
// against the arena; placement legality is advisory, exposed to drivers
// through the placement mask.
func (s *GameState) validateDeploy(name string, level int) (validatedDeploy, error) {
	card, err := s.provider.Card(name)
	if err != nil {
		return validatedDeploy{}, err
	}
	if card.Type != cards.TypeTroop {
		return validatedDeploy{card: card}, nil
	}
	stats, err := card.StatsForLevel(level)
	if err != nil {
		return validatedDeploy{}, err
	}
	return validatedDeploy{card: card, stats: stats}, nil
}

// spawnDeploy creates the deploy's entities. Multi-unit cards spawn
// side-by-side at fixed per-index offsets so units are not born
// overlapping.
func (s *GameState) spawnDeploy(owner entity.PlayerID, pos geom.Vec2, deploy validatedDeploy) {
	if deploy.stats == nil {
		return
	}
	stats := deploy.stats
	count := deploy.card.Count
	if count < 1 {
		count = 1
	}

	const spacing = 1.0 // wider than two troop radii
	for i := 0; i < count; i++ {
		offset := (float64(i) - float64(count-1)/2) * spacing
		troop := entity.NewTroop(owner, geom.NewVec2(pos.X, pos.Y+offset), stats.HP, entity.TroopData{
			Damage:          stats.Damage,
			Range:           stats.Range,
			AttackInterval:  stats.AttackInterval,
			MovementSpeed:   stats.MovementSpeed,
			Targets:         stats.Targets,
			Ranged:          stats.Ranged,
			Air:             stats.Air,
			ProjectileSpeed: stats.ProjectileSpeed,
		})
		s.Entities.Add(troop)
	}
}
