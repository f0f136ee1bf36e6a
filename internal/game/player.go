package game

import (
	"fmt"

	"github.com/jtsang27/crust-sim/internal/arena"
	"github.com/jtsang27/crust-sim/internal/game/elixir"
	"github.com/jtsang27/crust-sim/internal/game/entity"
	"github.com/jtsang27/crust-sim/internal/game/rng"
)

// Deck and hand sizes are fixed.
const (
	DeckSize = 8
	HandSize = 4
)

// PlayerState holds everything owned by one player: the elixir pool, the
// mapping from structure slots to tower entities, and the deck cycle.
type PlayerState struct {
	ID     entity.PlayerID
	Elixir elixir.Pool

	// Towers maps structure slots to the entity ids spawned at match start.
	// Remaining structure health reads through the entity store.
	Towers map[arena.TowerSlot]entity.ID

	// InitialTowerHP is the summed health of all structures at match start,
	// used for cumulative damage reporting.
	InitialTowerHP float64

	// Deck is the shuffled 8-card cycle. Hand holds 4 indices into Deck;
	// NextDraw is the cycle position of the next card dealt into the hand.
	Deck     []string
	Hand     []int
	NextDraw int
}

// NewPlayerState creates a player with a full elixir pool and no deck.
func NewPlayerState(id entity.PlayerID) *PlayerState {
	return &PlayerState{
		ID:     id,
		Elixir: elixir.NewPool(),
		Towers: make(map[arena.TowerSlot]entity.ID),
	}
}

// SetDeck installs an 8-card deck, shuffles it with the match RNG
// (Fisher-Yates), and deals the first four cards into the hand.
func (p *PlayerState) SetDeck(names []string, stream *rng.Stream) error {
	if len(names) != DeckSize {
		return fmt.Errorf("%w: got %d cards, need %d", ErrInvalidDeck, len(names), DeckSize)
	}

	deck := make([]string, DeckSize)
	copy(deck, names)
	for i := DeckSize - 1; i >= 1; i-- {
		j := stream.IntRange(0, i+1)
		deck[i], deck[j] = deck[j], deck[i]
	}

	p.Deck = deck
	p.Hand = []int{0, 1, 2, 3}
	p.NextDraw = HandSize
	return nil
}

// HandCard resolves a hand slot to the card name it currently holds.
func (p *PlayerState) HandCard(slot int) (string, error) {
	if slot < 0 || slot >= len(p.Hand) {
		return "", fmt.Errorf("hand slot %d: %w", slot, ErrInvalidHandIndex)
	}
	deckIndex := p.Hand[slot]
	if deckIndex < 0 || deckIndex >= len(p.Deck) {
		return "", fmt.Errorf("hand slot %d maps to deck index %d: %w", slot, deckIndex, ErrInvalidHandIndex)
	}
	return p.Deck[deckIndex], nil
}

// cycleHand replaces a played hand slot with the next card in the deck
// cycle. Callers must fully validate the deploy first; this commits the
// draw-cycle mutation.
func (p *PlayerState) cycleHand(slot int) {
	p.Hand[slot] = p.NextDraw
	p.NextDraw = (p.NextDraw + 1) % DeckSize
}

// clone returns a deep copy for snapshots.
func (p *PlayerState) clone() *PlayerState {
	cp := *p
	cp.Towers = make(map[arena.TowerSlot]entity.ID, len(p.Towers))
	for slot, id := range p.Towers {
		cp.Towers[slot] = id
	}
	cp.Deck = append([]string(nil), p.Deck...)
	cp.Hand = append([]int(nil), p.Hand...)
	return &cp
}
