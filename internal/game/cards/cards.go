// Package cards provides the read-only card and tower definition lookup
// consumed by action application. Definitions come from the built-in
// default set or from a YAML file; the simulation core never parses files
// itself.
package cards

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jtsang27/crust-sim/internal/game/entity"
)

// Lookup failures reported to action application.
var (
	ErrUnknownCard  = errors.New("unknown card")
	ErrUnknownLevel = errors.New("unknown card level")
)

// Type discriminates what a card does when deployed.
type Type int

const (
	TypeTroop Type = iota
	TypeSpell
	TypeBuilding
)

func (t Type) String() string {
	switch t {
	case TypeTroop:
		return "troop"
	case TypeSpell:
		return "spell"
	case TypeBuilding:
		return "building"
	default:
		return "unknown"
	}
}

// LevelStats is one per-level stat row for a troop card.
type LevelStats struct {
	Level           int
	HP              float64
	Damage          float64
	Range           float64
	AttackInterval  float64
	MovementSpeed   float64
	ProjectileSpeed float64
	Targets         entity.TargetType
	Ranged          bool
	Air             bool
}

// SpellStats is one per-level stat row for a spell card.
type SpellStats struct {
	Level  int
	Damage float64
	Radius float64
}

// Card is a deployable definition looked up by name.
type Card struct {
	Name   string
	Cost   float64
	Type   Type
	Count  int // troops spawned per deploy
	Levels []LevelStats
	Spell  []SpellStats
}

// StatsForLevel returns the troop stat row for the requested level.
func (c *Card) StatsForLevel(level int) (*LevelStats, error) {
	for i := range c.Levels {
		if c.Levels[i].Level == level {
			return &c.Levels[i], nil
		}
	}
	return nil, fmt.Errorf("card %q level %d: %w", c.Name, level, ErrUnknownLevel)
}

// TowerLevel is one per-level stat row for a tower.
type TowerLevel struct {
	Level  int
	HP     float64
	Damage float64
}

// Tower is a structure definition. Towers have no elixir cost; one king and
// two princess towers per player are placed at match start.
type Tower struct {
	Name            string
	Range           float64
	AttackInterval  float64
	ProjectileSpeed float64
	Levels          []TowerLevel
}

// StatsForLevel returns the tower stat row for the requested level.
func (t *Tower) StatsForLevel(level int) (*TowerLevel, error) {
	for i := range t.Levels {
		if t.Levels[i].Level == level {
			return &t.Levels[i], nil
		}
	}
	return nil, fmt.Errorf("tower %q level %d: %w", t.Name, level, ErrUnknownLevel)
}

// Provider is the immutable definition registry handed to the engine.
type Provider struct {
	cards  map[string]*Card
	towers map[string]*Tower
}

// NewProvider builds a registry from explicit definitions.
func NewProvider(cardDefs []Card, towerDefs []Tower) *Provider {
	p := &Provider{
		cards:  make(map[string]*Card, len(cardDefs)),
		towers: make(map[string]*Tower, len(towerDefs)),
	}
	for i := range cardDefs {
		c := cardDefs[i]
		p.cards[c.Name] = &c
	}
	for i := range towerDefs {
		t := towerDefs[i]
		p.towers[t.Name] = &t
	}
	return p
}

// Default returns a provider loaded with the built-in card and tower set.
func Default() *Provider {
	return NewProvider(defaultCards(), defaultTowers())
}

// Card looks up a card definition by name.
func (p *Provider) Card(name string) (*Card, error) {
	c, ok := p.cards[name]
	if !ok {
		return nil, fmt.Errorf("card %q: %w", name, ErrUnknownCard)
	}
	return c, nil
}

// Has reports whether a card definition exists.
func (p *Provider) Has(name string) bool {
	_, ok := p.cards[name]
	return ok
}

// Tower looks up a tower definition by name.
func (p *Provider) Tower(name string) (*Tower, error) {
	t, ok := p.towers[name]
	if !ok {
		return nil, fmt.Errorf("tower %q: %w", name, ErrUnknownCard)
	}
	return t, nil
}

// Len returns the number of registered cards.
func (p *Provider) Len() int {
	return len(p.cards)
}

// Names returns all registered card names in sorted order.
func (p *Provider) Names() []string {
	names := make([]string, 0, len(p.cards))
	for name := range p.cards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
