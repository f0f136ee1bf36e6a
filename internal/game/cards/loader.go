package cards

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/jtsang27/crust-sim/internal/game/entity"
)

// Definition-loading failures. These occur only at the configuration
// boundary, never inside the tick pipeline.
var (
	ErrIOFailure           = errors.New("definition file unreadable")
	ErrMalformedDefinition = errors.New("malformed definition")
)

type cardFile struct {
	Cards  []cardDef  `mapstructure:"cards"`
	Towers []towerDef `mapstructure:"towers"`
}

type cardDef struct {
	Name   string      `mapstructure:"name"`
	Cost   float64     `mapstructure:"cost"`
	Type   string      `mapstructure:"type"`
	Count  int         `mapstructure:"count"`
	Levels []levelDef  `mapstructure:"levels"`
	Spell  []spellDef  `mapstructure:"spell_levels"`
}

type levelDef struct {
	Level           int     `mapstructure:"level"`
	HP              float64 `mapstructure:"hp"`
	Damage          float64 `mapstructure:"damage"`
	Range           float64 `mapstructure:"range"`
	AttackInterval  float64 `mapstructure:"attack_interval"`
	MovementSpeed   float64 `mapstructure:"movement_speed"`
	ProjectileSpeed float64 `mapstructure:"projectile_speed"`
	Targets         string  `mapstructure:"targets"`
	Ranged          bool    `mapstructure:"ranged"`
	Air             bool    `mapstructure:"air"`
}

type spellDef struct {
	Level  int     `mapstructure:"level"`
	Damage float64 `mapstructure:"damage"`
	Radius float64 `mapstructure:"radius"`
}

type towerDef struct {
	Name            string          `mapstructure:"name"`
	Range           float64         `mapstructure:"range"`
	AttackInterval  float64         `mapstructure:"attack_interval"`
	ProjectileSpeed float64         `mapstructure:"projectile_speed"`
	Levels          []towerLevelDef `mapstructure:"levels"`
}

type towerLevelDef struct {
	Level  int     `mapstructure:"level"`
	HP     float64 `mapstructure:"hp"`
	Damage float64 `mapstructure:"damage"`
}

// LoadFile reads card and tower definitions from a YAML file.
func LoadFile(path string) (*Provider, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDefinition, err)
	}

	var file cardFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDefinition, err)
	}

	cardDefs := make([]Card, 0, len(file.Cards))
	for _, def := range file.Cards {
		card, err := def.toCard()
		if err != nil {
			return nil, err
		}
		cardDefs = append(cardDefs, card)
	}

	towerDefs := make([]Tower, 0, len(file.Towers))
	for _, def := range file.Towers {
		towerDefs = append(towerDefs, def.toTower())
	}

	return NewProvider(cardDefs, towerDefs), nil
}

func (d cardDef) toCard() (Card, error) {
	cardType, err := parseType(d.Type)
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", d.Name, err)
	}

	card := Card{
		Name:  d.Name,
		Cost:  d.Cost,
		Type:  cardType,
		Count: d.Count,
	}
	if card.Name == "" {
		return Card{}, fmt.Errorf("%w: card with empty name", ErrMalformedDefinition)
	}

	for _, lvl := range d.Levels {
		targets, err := parseTargets(lvl.Targets)
		if err != nil {
			return Card{}, fmt.Errorf("card %q level %d: %w", d.Name, lvl.Level, err)
		}
		card.Levels = append(card.Levels, LevelStats{
			Level:           lvl.Level,
			HP:              lvl.HP,
			Damage:          lvl.Damage,
			Range:           lvl.Range,
			AttackInterval:  lvl.AttackInterval,
			MovementSpeed:   lvl.MovementSpeed,
			ProjectileSpeed: lvl.ProjectileSpeed,
			Targets:         targets,
			Ranged:          lvl.Ranged,
			Air:             lvl.Air,
		})
	}

	for _, lvl := range d.Spell {
		card.Spell = append(card.Spell, SpellStats{
			Level:  lvl.Level,
			Damage: lvl.Damage,
			Radius: lvl.Radius,
		})
	}

	return card, nil
}

func (d towerDef) toTower() Tower {
	tower := Tower{
		Name:            d.Name,
		Range:           d.Range,
		AttackInterval:  d.AttackInterval,
		ProjectileSpeed: d.ProjectileSpeed,
	}
	for _, lvl := range d.Levels {
		tower.Levels = append(tower.Levels, TowerLevel{
			Level:  lvl.Level,
			HP:     lvl.HP,
			Damage: lvl.Damage,
		})
	}
	return tower
}

func parseType(s string) (Type, error) {
	switch s {
	case "troop":
		return TypeTroop, nil
	case "spell":
		return TypeSpell, nil
	case "building":
		return TypeBuilding, nil
	default:
		return 0, fmt.Errorf("%w: unknown card type %q", ErrMalformedDefinition, s)
	}
}

func parseTargets(s string) (entity.TargetType, error) {
	switch s {
	case "", "ground":
		return entity.TargetGround, nil
	case "air":
		return entity.TargetAir, nil
	case "both":
		return entity.TargetBoth, nil
	case "buildings":
		return entity.TargetBuildings, nil
	default:
		return 0, fmt.Errorf("%w: unknown target filter %q", ErrMalformedDefinition, s)
	}
}
