package cards

import "github.com/jtsang27/crust-sim/internal/game/entity"

// Standard tower names used at match setup.
const (
	KingTowerName     = "King Tower"
	PrincessTowerName = "Princess Tower"
)

// defaultCards is the built-in test set. Stat rows cover tournament-standard
// level 11 plus level 9 for lookup coverage.
func defaultCards() []Card {
	return []Card{
		{
			Name:  "Knight",
			Cost:  3,
			Type:  TypeTroop,
			Count: 1,
			Levels: []LevelStats{
				{Level: 9, HP: 1128, Damage: 130, Range: 1.2, AttackInterval: 1.2, MovementSpeed: 1.0, Targets: entity.TargetGround},
				{Level: 11, HP: 1452, Damage: 167, Range: 1.2, AttackInterval: 1.2, MovementSpeed: 1.0, Targets: entity.TargetGround},
			},
		},
		{
			Name:  "Archers",
			Cost:  3,
			Type:  TypeTroop,
			Count: 2,
			Levels: []LevelStats{
				{Level: 9, HP: 196, Damage: 78, Range: 5.0, AttackInterval: 1.2, MovementSpeed: 1.0, ProjectileSpeed: 8.0, Targets: entity.TargetBoth, Ranged: true},
				{Level: 11, HP: 252, Damage: 100, Range: 5.0, AttackInterval: 1.2, MovementSpeed: 1.0, ProjectileSpeed: 8.0, Targets: entity.TargetBoth, Ranged: true},
			},
		},
		{
			Name:  "Giant",
			Cost:  5,
			Type:  TypeTroop,
			Count: 1,
			Levels: []LevelStats{
				{Level: 9, HP: 2544, Damage: 164, Range: 1.2, AttackInterval: 1.5, MovementSpeed: 0.75, Targets: entity.TargetBuildings},
				{Level: 11, HP: 3275, Damage: 211, Range: 1.2, AttackInterval: 1.5, MovementSpeed: 0.75, Targets: entity.TargetBuildings},
			},
		},
		{
			Name:  "Musketeer",
			Cost:  4,
			Type:  TypeTroop,
			Count: 1,
			Levels: []LevelStats{
				{Level: 9, HP: 463, Damage: 140, Range: 6.0, AttackInterval: 1.1, MovementSpeed: 1.0, ProjectileSpeed: 10.0, Targets: entity.TargetBoth, Ranged: true},
				{Level: 11, HP: 598, Damage: 181, Range: 6.0, AttackInterval: 1.1, MovementSpeed: 1.0, ProjectileSpeed: 10.0, Targets: entity.TargetBoth, Ranged: true},
			},
		},
		{
			Name: "Fireball",
			Cost: 4,
			Type: TypeSpell,
			Spell: []SpellStats{
				{Level: 9, Damage: 444, Radius: 2.5},
				{Level: 11, Damage: 572, Radius: 2.5},
			},
		},
		{
			Name: "Arrows",
			Cost: 3,
			Type: TypeSpell,
			Spell: []SpellStats{
				{Level: 9, Damage: 112, Radius: 4.0},
				{Level: 11, Damage: 144, Radius: 4.0},
			},
		},
		{
			Name: "Cannon",
			Cost: 3,
			Type: TypeBuilding,
			Levels: []LevelStats{
				{Level: 9, HP: 578, Damage: 100, Range: 5.5, AttackInterval: 0.9, Targets: entity.TargetGround},
				{Level: 11, HP: 742, Damage: 127, Range: 5.5, AttackInterval: 0.9, Targets: entity.TargetGround},
			},
		},
		{
			Name:  "Minions",
			Cost:  3,
			Type:  TypeTroop,
			Count: 3,
			Levels: []LevelStats{
				{Level: 9, HP: 147, Damage: 67, Range: 2.0, AttackInterval: 1.0, MovementSpeed: 1.5, ProjectileSpeed: 8.0, Targets: entity.TargetBoth, Ranged: true, Air: true},
				{Level: 11, HP: 190, Damage: 84, Range: 2.0, AttackInterval: 1.0, MovementSpeed: 1.5, ProjectileSpeed: 8.0, Targets: entity.TargetBoth, Ranged: true, Air: true},
			},
		},
	}
}

func defaultTowers() []Tower {
	return []Tower{
		{
			Name:            KingTowerName,
			Range:           7.0,
			AttackInterval:  1.0,
			ProjectileSpeed: 10.0,
			Levels: []TowerLevel{
				{Level: 9, HP: 3096, Damage: 90},
				{Level: 11, HP: 4008, Damage: 109},
			},
		},
		{
			Name:            PrincessTowerName,
			Range:           7.5,
			AttackInterval:  0.8,
			ProjectileSpeed: 10.0,
			Levels: []TowerLevel{
				{Level: 9, HP: 1890, Damage: 79},
				{Level: 11, HP: 2534, Damage: 104},
			},
		},
	}
}
