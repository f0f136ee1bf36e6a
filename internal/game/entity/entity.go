// Package entity defines the combat entity model: the closed set of entity
// kinds (tower, troop, projectile, spell), their per-kind stats, and the
// store that owns every spawned entity for the duration of a match.
package entity

import "github.com/jtsang27/crust-sim/internal/game/geom"

// PlayerID identifies one of the two players in a match.
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Opponent returns the other player.
func (p PlayerID) Opponent() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	default:
		return "unknown"
	}
}

// ID is a match-unique entity identifier. IDs are allocated from a strictly
// increasing counter and never reused, so a stale reference to a removed
// entity fails lookup instead of aliasing a newer entity. Zero is reserved
// and never allocated.
type ID uint32

// None is the null entity reference.
const None ID = 0

// Kind discriminates the closed set of entity variants.
type Kind int

const (
	KindTower Kind = iota
	KindTroop
	KindProjectile
	KindSpell
)

func (k Kind) String() string {
	switch k {
	case KindTower:
		return "tower"
	case KindTroop:
		return "troop"
	case KindProjectile:
		return "projectile"
	case KindSpell:
		return "spell"
	default:
		return "unknown"
	}
}

// TargetType restricts which entities an attacker may acquire.
type TargetType int

const (
	// TargetGround matches towers and ground troops.
	TargetGround TargetType = iota
	// TargetAir matches air troops only.
	TargetAir
	// TargetBoth matches towers and all troops.
	TargetBoth
	// TargetBuildings matches towers only.
	TargetBuildings
)

func (t TargetType) String() string {
	switch t {
	case TargetGround:
		return "ground"
	case TargetAir:
		return "air"
	case TargetBoth:
		return "both"
	case TargetBuildings:
		return "buildings"
	default:
		return "unknown"
	}
}

// TowerData holds the stats of a stationary structure.
type TowerData struct {
	Damage          float64
	Range           float64
	AttackInterval  float64
	ProjectileSpeed float64
}

// TroopData holds the stats of a mobile combat unit.
type TroopData struct {
	Damage          float64
	Range           float64
	AttackInterval  float64
	MovementSpeed   float64
	Targets         TargetType
	Ranged          bool
	Air             bool
	ProjectileSpeed float64
}

// ProjectileData holds the payload of an in-flight projectile.
type ProjectileData struct {
	Damage float64
	Speed  float64
	// Target is the entity the projectile homes toward, revalidated by
	// lookup every tick.
	Target ID
}

// SpellData holds the payload of an area spell effect.
type SpellData struct {
	Damage float64
	Radius float64
}

// Entity is a single combat object. Exactly one of the kind-specific stat
// pointers is non-nil, matching Kind.
type Entity struct {
	ID       ID
	Owner    PlayerID
	Position geom.Vec2
	// Velocity records the movement committed in the most recent movement
	// phase. Idle or collision-blocked entities carry zero velocity.
	Velocity geom.Vec2
	HP       float64
	MaxHP    float64
	Kind     Kind

	Tower      *TowerData
	Troop      *TroopData
	Projectile *ProjectileData
	Spell      *SpellData

	// AttackCooldown is the time in seconds until the next attack may
	// resolve. Zero means ready.
	AttackCooldown float64

	// Target is the current target reference, or None. Holds no ownership;
	// it must be revalidated by store lookup before use.
	Target ID
}

// NewTower builds a tower entity with full health.
func NewTower(owner PlayerID, pos geom.Vec2, hp float64, data TowerData) *Entity {
	return &Entity{
		Owner:    owner,
		Position: pos,
		HP:       hp,
		MaxHP:    hp,
		Kind:     KindTower,
		Tower:    &data,
	}
}

// NewTroop builds a troop entity with full health.
func NewTroop(owner PlayerID, pos geom.Vec2, hp float64, data TroopData) *Entity {
	return &Entity{
		Owner:    owner,
		Position: pos,
		HP:       hp,
		MaxHP:    hp,
		Kind:     KindTroop,
		Troop:    &data,
	}
}

// NewProjectile builds a projectile entity locked onto a target.
func NewProjectile(owner PlayerID, pos geom.Vec2, data ProjectileData) *Entity {
	return &Entity{
		Owner:      owner,
		Position:   pos,
		HP:         1,
		MaxHP:      1,
		Kind:       KindProjectile,
		Projectile: &data,
	}
}

// Clone returns a deep copy, including the kind-specific stat block.
func (e *Entity) Clone() *Entity {
	cp := *e
	if e.Tower != nil {
		t := *e.Tower
		cp.Tower = &t
	}
	if e.Troop != nil {
		t := *e.Troop
		cp.Troop = &t
	}
	if e.Projectile != nil {
		p := *e.Projectile
		cp.Projectile = &p
	}
	if e.Spell != nil {
		sp := *e.Spell
		cp.Spell = &sp
	}
	return &cp
}

// Alive reports whether the entity still has health. Dead entities remain
// in the store until the lifecycle sweep at the end of the tick.
func (e *Entity) Alive() bool {
	return e.HP > 0
}

// TakeDamage reduces health, clamped at zero.
func (e *Entity) TakeDamage(amount float64) {
	e.HP -= amount
	if e.HP < 0 {
		e.HP = 0
	}
}

// CanAttack reports whether this entity participates in target acquisition
// and attack execution.
func (e *Entity) CanAttack() bool {
	return e.Kind == KindTower || e.Kind == KindTroop
}

// AttackRange returns the attack range, or zero for kinds that cannot attack.
func (e *Entity) AttackRange() float64 {
	switch e.Kind {
	case KindTower:
		return e.Tower.Range
	case KindTroop:
		return e.Troop.Range
	default:
		return 0
	}
}

// Damage returns the damage dealt per attack or impact.
func (e *Entity) Damage() float64 {
	switch e.Kind {
	case KindTower:
		return e.Tower.Damage
	case KindTroop:
		return e.Troop.Damage
	case KindProjectile:
		return e.Projectile.Damage
	case KindSpell:
		return e.Spell.Damage
	default:
		return 0
	}
}

// AttackInterval returns the seconds between attacks.
func (e *Entity) AttackInterval() float64 {
	switch e.Kind {
	case KindTower:
		return e.Tower.AttackInterval
	case KindTroop:
		return e.Troop.AttackInterval
	default:
		return 1
	}
}

// MovementSpeed returns the steering speed in tiles per second. Only troops
// move; towers are fixed and projectiles are advanced by their own system.
func (e *Entity) MovementSpeed() float64 {
	if e.Kind == KindTroop {
		return e.Troop.MovementSpeed
	}
	return 0
}

// CanMove reports whether the movement system steers this entity.
func (e *Entity) CanMove() bool {
	return e.Kind == KindTroop
}

// Targets returns the attacker's target-type filter. Towers fire at
// anything; troops carry their own filter.
func (e *Entity) Targets() TargetType {
	switch e.Kind {
	case KindTower:
		return TargetBoth
	case KindTroop:
		return e.Troop.Targets
	default:
		return TargetBoth
	}
}

// Ranged reports whether attacks launch a projectile instead of applying
// damage instantly. Towers always fire projectiles.
func (e *Entity) Ranged() bool {
	switch e.Kind {
	case KindTower:
		return true
	case KindTroop:
		return e.Troop.Ranged
	default:
		return false
	}
}

// ProjectileSpeed returns the launch speed for ranged attackers.
func (e *Entity) ProjectileSpeed() float64 {
	switch e.Kind {
	case KindTower:
		return e.Tower.ProjectileSpeed
	case KindTroop:
		return e.Troop.ProjectileSpeed
	default:
		return 0
	}
}

// Radius returns the collision radius used when this entity is the moving
// circle in an overlap test.
func (e *Entity) Radius() float64 {
	switch e.Kind {
	case KindTower:
		return TowerHalfExtent
	case KindTroop:
		return TroopRadius
	case KindProjectile:
		return ProjectileRadius
	default:
		return 0
	}
}

// Collision geometry is fixed per entity kind.
const (
	TowerHalfExtent  = 2.0
	TroopRadius      = 0.4
	ProjectileRadius = 0.1
)

// CollisionShape returns the footprint used when this entity is the
// stationary side of an overlap test. Spells have no collision.
func (e *Entity) CollisionShape() geom.Shape {
	switch e.Kind {
	case KindTower:
		return geom.Rect(TowerHalfExtent, TowerHalfExtent)
	case KindTroop:
		return geom.Circle(TroopRadius)
	case KindProjectile:
		return geom.Circle(ProjectileRadius)
	default:
		return geom.None()
	}
}

// Matches reports whether a candidate entity is acquirable under the given
// target-type filter. Projectiles and spells are never targetable.
func Matches(filter TargetType, candidate *Entity) bool {
	switch candidate.Kind {
	case KindTower:
		return filter == TargetGround || filter == TargetBoth || filter == TargetBuildings
	case KindTroop:
		switch filter {
		case TargetGround:
			return !candidate.Troop.Air
		case TargetAir:
			return candidate.Troop.Air
		case TargetBoth:
			return true
		default:
			return false
		}
	default:
		return false
	}
}
