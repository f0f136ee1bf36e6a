package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsang27/crust-sim/internal/game/entity"
	"github.com/jtsang27/crust-sim/internal/game/geom"
)

func TestRangedAttackLaunchesProjectile(t *testing.T) {
	s := newBareState(1)

	archer := addTroop(s, entity.Player1, geom.NewVec2(10, 9), 1000, rangedStats(100, 5, 0))
	addTroop(s, entity.Player2, geom.NewVec2(14, 9), 10000, entity.TroopData{
		Range: 1.2, AttackInterval: 1.2, Targets: entity.TargetBoth,
	})

	require.Equal(t, 0, countKind(s, entity.KindProjectile))
	Step(s, nil)

	assert.Equal(t, 1, countKind(s, entity.KindProjectile))
	assert.Greater(t, s.Entities.Get(archer).AttackCooldown, 0.0, "cooldown resets on launch, not on hit")
}

func TestProjectileHomesAndDealsDamageOnImpact(t *testing.T) {
	s := newBareState(1)

	addTroop(s, entity.Player1, geom.NewVec2(10, 9), 1000, rangedStats(100, 5, 0))
	dummy := addTroop(s, entity.Player2, geom.NewVec2(14, 9), 10000, entity.TroopData{
		Range: 1.2, AttackInterval: 1.2, Targets: entity.TargetBoth,
	})

	// 4 tiles at speed 8 is half a second of flight; contact happens at
	// the 0.5 tile combined-radius boundary, a touch sooner.
	stepN(s, 40)

	assert.Equal(t, 10000.0-100.0, s.Entities.Get(dummy).HP)
	assert.Equal(t, 0, countKind(s, entity.KindProjectile), "projectile despawns on impact")
}

func TestProjectileTracksMovingTarget(t *testing.T) {
	s := newBareState(1)

	// The runner walks away from its pursuer but projectiles are faster
	// and re-aim at the current position every tick.
	addTroop(s, entity.Player1, geom.NewVec2(10, 9), 1000, rangedStats(100, 6, 0))
	runner := addTroop(s, entity.Player2, geom.NewVec2(14, 9), 10000, entity.TroopData{
		Range: 1.2, AttackInterval: 1.2, MovementSpeed: 1.0, Targets: entity.TargetBoth,
	})
	decoy := addTroop(s, entity.Player1, geom.NewVec2(30, 9), 10000, entity.TroopData{
		Range: 1.2, AttackInterval: 1.2, Targets: entity.TargetBoth,
	})
	// Lock the runner onto the distant decoy so it walks away from the
	// archer; a held valid target is never re-evaluated for distance.
	s.Entities.Get(runner).Target = decoy

	stepN(s, 60)

	assert.Less(t, s.Entities.Get(runner).HP, 10000.0, "homing projectile must catch a slower target")
}

func TestProjectileDespawnsWithoutDamageWhenTargetDies(t *testing.T) {
	s := newBareState(1)

	addTroop(s, entity.Player1, geom.NewVec2(10, 9), 1000, rangedStats(100, 6, 0))
	victim := addTroop(s, entity.Player2, geom.NewVec2(15, 9), 10000, entity.TroopData{
		Range: 1.2, AttackInterval: 1.2, Targets: entity.TargetBoth,
	})
	bystander := addTroop(s, entity.Player2, geom.NewVec2(16, 9), 10000, entity.TroopData{
		Range: 1.2, AttackInterval: 1.2, Targets: entity.TargetBoth,
	})

	Step(s, nil)
	require.Equal(t, 1, countKind(s, entity.KindProjectile))

	// Kill the target mid-flight; the projectile must vanish next tick
	// without redirecting to anyone else.
	s.Entities.Get(victim).TakeDamage(10000)
	Step(s, nil)

	assert.Equal(t, 0, countKind(s, entity.KindProjectile))
	assert.Equal(t, 10000.0, s.Entities.Get(bystander).HP)
}

func TestProjectilesAreNeverTargeted(t *testing.T) {
	s := newBareState(1)

	// Two opposing ranged units exchange fire; no attacker may ever lock
	// onto a projectile even when one passes closer than the enemy troop.
	a := addTroop(s, entity.Player1, geom.NewVec2(10, 9), 10000, rangedStats(10, 6, 0))
	b := addTroop(s, entity.Player2, geom.NewVec2(15, 9), 10000, rangedStats(10, 6, 0))

	for i := 0; i < 120; i++ {
		Step(s, nil)
		assert.Equal(t, b, s.Entities.Get(a).Target)
		assert.Equal(t, a, s.Entities.Get(b).Target)
	}
}
