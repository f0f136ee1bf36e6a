package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsang27/crust-sim/internal/game/geom"
)

func testTroop(owner PlayerID) *Entity {
	return NewTroop(owner, geom.NewVec2(1, 1), 100, TroopData{
		Damage:         10,
		Range:          1.2,
		AttackInterval: 1.2,
		MovementSpeed:  1.0,
		Targets:        TargetGround,
	})
}

func TestStoreAllocatesMonotonicIDs(t *testing.T) {
	s := NewStore()

	a := s.Add(testTroop(Player1))
	b := s.Add(testTroop(Player1))
	c := s.Add(testTroop(Player2))

	assert.Equal(t, ID(1), a)
	assert.Equal(t, ID(2), b)
	assert.Equal(t, ID(3), c)
	assert.Equal(t, 3, s.Len())
}

func TestStoreNeverReusesIDs(t *testing.T) {
	s := NewStore()

	a := s.Add(testTroop(Player1))
	s.Remove(a)
	require.Nil(t, s.Get(a))

	b := s.Add(testTroop(Player1))
	assert.Greater(t, b, a, "removed ID must not be reissued")
}

func TestStoreSortedIDs(t *testing.T) {
	s := NewStore()
	for i := 0; i < 10; i++ {
		s.Add(testTroop(Player1))
	}
	s.Remove(3)
	s.Remove(7)

	ids := s.SortedIDs()
	require.Len(t, ids, 8)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestStoreRestorePreservesCounter(t *testing.T) {
	s := NewStore()
	s.Add(testTroop(Player1))
	last := s.Add(testTroop(Player2))
	s.Remove(last)

	restored := Restore(s.All(), s.NextID())
	assert.Equal(t, s.NextID(), restored.NextID())

	next := restored.Add(testTroop(Player1))
	assert.Greater(t, next, last)
}

func TestTakeDamageClampsAtZero(t *testing.T) {
	e := testTroop(Player1)
	e.TakeDamage(40)
	assert.Equal(t, 60.0, e.HP)
	assert.True(t, e.Alive())

	e.TakeDamage(1000)
	assert.Equal(t, 0.0, e.HP)
	assert.False(t, e.Alive())
}

func TestTargetFilterMatching(t *testing.T) {
	tower := NewTower(Player2, geom.NewVec2(3, 3), 2400, TowerData{Damage: 50, Range: 7})
	ground := testTroop(Player2)
	air := NewTroop(Player2, geom.NewVec2(2, 2), 100, TroopData{Targets: TargetBoth, Air: true})
	projectile := NewProjectile(Player2, geom.NewVec2(0, 0), ProjectileData{Damage: 10, Speed: 5, Target: 1})

	assert.True(t, Matches(TargetGround, tower))
	assert.True(t, Matches(TargetGround, ground))
	assert.False(t, Matches(TargetGround, air))

	assert.False(t, Matches(TargetAir, tower))
	assert.False(t, Matches(TargetAir, ground))
	assert.True(t, Matches(TargetAir, air))

	assert.True(t, Matches(TargetBoth, tower))
	assert.True(t, Matches(TargetBoth, ground))
	assert.True(t, Matches(TargetBoth, air))

	assert.True(t, Matches(TargetBuildings, tower))
	assert.False(t, Matches(TargetBuildings, ground))
	assert.False(t, Matches(TargetBuildings, air))

	for _, filter := range []TargetType{TargetGround, TargetAir, TargetBoth, TargetBuildings} {
		assert.False(t, Matches(filter, projectile), "projectiles are never targetable")
	}
}

func TestKindAccessors(t *testing.T) {
	tower := NewTower(Player1, geom.NewVec2(0, 0), 2400, TowerData{
		Damage: 50, Range: 7, AttackInterval: 0.8, ProjectileSpeed: 10,
	})
	assert.True(t, tower.CanAttack())
	assert.False(t, tower.CanMove())
	assert.True(t, tower.Ranged())
	assert.Equal(t, TargetBoth, tower.Targets())
	assert.Equal(t, geom.ShapeRect, tower.CollisionShape().Kind)

	melee := testTroop(Player1)
	assert.True(t, melee.CanAttack())
	assert.True(t, melee.CanMove())
	assert.False(t, melee.Ranged())
	assert.Equal(t, geom.ShapeCircle, melee.CollisionShape().Kind)

	proj := NewProjectile(Player1, geom.NewVec2(0, 0), ProjectileData{Damage: 10, Speed: 5, Target: 2})
	assert.False(t, proj.CanAttack())
	assert.False(t, proj.CanMove())
	assert.Equal(t, 10.0, proj.Damage())
}
