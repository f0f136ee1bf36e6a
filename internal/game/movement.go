package game

import (
	"github.com/jtsang27/crust-sim/internal/game/entity"
	"github.com/jtsang27/crust-sim/internal/game/geom"
)

// moveOrder is a staged movement decision for one troop.
type moveOrder struct {
	id       entity.ID
	velocity geom.Vec2
}

// movementPhase steers troops toward their targets and integrates positions
// under the collision-rejection rule.
//
// Phase 1 computes every desired velocity from the unmutated start-of-tick
// positions, so move order cannot affect steering. Phase 2 commits moves in
// ascending id order: each candidate position is tested against the current
// position of every other collision-bearing entity, and any overlap rejects
// the whole move for this tick. Testing against already-committed positions
// keeps the no-overlap invariant true after every individual commit.
func movementPhase(s *GameState, dt float64) {
	ids := s.Entities.SortedIDs()

	orders := make([]moveOrder, 0, len(ids))
	for _, id := range ids {
		e := s.Entities.Get(id)
		if !e.CanMove() {
			continue
		}
		orders = append(orders, moveOrder{id: id, velocity: desiredVelocity(s, e)})
	}

	for _, order := range orders {
		e := s.Entities.Get(order.id)
		e.Velocity = order.velocity
		if order.velocity.IsZero() {
			continue
		}

		candidate := e.Position.Add(order.velocity.Scale(dt))
		if collides(s, e, candidate) {
			// Rejected outright: no partial slide, no push-back.
			e.Velocity = geom.Zero()
			continue
		}
		e.Position = candidate
	}
}

// desiredVelocity returns the steering for one troop: zero when it has no
// resolvable target or is already within attack range, otherwise the unit
// vector toward the target scaled by movement speed.
func desiredVelocity(s *GameState, e *entity.Entity) geom.Vec2 {
	if e.Target == entity.None {
		return geom.Zero()
	}
	target := s.Entities.Get(e.Target)
	if target == nil {
		return geom.Zero()
	}
	if e.Position.DistanceTo(target.Position) <= e.AttackRange() {
		return geom.Zero()
	}
	return e.Position.DirectionTo(target.Position).Scale(e.MovementSpeed())
}

// collides reports whether a troop at the candidate position would overlap
// any other collision-bearing entity.
func collides(s *GameState, mover *entity.Entity, candidate geom.Vec2) bool {
	radius := mover.Radius()
	for _, id := range s.Entities.SortedIDs() {
		if id == mover.ID {
			continue
		}
		other := s.Entities.Get(id)
		if geom.Overlaps(candidate, radius, other.Position, other.CollisionShape()) {
			return true
		}
	}
	return false
}
