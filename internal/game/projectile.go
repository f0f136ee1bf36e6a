package game

import (
	"github.com/jtsang27/crust-sim/internal/game/entity"
	"github.com/jtsang27/crust-sim/internal/game/geom"
)

// projectilePhase advances every in-flight projectile toward its locked
// target's current position (continuous homing) and resolves impacts
// against the target's collision shape.
//
// Mutations are staged and applied after the scan: position commits,
// impact damage, and despawns. A projectile whose target is gone or dead
// despawns without dealing damage. Victims killed by impacts stay in the
// store until the lifecycle sweep.
func projectilePhase(s *GameState, dt float64) {
	type impact struct {
		target entity.ID
		damage float64
	}
	type moveCommit struct {
		id  entity.ID
		pos geom.Vec2
	}

	var moves []moveCommit
	var impacts []impact
	var despawns []entity.ID

	for _, id := range s.Entities.SortedIDs() {
		e := s.Entities.Get(id)
		if e.Kind != entity.KindProjectile {
			continue
		}
		data := e.Projectile

		target := s.Entities.Get(data.Target)
		if target == nil || !target.Alive() {
			despawns = append(despawns, id)
			continue
		}

		dir := e.Position.DirectionTo(target.Position)
		candidate := e.Position.Add(dir.Scale(data.Speed * dt))

		if geom.Overlaps(candidate, e.Radius(), target.Position, target.CollisionShape()) {
			impacts = append(impacts, impact{target: data.Target, damage: data.Damage})
			despawns = append(despawns, id)
			continue
		}
		moves = append(moves, moveCommit{id: id, pos: candidate})
	}

	for _, m := range moves {
		if e := s.Entities.Get(m.id); e != nil {
			e.Position = m.pos
		}
	}
	for _, hit := range impacts {
		if target := s.Entities.Get(hit.target); target != nil {
			target.TakeDamage(hit.damage)
		}
	}
	for _, id := range despawns {
		s.Entities.Remove(id)
	}
}
