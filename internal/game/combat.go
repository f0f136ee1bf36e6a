package game

import (
	"math"

	"github.com/jtsang27/crust-sim/internal/game/entity"
)

// stagedAttack is one resolved attack collected before any damage applies.
type stagedAttack struct {
	attacker entity.ID
	target   entity.ID
	damage   float64
	interval float64
	ranged   bool
	speed    float64
}

// combatPhase runs target acquisition and attack execution as two passes
// over the start-of-phase state, so no attacker observes another's
// mutations mid-pass.
//
// Pass 1 revalidates or reacquires every attacker's target and commits the
// assignments only after the whole pass completes. Pass 2 collects attacks
// from ready attackers with an in-range target, then applies them: melee
// damage lands instantly, ranged attacks launch a homing projectile.
// Cooldowns reset on launch, not on hit.
func combatPhase(s *GameState, dt float64) {
	ids := s.Entities.SortedIDs()

	for _, id := range ids {
		e := s.Entities.Get(id)
		if e.AttackCooldown > 0 {
			e.AttackCooldown = math.Max(0, e.AttackCooldown-dt)
		}
	}

	// Pass 1: target acquisition, staged then committed.
	assignments := make(map[entity.ID]entity.ID, len(ids))
	for _, id := range ids {
		e := s.Entities.Get(id)
		if !e.CanAttack() {
			continue
		}
		if validTarget(s, e, e.Target) {
			assignments[id] = e.Target
			continue
		}
		assignments[id] = acquireTarget(s, e)
	}
	for id, target := range assignments {
		s.Entities.Get(id).Target = target
	}

	// Pass 2: attack execution over the committed assignments.
	var attacks []stagedAttack
	for _, id := range ids {
		e := s.Entities.Get(id)
		if !e.CanAttack() || e.AttackCooldown > 0 || e.Target == entity.None {
			continue
		}
		target := s.Entities.Get(e.Target)
		if target == nil {
			continue
		}
		if e.Position.DistanceTo(target.Position) > e.AttackRange() {
			continue
		}
		attacks = append(attacks, stagedAttack{
			attacker: id,
			target:   e.Target,
			damage:   e.Damage(),
			interval: e.AttackInterval(),
			ranged:   e.Ranged(),
			speed:    e.ProjectileSpeed(),
		})
	}

	for _, atk := range attacks {
		attacker := s.Entities.Get(atk.attacker)
		if atk.ranged {
			proj := entity.NewProjectile(attacker.Owner, attacker.Position, entity.ProjectileData{
				Damage: atk.damage,
				Speed:  atk.speed,
				Target: atk.target,
			})
			s.Entities.Add(proj)
		} else if target := s.Entities.Get(atk.target); target != nil {
			target.TakeDamage(atk.damage)
		}
		attacker.AttackCooldown = atk.interval
	}
}

// validTarget reports whether a held target reference may be kept: it must
// still resolve, be alive, and belong to a different owner.
func validTarget(s *GameState, attacker *entity.Entity, id entity.ID) bool {
	if id == entity.None {
		return false
	}
	target := s.Entities.Get(id)
	return target != nil && target.Alive() && target.Owner != attacker.Owner
}

// acquireTarget scans for the nearest alive enemy compatible with the
// attacker's target-type filter, regardless of range; movement closes the
// gap. Strictly-less-than comparison over ascending ids makes the lowest id
// win distance ties, so map iteration order never leaks into the result.
func acquireTarget(s *GameState, attacker *entity.Entity) entity.ID {
	filter := attacker.Targets()

	best := entity.None
	bestDist := math.Inf(1)
	for _, id := range s.Entities.SortedIDs() {
		if id == attacker.ID {
			continue
		}
		candidate := s.Entities.Get(id)
		if candidate.Owner == attacker.Owner || !candidate.Alive() {
			continue
		}
		if !entity.Matches(filter, candidate) {
			continue
		}
		dist := attacker.Position.DistanceTo(candidate.Position)
		if dist < bestDist {
			best = id
			bestDist = dist
		}
	}
	return best
}
