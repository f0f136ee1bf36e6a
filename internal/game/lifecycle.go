package game

// lifecyclePhase purges every entity whose health has reached zero. It runs
// last in the tick on purpose: entities killed by this tick's combat or
// projectile phases stay resolvable as attack and collision targets for
// everything evaluated earlier in the same tick.
func lifecyclePhase(s *GameState) {
	for _, id := range s.Entities.SortedIDs() {
		if !s.Entities.Get(id).Alive() {
			s.Entities.Remove(id)
		}
	}
}
