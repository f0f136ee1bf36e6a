package game

// ActionResult pairs a submitted action with its application outcome. A
// non-nil Err means the action was rejected and left the state unchanged;
// the tick still ran in full.
type ActionResult struct {
	Action Action
	Err    error
}

// Step advances the simulation by exactly one tick: it applies the ordered
// action stream, then runs the fixed phase pipeline, then advances the tick
// counter and match clock.
//
// The phase order is part of the determinism contract and must not change:
//
//	elixir regen -> movement -> combat -> projectile -> lifecycle
//
// Projectiles advance after combat so a projectile launched this tick can
// already close on its target; lifecycle runs last so entities that died
// this tick stay resolvable throughout it.
func Step(s *GameState, actions []Action) []ActionResult {
	results := make([]ActionResult, len(actions))
	for i, action := range actions {
		results[i] = ActionResult{Action: action, Err: action.apply(s)}
	}

	for _, ps := range s.Players {
		ps.Elixir.Regen(Dt)
	}
	movementPhase(s, Dt)
	combatPhase(s, Dt)
	projectilePhase(s, Dt)
	lifecyclePhase(s)

	s.Tick++
	s.MatchTime += Dt

	return results
}
