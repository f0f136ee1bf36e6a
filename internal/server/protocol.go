package server

import (
	"github.com/jtsang27/crust-sim/internal/export"
	"github.com/jtsang27/crust-sim/internal/game"
	"github.com/jtsang27/crust-sim/internal/game/entity"
	"github.com/jtsang27/crust-sim/internal/game/geom"
)

// Request is an inbound client message. Type selects the handler:
//
//	reset  start a new match with the given seed and optional decks
//	step   advance the client's match one tick with the given deploys
//	state  re-send the current player view without stepping
type Request struct {
	Type    string              `json:"type"`
	Seed    uint64              `json:"seed,omitempty"`
	Player  int                 `json:"player,omitempty"` // viewing seat, 1 or 2; default 1
	Decks   map[string][]string `json:"decks,omitempty"`  // keys "1" and "2"
	Actions []DeployRequest     `json:"actions,omitempty"`
}

// DeployRequest is one play-from-hand intent inside a step request.
type DeployRequest struct {
	Player    int     `json:"player"`
	HandIndex int     `json:"hand_index"`
	Level     int     `json:"level"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// Response is the server's reply. Every successful request answers with the
// viewer's state projection; failures carry an error string instead.
type Response struct {
	Type     string             `json:"type"`
	MatchID  string             `json:"match_id,omitempty"`
	State    *export.PlayerView `json:"state,omitempty"`
	Rejected []string           `json:"rejected,omitempty"` // per-action rejection reasons
	Error    string             `json:"error,omitempty"`
}

// toActions converts deploy requests into engine actions in submission
// order. Malformed player ids are passed through for the engine to reject
// so the ordering of results stays aligned with the request.
func toActions(deploys []DeployRequest) []game.Action {
	actions := make([]game.Action, len(deploys))
	for i, d := range deploys {
		level := d.Level
		if level == 0 {
			level = 11
		}
		actions[i] = game.PlayCardFromHand{
			PlayerID:  entity.PlayerID(d.Player),
			HandIndex: d.HandIndex,
			Level:     level,
			Position:  geom.NewVec2(d.X, d.Y),
		}
	}
	return actions
}

// viewerSeat normalizes the requested seat to a valid player id.
func viewerSeat(player int) entity.PlayerID {
	if player == 2 {
		return entity.Player2
	}
	return entity.Player1
}
