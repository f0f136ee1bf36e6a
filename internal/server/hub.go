// Package server exposes the simulation engine over a websocket bridge.
// Clients speak a small JSON protocol (reset, step, state); every reply is
// the requesting player's state projection, so drivers such as RL
// environments can treat the socket as an observation stream.
package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jtsang27/crust-sim/internal/export"
	"github.com/jtsang27/crust-sim/internal/game"
	"github.com/jtsang27/crust-sim/internal/game/entity"
	"github.com/jtsang27/crust-sim/internal/repository"
)

// MatchStore persists finished matches. A nil store disables persistence;
// matches then live only in engine memory and replay files.
type MatchStore interface {
	SaveResult(ctx context.Context, result repository.MatchResult) error
	SaveReplay(ctx context.Context, matchID string, data []byte) error
}

const persistTimeout = 5 * time.Second

// Hub owns the client set and routes protocol messages to the engine.
// Each client drives at most one match at a time; spectators attached to
// the same match receive state broadcasts after every step.
type Hub struct {
	engine *game.Engine
	store  MatchStore
	logger *zap.Logger

	register   chan *Client
	unregister chan *Client

	mu        sync.RWMutex
	clients   map[*Client]bool
	persisted map[string]bool
}

// NewHub creates a hub over the given engine. store may be nil.
func NewHub(engine *game.Engine, store MatchStore, logger *zap.Logger) *Hub {
	return &Hub{
		engine:     engine,
		store:      store,
		logger:     logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		persisted:  make(map[string]bool),
	}
}

// Run processes client registration until the registration channels close.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug("client unregistered")
		}
	}
}

// handleRequest dispatches one inbound message and queues the reply on the
// client's send channel.
func (h *Hub) handleRequest(c *Client, req Request) {
	switch req.Type {
	case "reset":
		h.handleReset(c, req)
	case "step":
		h.handleStep(c, req)
	case "state":
		h.handleState(c, req)
	default:
		c.reply(Response{Type: "error", Error: "unknown request type: " + req.Type})
	}
}

// defaultDecks fills any deck the reset request omitted with the full
// registered card set in name order.
func (h *Hub) defaultDecks(req map[string][]string) map[entity.PlayerID][]string {
	decks := map[entity.PlayerID][]string{
		entity.Player1: h.fallbackDeck(),
		entity.Player2: h.fallbackDeck(),
	}
	if names, ok := req["1"]; ok {
		decks[entity.Player1] = names
	}
	if names, ok := req["2"]; ok {
		decks[entity.Player2] = names
	}
	return decks
}

func (h *Hub) fallbackDeck() []string {
	names := h.engine.Provider().Names()
	deck := make([]string, 0, game.DeckSize)
	for i := 0; i < game.DeckSize; i++ {
		deck = append(deck, names[i%len(names)])
	}
	return deck
}

func (h *Hub) handleReset(c *Client, req Request) {
	matchID, err := h.engine.CreateMatch(req.Seed, h.defaultDecks(req.Decks))
	if err != nil {
		c.reply(Response{Type: "error", Error: err.Error()})
		return
	}

	if c.matchID != "" {
		h.engine.CloseMatch(c.matchID)
		h.mu.Lock()
		delete(h.persisted, c.matchID)
		h.mu.Unlock()
	}
	c.matchID = matchID
	c.seat = viewerSeat(req.Player)

	h.logger.Info("match reset",
		zap.String("match_id", matchID),
		zap.Uint64("seed", req.Seed),
	)
	h.replyState(c)
}

func (h *Hub) handleStep(c *Client, req Request) {
	if c.matchID == "" {
		c.reply(Response{Type: "error", Error: "no active match; send reset first"})
		return
	}

	results, err := h.engine.Step(c.matchID, toActions(req.Actions))
	if err != nil {
		c.reply(Response{Type: "error", Error: err.Error()})
		return
	}

	var rejected []string
	for _, res := range results {
		if res.Err != nil {
			rejected = append(rejected, res.Err.Error())
		}
	}
	h.replyStateWith(c, rejected)
	h.broadcastState(c)
	h.persistIfOver(c.matchID)
}

// persistIfOver writes the match summary and replay blob to the store the
// first time a stepped match reports itself over. Matches abandoned by a
// reset before finishing are never persisted.
func (h *Hub) persistIfOver(matchID string) {
	if h.store == nil {
		return
	}
	h.mu.RLock()
	done := h.persisted[matchID]
	h.mu.RUnlock()
	if done {
		return
	}

	var result repository.MatchResult
	over := false
	err := h.engine.WithState(matchID, func(s *game.GameState) error {
		if !s.MatchOver() {
			return nil
		}
		over = true
		winner := 0
		if w, ok := s.Winner(); ok {
			winner = int(w)
		}
		result = repository.MatchResult{
			MatchID:        matchID,
			Winner:         winner,
			Player1TowerHP: s.RemainingTowerHP(entity.Player1),
			Player2TowerHP: s.RemainingTowerHP(entity.Player2),
			Ticks:          s.Tick,
			MatchTime:      s.MatchTime,
		}
		return nil
	})
	if err != nil || !over {
		return
	}

	rep, err := h.engine.Replay(matchID)
	if err != nil {
		h.logger.Error("failed to read replay for persistence",
			zap.String("match_id", matchID), zap.Error(err))
		return
	}
	result.Seed = rep.Seed

	blob, err := rep.Encode()
	if err != nil {
		h.logger.Error("failed to encode replay for persistence",
			zap.String("match_id", matchID), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := h.store.SaveResult(ctx, result); err != nil {
		h.logger.Error("failed to persist match result",
			zap.String("match_id", matchID), zap.Error(err))
		return
	}
	if err := h.store.SaveReplay(ctx, matchID, blob); err != nil {
		h.logger.Error("failed to persist replay",
			zap.String("match_id", matchID), zap.Error(err))
		return
	}

	h.mu.Lock()
	h.persisted[matchID] = true
	h.mu.Unlock()

	h.logger.Info("finished match persisted",
		zap.String("match_id", matchID),
		zap.Int("winner", result.Winner),
		zap.Uint64("ticks", result.Ticks),
	)
}

func (h *Hub) handleState(c *Client, req Request) {
	if c.matchID == "" {
		c.reply(Response{Type: "error", Error: "no active match; send reset first"})
		return
	}
	if req.Player != 0 {
		c.seat = viewerSeat(req.Player)
	}
	h.replyState(c)
}

func (h *Hub) replyState(c *Client) {
	h.replyStateWith(c, nil)
}

func (h *Hub) replyStateWith(c *Client, rejected []string) {
	view, err := h.buildView(c.matchID, c.seat)
	if err != nil {
		c.reply(Response{Type: "error", Error: err.Error()})
		return
	}
	c.reply(Response{Type: "state", MatchID: c.matchID, State: view, Rejected: rejected})
}

func (h *Hub) buildView(matchID string, seat entity.PlayerID) (*export.PlayerView, error) {
	var view *export.PlayerView
	err := h.engine.WithState(matchID, func(s *game.GameState) error {
		v, err := export.BuildPlayerView(s, seat)
		if err != nil {
			return err
		}
		view = v
		return nil
	})
	return view, err
}

// broadcastState pushes the stepped match's state to every other client
// attached to the same match, each from its own seat.
func (h *Hub) broadcastState(stepper *Client) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if client == stepper || client.matchID != stepper.matchID {
			continue
		}
		view, err := h.buildView(client.matchID, client.seat)
		if err != nil {
			continue
		}
		data, err := json.Marshal(Response{Type: "state", MatchID: client.matchID, State: view})
		if err != nil {
			continue
		}
		select {
		case client.send <- data:
		default:
			// Slow spectator: drop the update rather than block the step.
		}
	}
}
