package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jtsang27/crust-sim/internal/game/cards"
	"github.com/jtsang27/crust-sim/internal/game/entity"
)

// checksumInterval is how often (in ticks) the engine records a state
// checksum into the replay for divergence detection.
const checksumInterval = 60

// Engine hosts simulation matches. Each match is stepped under its own
// lock; the deterministic core inside a match is strictly single-threaded.
type Engine struct {
	logger   *zap.Logger
	provider *cards.Provider

	mu      sync.RWMutex
	matches map[string]*Match
}

// Match is one hosted simulation with its replay log.
type Match struct {
	ID string

	mu        sync.Mutex
	state     *GameState
	replay    *Replay
	recording bool
}

// NewEngine creates an engine backed by the given definition provider.
func NewEngine(logger *zap.Logger, provider *cards.Provider) *Engine {
	if provider == nil {
		provider = cards.Default()
	}
	return &Engine{
		logger:   logger,
		provider: provider,
		matches:  make(map[string]*Match),
	}
}

// Provider exposes the engine's definition registry.
func (e *Engine) Provider() *cards.Provider {
	return e.provider
}

// CreateMatch starts a new match with the given seed and per-player decks
// and returns its id. Replay recording starts immediately.
func (e *Engine) CreateMatch(seed uint64, decks map[entity.PlayerID][]string) (string, error) {
	state := NewGameStateWithProvider(seed, e.provider)

	matchID := uuid.NewString()
	rec := NewReplay(matchID, seed)

	// Deck setup consumes RNG; apply in fixed player order.
	for _, player := range []entity.PlayerID{entity.Player1, entity.Player2} {
		deck, ok := decks[player]
		if !ok {
			continue
		}
		if err := state.SetDeck(player, deck); err != nil {
			return "", fmt.Errorf("deck for %s: %w", player, err)
		}
		rec.RecordDeck(player, deck)
	}

	m := &Match{
		ID:        matchID,
		state:     state,
		replay:    rec,
		recording: true,
	}

	e.mu.Lock()
	e.matches[matchID] = m
	e.mu.Unlock()

	e.logger.Info("match created",
		zap.String("match_id", matchID),
		zap.Uint64("seed", seed),
	)
	return matchID, nil
}

// match looks up a hosted match.
func (e *Engine) match(matchID string) (*Match, error) {
	e.mu.RLock()
	m, ok := e.matches[matchID]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("match %s not found", matchID)
	}
	return m, nil
}

// Step advances a match by one tick with the given ordered action stream.
// Rejected actions are reported in the results; the tick always completes.
func (e *Engine) Step(matchID string, actions []Action) ([]ActionResult, error) {
	m, err := e.match(matchID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tick := m.state.Tick
	results := Step(m.state, actions)

	if m.recording {
		m.replay.RecordTick(tick, actions)
		if m.state.Tick%checksumInterval == 0 {
			m.replay.RecordChecksum(tick, Capture(m.state).Checksum())
		}
	}

	for _, res := range results {
		if res.Err != nil {
			e.logger.Debug("action rejected",
				zap.String("match_id", matchID),
				zap.Uint64("tick", tick),
				zap.Error(res.Err),
			)
		}
	}
	return results, nil
}

// WithState runs fn with the match state under the match lock. The callback
// must treat the state as read-only; it exists for projections and drivers
// that need a consistent view between ticks.
func (e *Engine) WithState(matchID string, fn func(*GameState) error) error {
	m, err := e.match(matchID)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.state)
}

// Snapshot captures a deep copy of the match state.
func (e *Engine) Snapshot(matchID string) (*Snapshot, error) {
	m, err := e.match(matchID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return Capture(m.state), nil
}

// Replay returns the match's replay log.
func (e *Engine) Replay(matchID string) (*Replay, error) {
	m, err := e.match(matchID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replay, nil
}

// SaveReplay writes the match's replay log to disk.
func (e *Engine) SaveReplay(matchID, directory string) error {
	rec, err := e.Replay(matchID)
	if err != nil {
		return err
	}
	if err := rec.SaveToFile(directory); err != nil {
		return err
	}
	e.logger.Info("replay saved",
		zap.String("match_id", matchID),
		zap.Int("ticks", rec.Len()),
		zap.String("directory", directory),
	)
	return nil
}

// CloseMatch removes a finished match from the registry.
func (e *Engine) CloseMatch(matchID string) {
	e.mu.Lock()
	delete(e.matches, matchID)
	e.mu.Unlock()

	e.logger.Info("match closed", zap.String("match_id", matchID))
}
