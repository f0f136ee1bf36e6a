package game

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jtsang27/crust-sim/internal/game/cards"
	"github.com/jtsang27/crust-sim/internal/game/entity"
)

func init() {
	// Replay logs hold actions behind the Action interface.
	gob.Register(PlayCard{})
	gob.Register(PlayCardFromHand{})
	gob.Register(Emote{})
}

// TickRecord is the ordered action stream submitted for one tick. Ticks
// with no actions are recorded with empty streams so playback stays
// aligned with the original tick sequence.
type TickRecord struct {
	Tick    uint64
	Actions []Action
}

// Replay is a recorded match: the seed, the pre-shuffle deck setup, and
// every tick's action stream. Because the simulation is deterministic this
// is sufficient to reproduce the full state trajectory. Periodic checksums
// allow divergence detection without storing snapshots.
type Replay struct {
	MatchID   string
	Seed      uint64
	Decks     map[entity.PlayerID][]string
	Ticks     []TickRecord
	Checksums map[uint64]string // tick -> state checksum after that tick
}

// NewReplay starts an empty replay for a match.
func NewReplay(matchID string, seed uint64) *Replay {
	return &Replay{
		MatchID:   matchID,
		Seed:      seed,
		Decks:     make(map[entity.PlayerID][]string),
		Checksums: make(map[uint64]string),
	}
}

// RecordDeck stores a player's pre-shuffle deck order.
func (r *Replay) RecordDeck(player entity.PlayerID, names []string) {
	r.Decks[player] = append([]string(nil), names...)
}

// RecordTick appends one tick's action stream.
func (r *Replay) RecordTick(tick uint64, actions []Action) {
	r.Ticks = append(r.Ticks, TickRecord{Tick: tick, Actions: append([]Action(nil), actions...)})
}

// RecordChecksum stores the state checksum observed after a tick.
func (r *Replay) RecordChecksum(tick uint64, checksum string) {
	r.Checksums[tick] = checksum
}

// Len returns the number of recorded ticks.
func (r *Replay) Len() int {
	return len(r.Ticks)
}

// replayFile is the on-disk envelope.
type replayFile struct {
	Version   int
	SavedAt   time.Time
	Replay    *Replay
	TickCount int
}

const replayFileVersion = 1

// Encode serializes the replay as a gzipped gob envelope, the same bytes
// SaveToFile writes to disk. Used for database blob storage.
func (r *Replay) Encode() ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)

	envelope := replayFile{
		Version:   replayFileVersion,
		SavedAt:   time.Now(),
		Replay:    r,
		TickCount: len(r.Ticks),
	}
	if err := gob.NewEncoder(zw).Encode(&envelope); err != nil {
		return nil, fmt.Errorf("encode replay: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("flush replay stream: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeReplay reads a replay produced by Encode or SaveToFile.
func DecodeReplay(data []byte) (*Replay, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open replay stream: %w", err)
	}
	defer zr.Close()

	var envelope replayFile
	if err := gob.NewDecoder(zr).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode replay: %w", err)
	}
	if envelope.Version != replayFileVersion {
		return nil, fmt.Errorf("unsupported replay version %d", envelope.Version)
	}
	return envelope.Replay, nil
}

// SaveToFile writes the replay as a gzipped gob file named
// <match-id>.replay under the given directory.
func (r *Replay) SaveToFile(directory string) error {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("create replay directory: %w", err)
	}

	data, err := r.Encode()
	if err != nil {
		return err
	}

	filename := filepath.Join(directory, fmt.Sprintf("%s.replay", r.MatchID))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write replay file: %w", err)
	}
	return nil
}

// LoadReplayFromFile reads a replay saved by SaveToFile.
func LoadReplayFromFile(directory, matchID string) (*Replay, error) {
	filename := filepath.Join(directory, fmt.Sprintf("%s.replay", matchID))
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("open replay file: %w", err)
	}
	return DecodeReplay(data)
}

// startState builds the pre-tick-zero state of the recorded match. Decks
// are restored in player order so the RNG is consumed exactly as in the
// original match.
func (r *Replay) startState(provider *cards.Provider) (*GameState, error) {
	s := NewGameStateWithProvider(r.Seed, provider)

	for _, player := range []entity.PlayerID{entity.Player1, entity.Player2} {
		deck, ok := r.Decks[player]
		if !ok {
			continue
		}
		if err := s.SetDeck(player, deck); err != nil {
			return nil, fmt.Errorf("replay deck for %s: %w", player, err)
		}
	}
	return s, nil
}

// applyRecord steps one recorded tick and verifies its checksum when one
// was stored. A mismatch means the replay or the engine diverged.
func (r *Replay) applyRecord(s *GameState, record TickRecord) error {
	Step(s, record.Actions)
	if want, ok := r.Checksums[record.Tick]; ok {
		if got := Capture(s).Checksum(); got != want {
			return fmt.Errorf("replay diverged at tick %d: checksum %s, recorded %s", record.Tick, got, want)
		}
	}
	return nil
}

// Rebuild replays the recorded match from a fresh state and returns the
// final state.
func (r *Replay) Rebuild(provider *cards.Provider) (*GameState, error) {
	s, err := r.startState(provider)
	if err != nil {
		return nil, err
	}
	for _, record := range r.Ticks {
		if err := r.applyRecord(s, record); err != nil {
			return nil, err
		}
	}
	return s, nil
}
