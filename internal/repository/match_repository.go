package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a match or replay does not exist.
var ErrNotFound = errors.New("not found")

// MatchResult is the durable summary of one finished match. Winner is 0
// for a draw, otherwise the winning player id.
type MatchResult struct {
	MatchID        string
	Seed           uint64
	Winner         int
	Player1TowerHP float64
	Player2TowerHP float64
	Ticks          uint64
	MatchTime      float64
	CreatedAt      time.Time
}

// MatchRepository stores match results and replay blobs.
type MatchRepository struct {
	db *DB
}

// NewMatchRepository creates a repository over the shared pool.
func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// SaveResult inserts a finished match summary.
func (r *MatchRepository) SaveResult(ctx context.Context, result MatchResult) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO matches (match_id, seed, winner, player1_tower_hp, player2_tower_hp, ticks, match_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		result.MatchID,
		int64(result.Seed),
		result.Winner,
		result.Player1TowerHP,
		result.Player2TowerHP,
		int64(result.Ticks),
		result.MatchTime,
	)
	if err != nil {
		return fmt.Errorf("save match result: %w", err)
	}
	r.db.logger.Info("match result saved",
		zap.String("match_id", result.MatchID),
		zap.Int("winner", result.Winner),
		zap.Uint64("ticks", result.Ticks),
	)
	return nil
}

// GetResult loads a match summary by id.
func (r *MatchRepository) GetResult(ctx context.Context, matchID string) (*MatchResult, error) {
	var (
		result MatchResult
		seed   int64
		ticks  int64
	)
	err := r.db.pool.QueryRow(ctx, `
		SELECT match_id, seed, winner, player1_tower_hp, player2_tower_hp, ticks, match_time, created_at
		FROM matches WHERE match_id = $1`, matchID).
		Scan(&result.MatchID, &seed, &result.Winner,
			&result.Player1TowerHP, &result.Player2TowerHP,
			&ticks, &result.MatchTime, &result.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load match result: %w", err)
	}
	result.Seed = uint64(seed)
	result.Ticks = uint64(ticks)
	return &result, nil
}

// SaveReplay stores the serialized replay blob for a match. The match row
// must exist first.
func (r *MatchRepository) SaveReplay(ctx context.Context, matchID string, data []byte) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO replays (match_id, data) VALUES ($1, $2)
		ON CONFLICT (match_id) DO UPDATE SET data = EXCLUDED.data`,
		matchID, data)
	if err != nil {
		return fmt.Errorf("save replay: %w", err)
	}
	r.db.logger.Info("replay saved",
		zap.String("match_id", matchID),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// GetReplay loads a replay blob by match id.
func (r *MatchRepository) GetReplay(ctx context.Context, matchID string) ([]byte, error) {
	var data []byte
	err := r.db.pool.QueryRow(ctx,
		`SELECT data FROM replays WHERE match_id = $1`, matchID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("replay %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load replay: %w", err)
	}
	return data, nil
}
