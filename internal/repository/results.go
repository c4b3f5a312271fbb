package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/midnighthunt/hunt-server-go/internal/game"
)

// MatchRepository persists finished-match summaries.
type MatchRepository struct {
	db *DB
}

// NewMatchRepository creates a repository over the shared pool.
func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// SaveResult records one finished game from its public snapshot.
func (r *MatchRepository) SaveResult(ctx context.Context, view game.SnapshotView, faction string) error {
	winners, err := json.Marshal(view.Winners)
	if err != nil {
		return fmt.Errorf("marshal winners: %w", err)
	}
	deaths, err := json.Marshal(view.DeathOrder)
	if err != nil {
		return fmt.Errorf("marshal death order: %w", err)
	}

	_, err = r.db.pool.Exec(ctx, `
		INSERT INTO match_results (game_id, turns, winning_faction, winners, death_order)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_id) DO NOTHING
	`, view.GameID, view.Turn, faction, winners, deaths)
	if err != nil {
		return fmt.Errorf("insert match result: %w", err)
	}

	r.db.logger.Info("match result saved",
		zap.String("game_id", view.GameID),
		zap.Int("turns", view.Turn),
		zap.String("winning_faction", faction),
	)
	return nil
}

// RecentResults lists the most recent finished games.
func (r *MatchRepository) RecentResults(ctx context.Context, limit int) ([]MatchResult, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT game_id, turns, winning_faction, winners
		FROM match_results
		ORDER BY finished_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query match results: %w", err)
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		var res MatchResult
		var winners []byte
		if err := rows.Scan(&res.GameID, &res.Turns, &res.WinningFaction, &winners); err != nil {
			return nil, fmt.Errorf("scan match result: %w", err)
		}
		if err := json.Unmarshal(winners, &res.Winners); err != nil {
			return nil, fmt.Errorf("unmarshal winners: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// MatchResult is one persisted game summary.
type MatchResult struct {
	GameID         string `json:"game_id"`
	Turns          int    `json:"turns"`
	WinningFaction string `json:"winning_faction"`
	Winners        []int  `json:"winners"`
}
